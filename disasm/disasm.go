/*
 * AGC - Disassembler.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package disasm renders a decoded instruction back into its mnemonic
// form, the mirror image of the decode/cpu opcode tables.
package disasm

import (
	"fmt"

	"github.com/rcornwell/agc/decode"
	"github.com/rcornwell/agc/word"
)

// entry names one dispatch slot: the mnemonic and whether it takes an
// address/immediate operand worth printing.
type entry struct {
	name   string
	hasArg bool
}

// basicTable covers opcode 0's four TC-class subcodes plus opcodes 1..6.
var basicTable = map[uint8]entry{
	0*4 + 0: {"TC", true},
	0*4 + 1: {"CCS", true},
	0*4 + 2: {"INDEX", true},
	0*4 + 3: {"XCH", true},
	1 * 4:   {"CA", true},
	2 * 4:   {"CS", true},
	3 * 4:   {"TS", true},
	4 * 4:   {"AD", true},
	5 * 4:   {"MSK", true},
	6 * 4:   {"EXTEND", false},
}

// extendedTable covers the extended-mode opcode space, in the same order
// as the specification's opcode table.
var extendedTable = map[uint8]entry{
	1:     {"MP", true},
	2:     {"DV", true},
	3:     {"SU", true},
	4:     {"DCA", true},
	5:     {"DCS", true},
	6:     {"DAD", true},
	7:     {"DAS", true},
	8:     {"DSU", true},
	9:     {"LXCH", true},
	10:    {"QXCH", true},
	11:    {"INCR", true},
	12:    {"AUG", false},
	13:    {"DIM", true},
	14:    {"BZF", true},
	15:    {"BZM", true},
	16:    {"RELINT", false},
	17:    {"INHINT", false},
	18:    {"EDRUPT", true},
	19:    {"RESUME", false},
	20:    {"CYR", true},
	21:    {"SR", true},
	22:    {"SL", true},
	23:    {"PINC", true},
	24:    {"MINC", true},
	25:    {"DXCH", true},
	26:    {"CAF", true},
	27:    {"TCAF", true},
	28:    {"RAND", true},
	29:    {"MASK", true},
	30:    {"READ", true},
	31:    {"WRITE", true},
	32:    {"NOOP", false},
	0o52:  {"INOT", true},
	0o53:  {"INOTR", true},
}

// basicKey folds a decoded basic-mode (opcode, subcode) pair into the
// table index used above, mirroring cpu.basicKey without importing the
// cpu package (disasm has no need for the rest of its state).
func basicKey(opcode, subcode uint8) uint8 {
	return opcode*4 + subcode
}

// One renders a single decoded instruction. Unknown opcodes render as a
// bare numeric placeholder rather than an error: a disassembler must
// never refuse to print.
func One(v word.Word, extended bool) string {
	inst := decode.Decode(v, extended)

	table := basicTable
	key := basicKey(inst.Opcode, inst.Subcode)
	if extended {
		table = extendedTable
		key = inst.Opcode
	}

	e, ok := table[key]
	if !ok {
		return fmt.Sprintf("??? %#03o", inst.Opcode)
	}
	if !e.hasArg {
		return e.name
	}
	return fmt.Sprintf("%s %#04o", e.name, inst.Address)
}

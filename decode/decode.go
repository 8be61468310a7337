/*
 * AGC - Instruction decoder.
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

// Package decode splits a fetched word into an opcode and address field,
// distinguishing basic-mode from extended-mode encodings. This
// implementation documents and uses the bit layout given in the
// specification (3-bit basic opcode, extended opcode in bits 14..10) rather than
// the historical Block II rope encoding; see the design notes for why.
package decode

import "github.com/rcornwell/agc/word"

// Instruction is a decoded (opcode, address) pair.
type Instruction struct {
	Opcode  uint8
	Address uint16
	// Subcode holds bits 11..10 of a basic-mode opcode-0 word, selecting
	// among the TC-class operations.
	Subcode uint8
}

// Decode extracts the opcode and address fields of v according to
// extended. In extended mode, opcode is bits 14..10 (5 bits, 0..0o37) and
// address is bits 9..0 (10 bits); extended opcodes above 0o37 cannot be
// encoded in a 15-bit word. In basic mode, opcode is bits 14..12 (3 bits)
// and address is bits 11..0 (12 bits); for opcode 0, bits 11..10 form a
// TC-class subcode.
func Decode(v word.Word, extended bool) Instruction {
	v &= word.Mask
	if extended {
		return Instruction{
			Opcode:  uint8(v>>10) & 0o77,
			Address: uint16(v) & 0x03FF,
		}
	}
	opcode := uint8(v>>12) & 0o7
	addr := uint16(v) & 0x0FFF
	inst := Instruction{Opcode: opcode, Address: addr}
	if opcode == 0 {
		inst.Subcode = uint8(v>>10) & 0x3
	}
	return inst
}

/*
 * AGC: opcode table and per-instruction semantics.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a
 * copy of this software and associated documentation files (the "Software"),
 * to deal in the Software without restriction, including without limitation
 * the rights to use, copy, modify, merge, publish, distribute, sublicense,
 * and/or sell copies of the Software, and to permit persons to whom the
 * Software is furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
 * RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 *
 */

package cpu

import (
	"github.com/rcornwell/agc/interrupt"
	"github.com/rcornwell/agc/memory"
	"github.com/rcornwell/agc/word"
)

// Basic-mode opcode identities. Opcode 0's four variants are distinguished
// by the decoder's subcode field; the dispatch key folds subcode in as
// opcode*4+subcode so the table holds one entry per mnemonic. Opcodes 1..6
// carry no subcode (subcode is always 0), leaving opcode 7 unassigned.
const (
	opTC    = 0*4 + 0
	opCCS   = 0*4 + 1
	opINDEX = 0*4 + 2
	opXCH   = 0*4 + 3
	opCA    = 1 * 4
	opCS    = 2 * 4
	opTS    = 3 * 4
	opAD    = 4 * 4
	opMSK   = 5 * 4
	opExtend = 6 * 4
)

// basicKey folds a decoded basic-mode (opcode, subcode) pair into the
// dispatch key used above.
func basicKey(opcode, subcode uint8) uint8 {
	return opcode*4 + subcode
}

// Extended-mode opcode identities, assigned sequentially in the order
// given by the specification's opcode table. INOT/INOTR are reserved
// mnemonic tokens per the symbolic interface (§6) with no assigned
// semantics; they are recognized by mnemonicToOpcode but carry no table
// entry, so dispatching one logs an unimplemented-opcode warning, advances
// Z and is charged the default cost of 2 MCTs (NOOP costs 1).
const (
	opMP uint8 = iota + 1
	opDV
	opSU
	opDCA
	opDCS
	opDAD
	opDAS
	opDSU
	opLXCH
	opQXCH
	opINCR
	opAUG
	opDIM
	opBZF
	opBZM
	opRELINT
	opINHINT
	opEDRUPT
	opRESUME
	opCYR
	opSR
	opSL
	opPINC
	opMINC
	opDXCH
	opCAF
	opTCAF
	opRAND
	opMASK
	opREAD
	opWRITE
	opNOOP
)

const (
	opINOT   uint8 = 0o52
	opINOTR  uint8 = 0o53
)

// mnemonicToOpcode maps a symbolic-interface mnemonic to its dispatch key
// and whether it belongs to the extended-mode table.
func mnemonicToOpcode(mnemonic string) (opcode uint8, extended bool, ok bool) {
	switch mnemonic {
	case "TC":
		return opTC, false, true
	case "CCS":
		return opCCS, false, true
	case "INDEX":
		return opINDEX, false, true
	case "XCH":
		return opXCH, false, true
	case "CA":
		return opCA, false, true
	case "CS":
		return opCS, false, true
	case "TS":
		return opTS, false, true
	case "AD":
		return opAD, false, true
	case "MSK":
		return opMSK, false, true
	case "EXTEND":
		return opExtend, false, true
	case "MP":
		return opMP, true, true
	case "DV":
		return opDV, true, true
	case "SU":
		return opSU, true, true
	case "DCA":
		return opDCA, true, true
	case "DCS":
		return opDCS, true, true
	case "DAD":
		return opDAD, true, true
	case "DAS":
		return opDAS, true, true
	case "DSU":
		return opDSU, true, true
	case "LXCH":
		return opLXCH, true, true
	case "QXCH":
		return opQXCH, true, true
	case "INCR":
		return opINCR, true, true
	case "AUG":
		return opAUG, true, true
	case "DIM":
		return opDIM, true, true
	case "BZF":
		return opBZF, true, true
	case "BZM":
		return opBZM, true, true
	case "RELINT":
		return opRELINT, true, true
	case "INHINT":
		return opINHINT, true, true
	case "EDRUPT":
		return opEDRUPT, true, true
	case "RESUME":
		return opRESUME, true, true
	case "CYR":
		return opCYR, true, true
	case "SR":
		return opSR, true, true
	case "SL":
		return opSL, true, true
	case "PINC":
		return opPINC, true, true
	case "MINC":
		return opMINC, true, true
	case "DXCH":
		return opDXCH, true, true
	case "CAF":
		return opCAF, true, true
	case "TCAF":
		return opTCAF, true, true
	case "RAND":
		return opRAND, true, true
	case "MASK":
		return opMASK, true, true
	case "READ":
		return opREAD, true, true
	case "WRITE":
		return opWRITE, true, true
	case "NOOP":
		return opNOOP, true, true
	case "INOT":
		return opINOT, true, true
	case "INOTR":
		return opINOTR, true, true
	}
	return 0, false, false
}

// cycleCost returns the documented per-opcode MCT cost.
func cycleCost(key opKey) int {
	if !key.extended {
		switch key.opcode {
		case opTC, opINDEX, opMSK, opExtend:
			return 1
		default:
			return 2
		}
	}
	switch key.opcode {
	case opMP, opDV, opDAD, opDAS, opDSU:
		return 6
	case opDCA, opDCS, opDXCH:
		return 4
	case opAUG, opRELINT, opINHINT, opEDRUPT, opRESUME, opMASK, opNOOP:
		return 1
	default:
		return 2
	}
}

// nextErasable wraps addr+1 around the 2048-word erasable space, per the
// specification's DCA/DCS/DAD/DAS/DSU/DXCH double-word addressing.
func nextErasable(addr uint16) uint32 {
	return (uint32(addr) + 1) % memory.ErasableWords
}

// rotateRight15 performs a cyclic right rotation of the low 15 bits of v.
func rotateRight15(v word.Word) word.Word {
	v &= word.Mask
	return word.Normalize(((v >> 1) | (v << 14)) & word.Mask)
}

// doubleWord computes the carry/borrow-propagated double-word result of
// combining (m.A, m.L) with erasable memory (addr, addr+1), per the
// specification's "carry/borrow derived from the pre-normalized native
// sum/difference of the low words". subtract selects DSU's complement-then-add
// form over DAD/DAS's plain add.
func (m *Machine) doubleWord(addr uint16, subtract bool) (a, l word.Word) {
	hi := m.Memory.ReadErasable(m.EB, uint32(addr))
	lo := m.Memory.ReadErasable(m.EB, nextErasable(addr))
	if subtract {
		hi = word.Complement(hi)
		lo = word.Complement(lo)
	}
	rawLow := uint32(m.L&word.Mask) + uint32(lo&word.Mask)
	var carry word.Word
	if rawLow > 0x7FFF {
		carry = 1
	}
	l = word.Add(m.L, lo)
	a = word.Add(word.Add(m.A, hi), carry)
	return a, l
}

// createTable builds the opcode dispatch table. Kept as one flat map
// rather than a tagged-enum switch: the opcode space here is sparse across
// two address widths (3-bit basic, 6-bit extended), and a map keyed by the
// decoded (opcode, extended) pair reads more directly than a two-level
// switch would.
func (m *Machine) createTable() {
	m.table = map[opKey]opHandler{
		{opcode: opTC, extended: false}: func(m *Machine, s *stepInfo) bool {
			if uint16(m.Z) == s.address {
				m.TCTrap = true
			}
			m.Z = word.Word(s.address)
			return true
		},
		{opcode: opCCS, extended: false}: func(m *Machine, s *stepInfo) bool {
			v := m.Memory.ReadErasable(m.EB, uint32(s.address))
			switch {
			case word.IsZero(v):
				m.Z = word.Add(m.Z, 1)
			case !word.IsNegative(v):
				m.A = word.Normalize(word.Complement(m.A))
			default:
				m.A &^= word.Sign
			}
			return false
		},
		{opcode: opINDEX, extended: false}: func(m *Machine, s *stepInfo) bool {
			m.Z = m.Memory.ReadErasable(m.EB, uint32(s.address))
			return false
		},
		{opcode: opXCH, extended: false}: func(m *Machine, s *stepInfo) bool {
			v := m.Memory.ReadErasable(m.EB, uint32(s.address))
			m.Memory.WriteErasable(m.EB, uint32(s.address), m.A)
			m.A = v
			return false
		},
		{opcode: opCA, extended: false}: func(m *Machine, s *stepInfo) bool {
			m.A = m.Memory.ReadErasable(m.EB, uint32(s.address))
			return false
		},
		{opcode: opCS, extended: false}: func(m *Machine, s *stepInfo) bool {
			m.A = word.Normalize(word.Complement(m.Memory.ReadErasable(m.EB, uint32(s.address))))
			return false
		},
		{opcode: opTS, extended: false}: func(m *Machine, s *stepInfo) bool {
			m.Memory.WriteErasable(m.EB, uint32(s.address), m.A)
			m.A = 0
			return false
		},
		{opcode: opAD, extended: false}: func(m *Machine, s *stepInfo) bool {
			m.A = word.Add(m.A, m.Memory.ReadErasable(m.EB, uint32(s.address)))
			return false
		},
		{opcode: opMSK, extended: false}: func(m *Machine, s *stepInfo) bool {
			m.A &= word.Word(s.address) & word.Mask
			return false
		},
		{opcode: opExtend, extended: false}: func(m *Machine, s *stepInfo) bool {
			m.ExtendedMode = true
			return false
		},

		{opcode: opMP, extended: true}: func(m *Machine, s *stepInfo) bool {
			p := uint32(m.A&word.Mask) * uint32(m.Memory.ReadErasable(m.EB, uint32(s.address))&word.Mask)
			m.L = word.Normalize(word.Word((p >> 15) & 0x7FFF))
			m.A = word.Normalize(word.Word(p & 0x7FFF))
			return false
		},
		{opcode: opDV, extended: true}: func(m *Machine, s *stepInfo) bool {
			d := m.Memory.ReadErasable(m.EB, uint32(s.address))
			if word.IsZero(d) {
				m.A = 0
				m.L = 0
				m.Interrupt.Trigger(interrupt.DSRUPT)
				return false
			}
			dividend := (uint32(m.L&word.Mask) << 15) | uint32(m.A&word.Mask)
			divisor := uint32(d & word.Mask)
			m.A = word.Normalize(word.Word(dividend / divisor))
			m.L = word.Normalize(word.Word(dividend % divisor))
			return false
		},
		{opcode: opSU, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.A = word.Sub(m.A, m.Memory.ReadErasable(m.EB, uint32(s.address)))
			return false
		},
		{opcode: opDCA, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.A = m.Memory.ReadErasable(m.EB, uint32(s.address))
			m.L = m.Memory.ReadErasable(m.EB, nextErasable(s.address))
			return false
		},
		{opcode: opDCS, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.A = word.Normalize(word.Complement(m.Memory.ReadErasable(m.EB, uint32(s.address))))
			m.L = word.Normalize(word.Complement(m.Memory.ReadErasable(m.EB, nextErasable(s.address))))
			return false
		},
		{opcode: opDAD, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.A, m.L = m.doubleWord(s.address, false)
			return false
		},
		{opcode: opDAS, extended: true}: func(m *Machine, s *stepInfo) bool {
			a, l := m.doubleWord(s.address, false)
			m.A, m.L = a, l
			m.Memory.WriteErasable(m.EB, uint32(s.address), a)
			m.Memory.WriteErasable(m.EB, nextErasable(s.address), l)
			return false
		},
		{opcode: opDSU, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.A, m.L = m.doubleWord(s.address, true)
			return false
		},
		{opcode: opLXCH, extended: true}: func(m *Machine, s *stepInfo) bool {
			v := m.Memory.ReadErasable(m.EB, uint32(s.address))
			m.Memory.WriteErasable(m.EB, uint32(s.address), m.L)
			m.L = v
			return false
		},
		{opcode: opQXCH, extended: true}: func(m *Machine, s *stepInfo) bool {
			v := m.Memory.ReadErasable(m.EB, uint32(s.address))
			m.Memory.WriteErasable(m.EB, uint32(s.address), m.Q)
			m.Q = v
			return false
		},
		{opcode: opINCR, extended: true}: func(m *Machine, s *stepInfo) bool {
			v := m.Memory.ReadErasable(m.EB, uint32(s.address))
			m.Memory.WriteErasable(m.EB, uint32(s.address), word.Add(v, 1))
			return false
		},
		{opcode: opAUG, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.A = word.Add(m.A, 1)
			return false
		},
		{opcode: opDIM, extended: true}: func(m *Machine, s *stepInfo) bool {
			v := m.Memory.ReadErasable(m.EB, uint32(s.address))
			if word.SignOf(v) > 0 {
				m.Memory.WriteErasable(m.EB, uint32(s.address), word.Sub(v, 1))
			} else {
				m.Memory.WriteErasable(m.EB, uint32(s.address), word.Add(v, 1))
			}
			return false
		},
		{opcode: opBZF, extended: true}: func(m *Machine, s *stepInfo) bool {
			if !word.IsNegative(m.A) {
				m.Z = word.Word(s.address)
				return true
			}
			return false
		},
		{opcode: opBZM, extended: true}: func(m *Machine, s *stepInfo) bool {
			if word.IsNegative(m.A) && !word.IsZero(m.A) {
				m.Z = word.Word(s.address)
				return true
			}
			return false
		},
		{opcode: opRELINT, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.Interrupt.Relint()
			return false
		},
		{opcode: opINHINT, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.Interrupt.Inhint()
			return false
		},
		{opcode: opEDRUPT, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.Interrupt.Edrupt(s.address)
			return false
		},
		{opcode: opRESUME, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.Z = word.Word(m.Interrupt.Resume())
			return true
		},
		{opcode: opCYR, extended: true}: func(m *Machine, s *stepInfo) bool {
			v := m.Memory.ReadErasable(m.EB, uint32(s.address))
			m.Memory.WriteErasable(m.EB, uint32(s.address), rotateRight15(v))
			return false
		},
		{opcode: opSR, extended: true}: func(m *Machine, s *stepInfo) bool {
			v := m.Memory.ReadErasable(m.EB, uint32(s.address))
			m.Memory.WriteErasable(m.EB, uint32(s.address), (v&word.Mask)>>1)
			return false
		},
		{opcode: opSL, extended: true}: func(m *Machine, s *stepInfo) bool {
			v := m.Memory.ReadErasable(m.EB, uint32(s.address))
			m.Memory.WriteErasable(m.EB, uint32(s.address), word.Normalize((v<<1)&word.Mask))
			return false
		},
		{opcode: opPINC, extended: true}: func(m *Machine, s *stepInfo) bool {
			v := m.Memory.ReadErasable(m.EB, uint32(s.address))
			if !word.IsNegative(v) {
				m.Memory.WriteErasable(m.EB, uint32(s.address), word.Add(v, 1))
			}
			return false
		},
		{opcode: opMINC, extended: true}: func(m *Machine, s *stepInfo) bool {
			v := m.Memory.ReadErasable(m.EB, uint32(s.address))
			if word.IsNegative(v) {
				m.Memory.WriteErasable(m.EB, uint32(s.address), word.Add(v, 1))
			}
			return false
		},
		{opcode: opDXCH, extended: true}: func(m *Machine, s *stepInfo) bool {
			hi := m.Memory.ReadErasable(m.EB, uint32(s.address))
			lo := m.Memory.ReadErasable(m.EB, nextErasable(s.address))
			m.Memory.WriteErasable(m.EB, uint32(s.address), m.A)
			m.Memory.WriteErasable(m.EB, nextErasable(s.address), m.L)
			m.A, m.L = hi, lo
			return false
		},
		{opcode: opCAF, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.A = m.Memory.ReadFixed(m.FB, uint32(s.address))
			return false
		},
		{opcode: opTCAF, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.A = m.Memory.ReadFixed(m.FB, uint32(s.address))
			m.Z = word.Word(s.address)
			return true
		},
		{opcode: opRAND, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.A = m.Channels.Read(int(s.address))
			m.Channels.Clear(int(s.address))
			return false
		},
		{opcode: opMASK, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.A &= word.Word(s.address) & word.Mask
			return false
		},
		{opcode: opREAD, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.A = m.Channels.Read(int(s.address))
			return false
		},
		{opcode: opWRITE, extended: true}: func(m *Machine, s *stepInfo) bool {
			m.Channels.Write(int(s.address), m.A)
			return false
		},
		{opcode: opNOOP, extended: true}: func(m *Machine, s *stepInfo) bool {
			return false
		},
	}
}

/*
 * AGC - Fixed and erasable memory, bank-addressed.
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

// Package memory holds the AGC's two address spaces: 36 banks of 1024-word
// fixed (rope) memory, and 8 banks of 256-word erasable memory. Both are
// addressed through a bank number supplied by the caller (the execution
// engine owns FB/EB/BB); this package only knows how to turn (bank, offset)
// into a flat index and enforce the parity/range rules of the data model.
package memory

import "github.com/rcornwell/agc/word"

const (
	// FixedBanks is the number of 1024-word pages of fixed memory.
	FixedBanks = 36
	// FixedBankSize is the number of words per fixed bank.
	FixedBankSize = 1024
	// FixedWords is the total size of fixed memory.
	FixedWords = FixedBanks * FixedBankSize

	// ErasableBanks is the number of 256-word pages of erasable memory.
	ErasableBanks = 8
	// ErasableBankSize is the number of words per erasable bank.
	ErasableBankSize = 256
	// ErasableWords is the total size of erasable memory.
	ErasableWords = ErasableBanks * ErasableBankSize
)

// Memory is the AGC's fixed and erasable store.
type Memory struct {
	Fixed    [FixedWords]word.Word
	Erasable [ErasableWords]word.Word

	ParityFail bool // latched on out-of-range access or bad stored parity
}

// New returns a zeroed memory.
func New() *Memory {
	return &Memory{}
}

// ReadFixed reads word (fb, offset). An out-of-range flat address latches
// ParityFail and returns zero.
func (m *Memory) ReadFixed(fb uint8, offset uint32) word.Word {
	addr := uint32(fb)*FixedBankSize + offset
	if addr >= FixedWords {
		m.ParityFail = true
		return 0
	}
	return m.Fixed[addr]
}

// ReadErasable reads word (eb, offset) from the 256-word-per-bank erasable
// view. An out-of-range flat address latches ParityFail and returns zero.
func (m *Memory) ReadErasable(eb uint8, offset uint32) word.Word {
	addr := uint32(eb)*ErasableBankSize + offset
	if addr >= ErasableWords {
		m.ParityFail = true
		return 0
	}
	return m.Erasable[addr]
}

// WriteFixed normalizes and stores v at (fb, offset), then latches
// ParityFail if the stored word fails odd parity or the address is out of
// range. Real AGC fixed memory is ROM; this simulator allows writes to it
// for convenience (self-modifying test programs, loaders).
func (m *Memory) WriteFixed(fb uint8, offset uint32, v word.Word) {
	addr := uint32(fb)*FixedBankSize + offset
	if addr >= FixedWords {
		m.ParityFail = true
		return
	}
	v = word.Normalize(v)
	m.Fixed[addr] = v
	if !word.Parity(v) {
		m.ParityFail = true
	}
}

// WriteErasable normalizes and stores v at (eb, offset), then latches
// ParityFail if the stored word fails odd parity or the address is out of
// range.
func (m *Memory) WriteErasable(eb uint8, offset uint32, v word.Word) {
	addr := uint32(eb)*ErasableBankSize + offset
	if addr >= ErasableWords {
		m.ParityFail = true
		return
	}
	v = word.Normalize(v)
	m.Erasable[addr] = v
	if !word.Parity(v) {
		m.ParityFail = true
	}
}

// LoadFixed copies prog into fixed memory starting at (fb, 0), running on
// into the following banks and truncating silently at the end of fixed
// memory. Used by the binary loader.
func (m *Memory) LoadFixed(fb uint8, prog []word.Word) {
	for i, v := range prog {
		addr := uint32(fb)*FixedBankSize + uint32(i)
		if addr >= FixedWords {
			return
		}
		m.Fixed[addr] = word.Normalize(v)
	}
}

/*
 * AGC - 15-bit one's-complement word arithmetic.
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

// Package word implements the AGC's 15-bit one's-complement arithmetic
// primitives. Every inter-component word transport passes through
// Normalize so that 0x7FFF (negative zero) never reaches storage.
package word

import "math/bits"

// Word is a 15-bit one's-complement value. Only the low 15 bits are ever
// significant; callers must not rely on higher bits being clear.
type Word uint16

const (
	// Mask covers the 15 significant bits of a Word.
	Mask Word = 0x7FFF
	// Sign is bit 14, the one's-complement sign bit.
	Sign Word = 0x4000
	// NegativeZero is the all-ones 15-bit pattern, normalized to zero
	// on every write per I-NOZERO.
	NegativeZero Word = 0x7FFF
)

// Normalize masks v to 15 bits and collapses negative zero to positive zero.
func Normalize(v Word) Word {
	v &= Mask
	if v == NegativeZero {
		return 0
	}
	return v
}

// Add performs one's-complement addition with end-around carry: any carry
// out of bit 14 is folded back into bit 0. The result is normalized.
func Add(a, b Word) Word {
	s := uint32(a&Mask) + uint32(b&Mask)
	for s&0x8000 != 0 {
		s = (s & 0x7FFF) + (s >> 15)
	}
	return Normalize(Word(s))
}

// Complement returns the bitwise NOT of v masked to 15 bits. Note that
// Complement(0) == NegativeZero; callers that store the result must
// normalize it themselves.
func Complement(v Word) Word {
	return ^v & Mask
}

// Sub computes a - b as Add(a, Complement(b)).
func Sub(a, b Word) Word {
	return Add(a, Complement(b))
}

// SignOf returns 0 for zero, -1 for a negative word, +1 for a positive word.
func SignOf(v Word) int {
	if IsZero(v) {
		return 0
	}
	if IsNegative(v) {
		return -1
	}
	return 1
}

// IsNegative reports whether bit 14 (the sign bit) is set.
func IsNegative(v Word) bool {
	return v&Sign != 0
}

// IsZero reports whether v is either zero representation.
func IsZero(v Word) bool {
	return v == 0 || v == NegativeZero
}

// Parity reports odd parity over the 15 significant bits: true iff the
// popcount of the masked word is odd.
func Parity(v Word) bool {
	return bits.OnesCount16(uint16(v&Mask))%2 == 1
}

/*
 * AGC - Binary program loader.
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

// Package loader reads a raw big-endian binary program image into a slice
// of 15-bit words, per §6's external binary loader interface.
package loader

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/rcornwell/agc/word"
)

// ErrOddLength is returned when the input byte stream is not a whole
// number of 16-bit quantities.
var ErrOddLength = errors.New("agc: program image has an odd number of bytes")

// Load reads r as a sequence of big-endian 16-bit quantities, masking
// each to 15 bits, until EOF.
func Load(r io.Reader) ([]word.Word, error) {
	br := bufio.NewReader(r)
	var prog []word.Word
	for {
		var raw uint16
		err := binary.Read(br, binary.BigEndian, &raw)
		if errors.Is(err, io.EOF) {
			return prog, nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return prog, ErrOddLength
		}
		if err != nil {
			return prog, err
		}
		prog = append(prog, word.Word(raw)&word.Mask)
	}
}

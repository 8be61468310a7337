/*
 * AGC - I/O channel file.
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

// Package channel implements the AGC's 33-entry numbered I/O channel file,
// including the bank-register side effect of channel 12 and the DSKY
// aliasing of channels 10/11/30/31.
package channel

import "github.com/rcornwell/agc/word"

// NumChannels is the size of the channel file.
const NumChannels = 33

const (
	ChanDskyVerb = 10
	ChanDskyNoun = 11
	ChanBank     = 12
	ChanUplink   = 30
	ChanDownlink = 31
)

// Hooks lets the owning machine observe channel side effects without this
// package depending on the machine's other subsystems.
type Hooks struct {
	// BankWrite is called with the raw channel-12 value on write so the
	// engine can decompose and apply EB/FB/BB.
	BankWrite func(v word.Word)
	// DskyVerbWrite/DskyNounWrite mirror channel 10/11 writes into the
	// DSKY's latched verb/noun.
	DskyVerbWrite func(v word.Word)
	DskyNounWrite func(v word.Word)
	// Uprupt/Downrupt fire on a read of channel 30/31.
	Uprupt   func()
	Downrupt func()
}

// Channels is the 33-word I/O channel file.
type Channels struct {
	words [NumChannels]word.Word
	Hooks Hooks

	// DskyVerb/DskyNoun mirror the DSKY's current latches so that reads
	// of channel 10/11 return live values without a dependency cycle.
	DskyVerb word.Word
	DskyNoun word.Word
}

// New returns a channel file with all channels clear.
func New() *Channels {
	return &Channels{}
}

// Read returns channel i, applying the read-side effects of §4.3: channel
// 10/11 alias the DSKY verb/noun latches, and reading channel 30/31 raises
// UPRUPT/DOWNRUPT. Out-of-range indices return the absent sentinel (zero).
func (c *Channels) Read(i int) word.Word {
	if i < 0 || i >= NumChannels {
		return 0
	}
	switch i {
	case ChanDskyVerb:
		return c.DskyVerb
	case ChanDskyNoun:
		return c.DskyNoun
	case ChanUplink:
		if c.Hooks.Uprupt != nil {
			c.Hooks.Uprupt()
		}
	case ChanDownlink:
		if c.Hooks.Downrupt != nil {
			c.Hooks.Downrupt()
		}
	}
	return c.words[i]
}

// Write stores v & 0x7FFF into channel i. Channel 12 additionally
// decomposes the value into EB/FB/BB via Hooks.BankWrite; channels 10/11
// additionally mirror into the DSKY latch callbacks. Out-of-range indices
// are silently ignored.
func (c *Channels) Write(i int, v word.Word) {
	if i < 0 || i >= NumChannels {
		return
	}
	v &= word.Mask
	c.words[i] = v

	switch i {
	case ChanBank:
		if c.Hooks.BankWrite != nil {
			c.Hooks.BankWrite(v)
		}
	case ChanDskyVerb:
		c.DskyVerb = v
		if c.Hooks.DskyVerbWrite != nil {
			c.Hooks.DskyVerbWrite(v)
		}
	case ChanDskyNoun:
		c.DskyNoun = v
		if c.Hooks.DskyNounWrite != nil {
			c.Hooks.DskyNounWrite(v)
		}
	}
}

// Clear zeroes channel i without side effects, used by RAND's "clear on
// read" semantics.
func (c *Channels) Clear(i int) {
	if i < 0 || i >= NumChannels {
		return
	}
	c.words[i] = 0
}

// DecomposeBank splits a channel-12 value into EB (bits 3..5) and FB (bits
// 9..13), matching §4.3's EB = (v>>3)&07, FB = (v>>9)&037.
func DecomposeBank(v word.Word) (eb, fb uint8) {
	eb = uint8(v>>3) & 0o7
	fb = uint8(v>>9) & 0o37
	return eb, fb
}

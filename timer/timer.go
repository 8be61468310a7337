/*
 * AGC - Hardware counter timers.
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

// Package timer drives the AGC's TIME1/3/4/5/6 counters. Real elapsed time
// is converted to whole Memory Cycle Times (1/1.024 MHz) and fed through
// Tick; tests bypass the wall clock entirely with TickMCTs.
package timer

import (
	"time"

	"github.com/rcornwell/agc/word"
)

// mctDuration is the simulated Memory Cycle Time: 1/1.024 MHz.
const mctDuration = time.Second / 1024000

// Timers holds the five AGC counters plus the wall-clock anchor used to
// convert Tick's elapsed-time argument into whole MCTs.
type Timers struct {
	Time1 word.Word
	Time3 word.Word
	Time4 word.Word
	Time5 word.Word
	Time6 word.Word

	lastTick  time.Time
	carryMCTs time.Duration
}

// New returns timers all zeroed, anchored to now.
func New() *Timers {
	return &Timers{lastTick: time.Now()}
}

// Overflow reports which of T3/T4/T5 overflowed on a TickMCTs call: the
// counter was at 0x7FFF just before one of its increments (the
// one's-complement add then leaves it at 1).
type Overflow struct {
	T3, T4, T5 bool
}

// Tick advances the timers by however many whole MCTs have elapsed since
// the last call (or since New), tracking sub-MCT remainder so ticks driven
// by an irregular real-time source don't lose time.
func (t *Timers) Tick() Overflow {
	now := time.Now()
	elapsed := now.Sub(t.lastTick) + t.carryMCTs
	t.lastTick = now

	mcts := int(elapsed / mctDuration)
	t.carryMCTs = elapsed % mctDuration
	return t.TickMCTs(mcts)
}

// TickMCTs deterministically advances the timers by n MCTs, bypassing the
// wall clock. Each MCT increments TIME1, TIME3, TIME4, TIME5 and TIME6 by
// one; TIME3/4/5 that were at 0x7FFF just before an increment raise the
// matching overflow flag. TIME1 and TIME6 never raise here: TIME6 on real
// hardware is a decrementing counter with separate control bits (see
// design notes), modeled here as a plain incrementing counter for
// consistency with TIME1.
func (t *Timers) TickMCTs(n int) Overflow {
	var ov Overflow
	for i := 0; i < n; i++ {
		t.Time1 = word.Add(t.Time1, 1)
		t.Time6 = word.Add(t.Time6, 1)

		if t.Time3 == 0x7FFF {
			ov.T3 = true
		}
		t.Time3 = word.Add(t.Time3, 1)

		if t.Time4 == 0x7FFF {
			ov.T4 = true
		}
		t.Time4 = word.Add(t.Time4, 1)

		if t.Time5 == 0x7FFF {
			ov.T5 = true
		}
		t.Time5 = word.Add(t.Time5, 1)
	}
	return ov
}

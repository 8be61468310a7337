/*
 * AGC - Display/Keyboard operator interface.
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

// Package dsky models the AGC's Display/Keyboard: verb/noun entry, a
// buffered input queue, a six-row display bank, and the status light
// panel.
package dsky

import "fmt"

// Mode selects how Output formats verb/noun pairs.
type Mode int

const (
	DEC Mode = iota
	OCT
)

// Light names the DSKY's fixed set of status lamps.
type Light string

const (
	UplinkActy Light = "UPLINK_ACTY"
	NoAtt      Light = "NO_ATT"
	Stby       Light = "STBY"
	KeyRel     Light = "KEY_REL"
	OprErr     Light = "OPR_ERR"
	Temp       Light = "TEMP"
	GimbalLock Light = "GIMBAL_LOCK"
	Prog       Light = "PROG"
)

var allLights = []Light{UplinkActy, NoAtt, Stby, KeyRel, OprErr, Temp, GimbalLock, Prog}

// entry is one buffered verb/noun input.
type entry struct {
	verb uint8
	noun uint8
}

// DSKY is the operator interface state.
type DSKY struct {
	Verb uint8
	Noun uint8

	buffer []entry
	Display [6]string
	Lights  map[Light]bool
	Mode    Mode
}

// New returns a DSKY with every display row "00000", all lights off, and DEC
// formatting.
func New() *DSKY {
	d := &DSKY{
		Lights: make(map[Light]bool, len(allLights)),
		Mode:   DEC,
	}
	for i := range d.Display {
		d.Display[i] = "00000"
	}
	for _, l := range allLights {
		d.Lights[l] = false
	}
	return d
}

// Input accepts a verb/noun pair from the keyboard and raises KEYRUPT
// either way. If either value exceeds 7 bits, OPR_ERR lights and the pair
// is discarded; otherwise both are masked to 7 bits, latched, queued, and
// KEY_REL lights. The caller supplies raiseKeyrupt to trigger KEYRUPT,
// keeping this package free of a dependency on the interrupt controller's
// type.
func (d *DSKY) Input(verb, noun uint8, raiseKeyrupt func()) {
	if verb > 0x7F || noun > 0x7F {
		d.Lights[OprErr] = true
		if raiseKeyrupt != nil {
			raiseKeyrupt()
		}
		return
	}
	verb &= 0x7F
	noun &= 0x7F
	d.Verb = verb
	d.Noun = noun
	d.buffer = append(d.buffer, entry{verb: verb, noun: noun})
	d.Lights[KeyRel] = true
	if raiseKeyrupt != nil {
		raiseKeyrupt()
	}
}

// Output pops the oldest buffered verb/noun pair and formats it into the
// display bank, zero-filling rows 2..5. Returns false when the buffer is
// empty.
func (d *DSKY) Output() ([6]string, bool) {
	if len(d.buffer) == 0 {
		return d.Display, false
	}
	e := d.buffer[0]
	d.buffer = d.buffer[1:]

	var format string
	switch d.Mode {
	case OCT:
		format = "%05o"
	default:
		format = "%05d"
	}
	d.Display[0] = fmt.Sprintf(format, e.verb)
	d.Display[1] = fmt.Sprintf(format, e.noun)
	for i := 2; i < 6; i++ {
		d.Display[i] = "00000"
	}
	d.Lights[Prog] = true
	return d.Display, true
}

// SetMode accepts only DEC or OCT; any other value sets OPR_ERR and leaves
// the mode unchanged.
func (d *DSKY) SetMode(m Mode) {
	if m != DEC && m != OCT {
		d.Lights[OprErr] = true
		return
	}
	d.Mode = m
}

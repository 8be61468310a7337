/*
 * AGC - Priority interrupt controller.
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

// Package interrupt implements the AGC's priority-ordered interrupt queue.
// Pending vectors are kept in a small sorted slice rather than a heap. The
// slice is not capped: entries beyond the RUPT-LOCK threshold latch
// RuptLock and are still queued.
package interrupt

import "log/slog"

// Kind names one of the AGC's interrupt sources.
type Kind int

const (
	T3RUPT Kind = iota
	T4RUPT
	T5RUPT
	DSRUPT
	KEYRUPT
	UPRUPT
	DOWNRUPT
	EDRUPT
)

func (k Kind) String() string {
	switch k {
	case T3RUPT:
		return "T3RUPT"
	case T4RUPT:
		return "T4RUPT"
	case T5RUPT:
		return "T5RUPT"
	case DSRUPT:
		return "DSRUPT"
	case KEYRUPT:
		return "KEYRUPT"
	case UPRUPT:
		return "UPRUPT"
	case DOWNRUPT:
		return "DOWNRUPT"
	case EDRUPT:
		return "EDRUPT"
	default:
		return "UNKNOWN"
	}
}

// vectors maps each interrupt source to its fixed entry address.
var vectors = map[Kind]uint16{
	T3RUPT:   0x4004,
	T4RUPT:   0x4008,
	T5RUPT:   0x400C,
	DSRUPT:   0x4010,
	KEYRUPT:  0x4014,
	UPRUPT:   0x4018,
	DOWNRUPT: 0x401C,
}

// priority maps each source to its scheduling priority; higher services
// first. EDRUPT shares KEYRUPT/T5RUPT/UPRUPT/DOWNRUPT's priority of 1.
var priority = map[Kind]int{
	T3RUPT:   3,
	T4RUPT:   2,
	DSRUPT:   2,
	T5RUPT:   1,
	KEYRUPT:  1,
	UPRUPT:   1,
	DOWNRUPT: 1,
	EDRUPT:   1,
}

// lockThreshold is the pending count beyond which RUPT-LOCK latches.
const lockThreshold = 5

// pending is one queued, not-yet-serviced interrupt.
type pending struct {
	kind     Kind
	priority int
	vector   uint16
	arrival  uint64
}

// Controller tracks pending interrupts and the enable/active/return state
// the execution engine consults between instructions.
type Controller struct {
	Enabled  bool
	Active   bool
	RuptLock bool
	Return   uint16 // saved PC, restored by Resume

	queue   []pending
	arrival uint64
}

// New returns a controller with interrupts enabled, matching the AGC's
// power-on default.
func New() *Controller {
	return &Controller{Enabled: true}
}

// Trigger enqueues kind if interrupts are enabled and kind is a known
// vector. Entries are kept sorted by priority descending, ties broken by
// arrival order (stable). Exceeding lockThreshold pending entries latches
// RuptLock.
func (c *Controller) Trigger(kind Kind) {
	vec, known := vectors[kind]
	if !c.Enabled || !known {
		return
	}
	p := pending{kind: kind, priority: priority[kind], vector: vec, arrival: c.arrival}
	c.arrival++

	i := len(c.queue)
	for i > 0 && c.queue[i-1].priority < p.priority {
		i--
	}
	c.queue = append(c.queue, pending{})
	copy(c.queue[i+1:], c.queue[i:])
	c.queue[i] = p

	if len(c.queue) > lockThreshold {
		c.RuptLock = true
		slog.Warn("RUPT-LOCK: interrupt flood unserviced", "pending", len(c.queue))
	}
}

// Edrupt synthesizes a pending EDRUPT entry at vector if interrupts are
// enabled, bypassing the fixed vector table (software-selectable target).
func (c *Controller) Edrupt(vector uint16) {
	if !c.Enabled {
		return
	}
	p := pending{kind: EDRUPT, priority: priority[EDRUPT], vector: vector, arrival: c.arrival}
	c.arrival++

	i := len(c.queue)
	for i > 0 && c.queue[i-1].priority < p.priority {
		i--
	}
	c.queue = append(c.queue, pending{})
	copy(c.queue[i+1:], c.queue[i:])
	c.queue[i] = p

	if len(c.queue) > lockThreshold {
		c.RuptLock = true
	}
}

// Process pops the highest-priority pending entry and returns its vector,
// saving pc as the return address, if interrupts are enabled and none is
// currently active. Returns (0, false) when nothing is serviced.
func (c *Controller) Process(pc uint16) (vector uint16, serviced bool) {
	if !c.Enabled || c.Active || len(c.queue) == 0 {
		return 0, false
	}
	next := c.queue[0]
	c.queue = c.queue[1:]
	c.Return = pc
	c.Active = true
	return next.vector, true
}

// Resume clears Active and RuptLock and returns the saved return address.
func (c *Controller) Resume() uint16 {
	c.Active = false
	c.RuptLock = false
	return c.Return
}

// Inhint clears the enable flag (INHINT).
func (c *Controller) Inhint() {
	c.Enabled = false
}

// Relint sets the enable flag (RELINT).
func (c *Controller) Relint() {
	c.Enabled = true
}

// Pending reports how many interrupts are queued, for diagnostics/tests.
func (c *Controller) Pending() int {
	return len(c.queue)
}

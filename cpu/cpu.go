/*
 * AGC: main instruction fetch and execute.
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

// Package cpu is the AGC execution engine: the dispatch table, the
// fetch-execute cycle over fixed memory, the symbolic instruction
// interface used by tests, and the fault/interrupt bookkeeping that runs
// between instructions.
package cpu

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rcornwell/agc/channel"
	"github.com/rcornwell/agc/decode"
	"github.com/rcornwell/agc/dsky"
	"github.com/rcornwell/agc/interrupt"
	"github.com/rcornwell/agc/memory"
	"github.com/rcornwell/agc/timer"
	"github.com/rcornwell/agc/word"
)

// opKey identifies a dispatch-table slot: a basic-mode key folded from
// opcode and subcode by basicKey, or an extended-mode opcode number.
type opKey struct {
	opcode   uint8
	extended bool
}

// stepInfo carries everything an opcode handler needs for one instruction.
type stepInfo struct {
	opcode  uint8
	address uint16
}

// opHandler runs one instruction and reports whether it already set Z
// itself (an unconditional jump, or a branch that was taken), in which
// case the generic post-increment of §4.8 step 1 is skipped.
type opHandler func(m *Machine, step *stepInfo) (branchTaken bool)

// Machine is the whole AGC: registers, banked memory, channels, timers,
// interrupts and the DSKY, wired together the way the execution engine
// requires.
type Machine struct {
	A, L, Q, Z word.Word
	EB         uint8 // 3 bits
	FB         uint8 // 5 bits
	BB         uint8 // (FB<<3)|EB

	ExtendedMode bool
	CycleCount   uint64
	TCTrap       bool

	Memory    *memory.Memory
	Channels  *channel.Channels
	Timers    *timer.Timers
	Interrupt *interrupt.Controller
	Dsky      *dsky.DSKY

	table map[opKey]opHandler
}

// New wires a fresh machine: memory, channels, timers, interrupts and the
// DSKY, with channel 12/10/11/30/31 side effects hooked back into the
// machine's own state.
func New() *Machine {
	m := &Machine{
		Memory:    memory.New(),
		Channels:  channel.New(),
		Timers:    timer.New(),
		Interrupt: interrupt.New(),
		Dsky:      dsky.New(),
	}
	m.Channels.Hooks = channel.Hooks{
		BankWrite: func(v word.Word) {
			eb, fb := channel.DecomposeBank(v)
			m.setBanks(eb, fb)
		},
		DskyVerbWrite: func(v word.Word) {
			m.Dsky.Verb = uint8(v) & 0x7F
		},
		DskyNounWrite: func(v word.Word) {
			m.Dsky.Noun = uint8(v) & 0x7F
		},
		Uprupt:   func() { m.Interrupt.Trigger(interrupt.UPRUPT) },
		Downrupt: func() { m.Interrupt.Trigger(interrupt.DOWNRUPT) },
	}
	m.createTable()
	return m
}

// setBanks applies new EB/FB values and recomputes BB, per the invariant
// that BB == (FB<<3)|EB outside the body of this helper.
func (m *Machine) setBanks(eb, fb uint8) {
	m.EB = eb & 0o7
	m.FB = fb & 0o37
	m.BB = (m.FB << 3) | m.EB
}

// LoadProgram copies prog (already 15-bit words, as produced by the loader
// package) into fixed memory at the given bank, starting at offset 0.
func (m *Machine) LoadProgram(fb uint8, prog []word.Word) {
	m.Memory.LoadFixed(fb, prog)
}

// Step fetches the word at Z in fixed memory (via FB), decodes it per the
// current extended-mode latch, and dispatches it.
func (m *Machine) Step() {
	raw := m.Memory.ReadFixed(m.FB, uint32(m.Z))
	inst := decode.Decode(raw, m.ExtendedMode)
	opcode := inst.Opcode
	if !m.ExtendedMode {
		opcode = basicKey(inst.Opcode, inst.Subcode)
	}
	m.run(opcode, inst.Address, m.ExtendedMode)
}

// Execute runs one instruction named by mnemonic with an optional
// address/immediate operand, for the symbolic instruction interface used
// by tests: it bypasses word decoding and dispatches directly by the
// mnemonic's own opcode identity. Returns an error for an unrecognized
// mnemonic, a programmer error per §7.
func (m *Machine) Execute(mnemonic string, operand uint16) error {
	opcode, extended, ok := mnemonicToOpcode(mnemonic)
	if !ok {
		return fmt.Errorf("agc: unknown mnemonic %q", mnemonic)
	}
	m.run(opcode, operand, extended)
	return nil
}

// run executes the instruction identified by (opcode, extended) and then
// performs the §4.8 post-instruction sequence: PC advancement (unless the
// handler already branched), extended-mode clearing, one drained
// interrupt, and cycle accounting.
func (m *Machine) run(opcode uint8, address uint16, extended bool) {
	key := opKey{opcode: opcode, extended: extended}
	step := &stepInfo{opcode: opcode, address: address}

	wasExtend := key == opKey{opcode: opExtend, extended: false}

	branchTaken := false
	if handler, ok := m.table[key]; ok {
		branchTaken = handler(m, step)
	} else {
		slog.Warn("agc: unimplemented opcode", "opcode", opcode, "extended", extended)
	}

	// 1. PC advancement, skipped for instructions that already set Z.
	if !branchTaken {
		m.Z = word.Add(m.Z, 1)
	}

	// 2. Extended-mode clears unless this instruction was itself EXTEND.
	if m.ExtendedMode && !wasExtend {
		m.ExtendedMode = false
	}

	// 3. Drain one interrupt.
	if vec, ok := m.Interrupt.Process(uint16(m.Z)); ok {
		m.Z = word.Word(vec)
	}

	// 4. Cycle accounting.
	m.CycleCount += uint64(cycleCost(key))
}

// Run drives the machine's fetch-execute loop and its real-time timer tick
// concurrently until ctx is canceled, using golang.org/x/sync/errgroup so
// that either goroutine stopping (or ctx cancellation) shuts both down —
// the same supervision shape as the teacher's core/timer goroutine pair,
// expressed with errgroup instead of a hand-rolled WaitGroup+done-channel.
func (m *Machine) Run(ctx context.Context, instructionDelay time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				ov := m.Timers.Tick()
				if ov.T3 {
					m.Interrupt.Trigger(interrupt.T3RUPT)
				}
				if ov.T4 {
					m.Interrupt.Trigger(interrupt.T4RUPT)
				}
				if ov.T5 {
					m.Interrupt.Trigger(interrupt.T5RUPT)
				}
			}
		}
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
				m.Step()
				if instructionDelay > 0 {
					time.Sleep(instructionDelay)
				}
			}
		}
	})

	return g.Wait()
}

// MachineState is a value-type snapshot of the registers and fault
// latches, suitable for deep-equal diffing in tests and for the TUI's
// inspection view.
type MachineState struct {
	A, L, Q, Z   word.Word
	EB, FB, BB   uint8
	ExtendedMode bool
	CycleCount   uint64
	TCTrap       bool
	RuptLock     bool
	ParityFail   bool
}

// Snapshot copies the machine's register file and fault latches.
func (m *Machine) Snapshot() MachineState {
	return MachineState{
		A: m.A, L: m.L, Q: m.Q, Z: m.Z,
		EB: m.EB, FB: m.FB, BB: m.BB,
		ExtendedMode: m.ExtendedMode,
		CycleCount:   m.CycleCount,
		TCTrap:       m.TCTrap,
		RuptLock:     m.Interrupt.RuptLock,
		ParityFail:   m.Memory.ParityFail,
	}
}

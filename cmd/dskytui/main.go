/*
 * AGC - DSKY debugger TUI.
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

// Command dskytui is a single-step interactive debugger for the AGC
// simulator: a text-mode stand-in for the real DSKY panel plus a register
// and fixed-memory inspector, one instruction at a time.
package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/agc/cpu"
	"github.com/rcornwell/agc/disasm"
	"github.com/rcornwell/agc/loader"
)

type model struct {
	machine *cpu.Machine
	prevZ   uint16
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "n":
		m.prevZ = uint16(m.machine.Z)
		m.machine.Step()
	}
	return m, nil
}

func (m model) registers() string {
	s := m.machine.Snapshot()
	return fmt.Sprintf(
		"PC(Z): %04o (was %04o)\nA: %04o\nL: %04o\nQ: %04o\nFB/EB/BB: %o/%o/%o\nextended: %v  cycles: %d\ntc_trap: %v  rupt_lock: %v  parity_fail: %v",
		uint16(s.Z), m.prevZ, uint16(s.A), uint16(s.L), uint16(s.Q),
		s.FB, s.EB, s.BB, s.ExtendedMode, s.CycleCount,
		s.TCTrap, s.RuptLock, s.ParityFail,
	)
}

func (m model) nextInstruction() string {
	raw := m.machine.Memory.ReadFixed(m.machine.Snapshot().FB, uint32(m.machine.Z))
	return disasm.One(raw, m.machine.Snapshot().ExtendedMode)
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.registers(),
		"",
		"next: "+m.nextInstruction(),
		"",
		spew.Sdump(m.machine.Dsky.Display),
		"",
		"space/n: step   q: quit",
	)
}

func main() {
	optProgram := getopt.StringLong("program", 'p', "", "Program image to load")
	optBank := getopt.StringLong("bank", 'b', "0", "Fixed bank to load into")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp || optProgram == nil || *optProgram == "" {
		getopt.Usage()
		os.Exit(0)
	}

	bank, err := strconv.ParseUint(*optBank, 0, 8)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad --bank value:", err)
		os.Exit(1)
	}

	f, err := os.Open(*optProgram)
	if err != nil {
		fmt.Fprintln(os.Stderr, "can't open program image:", err)
		os.Exit(1)
	}
	prog, err := loader.Load(f)
	f.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "can't load program image:", err)
		os.Exit(1)
	}

	machine := cpu.New()
	machine.LoadProgram(uint8(bank), prog)

	if _, err := tea.NewProgram(model{machine: machine}).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cpu

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcornwell/agc/dsky"
	"github.com/rcornwell/agc/interrupt"
	"github.com/rcornwell/agc/word"
)

func TestScenarioArithmeticSequence(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 0, 5)
	m.Memory.WriteErasable(0, 1, 10)
	m.A = 5

	require.NoError(t, m.Execute("AD", 1))
	require.NoError(t, m.Execute("TS", 2))
	require.NoError(t, m.Execute("CA", 2))
	require.NoError(t, m.Execute("SU", 1))

	assert.Equal(t, word.Word(5), m.A)
	assert.Equal(t, word.Word(15), m.Memory.ReadErasable(0, 2))
}

func TestScenarioDCANegativeZeroCollapses(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 3, 0x7FFF)
	m.Memory.WriteErasable(0, 4, 0x7FFF)

	require.NoError(t, m.Execute("DCA", 3))

	assert.Equal(t, word.Word(0), m.A)
	assert.Equal(t, word.Word(0), m.L)
}

func TestScenarioDskyOutputFormatting(t *testing.T) {
	m := New()
	m.Dsky.Input(16, 25, nil)
	display, ok := m.Dsky.Output()
	require.True(t, ok)
	assert.Equal(t, "00016", display[0])
	assert.Equal(t, "00025", display[1])
	assert.True(t, m.Dsky.Lights[dsky.Prog])
}

func TestScenarioTimerOverflowVectorsInterrupt(t *testing.T) {
	m := New()
	m.Timers.Time3 = 0x7FFF

	ov := m.Timers.TickMCTs(1)
	require.True(t, ov.T3)
	m.Interrupt.Trigger(interrupt.T3RUPT)

	require.NoError(t, m.Execute("NOOP", 0))
	assert.Equal(t, word.Word(0x4004), m.Z)
}

func TestScenarioWriteChannel10SetsDskyVerb(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 13, 16)

	require.NoError(t, m.Execute("CA", 13))
	require.NoError(t, m.Execute("WRITE", 10))

	assert.Equal(t, word.Word(16), m.Channels.DskyVerb)
}

func TestScenarioWriteChannel12DecomposesBanks(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 15, 0o7070)

	require.NoError(t, m.Execute("CA", 15))
	require.NoError(t, m.Execute("WRITE", 12))

	assert.Equal(t, uint8(7), m.EB)
	assert.Equal(t, uint8(7), m.FB)
	assert.Equal(t, uint8(0o77), m.BB)
}

func TestScenarioRuptLockAfterSixUnserviced(t *testing.T) {
	m := New()
	for i := 0; i < 6; i++ {
		m.Interrupt.Trigger(interrupt.T3RUPT)
	}
	assert.True(t, m.Interrupt.RuptLock)
}

func TestTCSelfLoopLatchesTrap(t *testing.T) {
	m := New()
	m.Z = 0x100
	require.NoError(t, m.Execute("TC", 0x100))
	assert.True(t, m.TCTrap)
	assert.Equal(t, word.Word(0x100), m.Z)
}

func TestExtendedModeLatchesThroughOneOp(t *testing.T) {
	m := New()
	require.NoError(t, m.Execute("EXTEND", 0))
	assert.True(t, m.ExtendedMode)
	require.NoError(t, m.Execute("NOOP", 0))
	assert.False(t, m.ExtendedMode)
}

func TestExtendedModeHoldsThroughSecondExtend(t *testing.T) {
	m := New()
	require.NoError(t, m.Execute("EXTEND", 0))
	require.NoError(t, m.Execute("EXTEND", 0))
	assert.True(t, m.ExtendedMode)
}

func TestBranchZeroFlagTakenDoesNotDoubleAdvance(t *testing.T) {
	m := New()
	m.Z = 0
	m.A = 0
	require.NoError(t, m.Execute("BZF", 0x200))
	assert.Equal(t, word.Word(0x200), m.Z)
}

func TestBranchZeroFlagNotTakenAdvancesNormally(t *testing.T) {
	m := New()
	m.Z = 0
	m.A = word.Sign // negative, bit 14 set
	require.NoError(t, m.Execute("BZF", 0x200))
	assert.Equal(t, word.Word(1), m.Z)
}

func TestCCSSkipsOnZero(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 0, 0)
	m.Z = 0
	require.NoError(t, m.Execute("CCS", 0))
	// skip adds 1, then the generic post-increment adds 1 more.
	assert.Equal(t, word.Word(2), m.Z)
}

func TestUnknownMnemonicIsProgrammerError(t *testing.T) {
	m := New()
	err := m.Execute("BOGUS", 0)
	assert.Error(t, err)
}

func TestDivideByZeroRaisesDSRUPTNotError(t *testing.T) {
	m := New()
	require.NoError(t, m.Execute("EXTEND", 0))
	require.NoError(t, m.Execute("DV", 0))
	assert.Equal(t, word.Word(0), m.A)
	assert.Equal(t, word.Word(0), m.L)
	// the single post-instruction drain services DSRUPT immediately since
	// no interrupt was already active.
	assert.True(t, m.Interrupt.Active)
	assert.Equal(t, word.Word(0x4010), m.Z)
}

func TestSnapshotReflectsFaultLatches(t *testing.T) {
	m := New()
	m.Z = 0x10
	require.NoError(t, m.Execute("TC", 0x10))

	want := MachineState{
		A: 0, L: 0, Q: 0, Z: 0x10,
		TCTrap:     true,
		CycleCount: 1,
	}
	got := m.Snapshot()
	if diff := deep.Equal(want, got); diff != nil {
		t.Errorf("snapshot mismatch: %v", diff)
	}
}

func TestStepFetchesDecodesAndDispatchesFromFixedMemory(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 9, 77)
	// CA 9: basic-mode opcode 1 (no subcode), address 9.
	m.Memory.Fixed[0] = word.Word(1)<<12 | word.Word(9)
	m.Z = 0

	m.Step()

	assert.Equal(t, word.Word(77), m.A)
	assert.Equal(t, word.Word(1), m.Z)
}

func TestStepHandlesExtendedModeAcrossFetchedInstructions(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 3, 6)
	m.A = 7

	// word 0: basic EXTEND, raw opcode 6, no subcode.
	m.Memory.Fixed[0] = word.Word(6) << 12
	// word 1: extended MP 3.
	m.Memory.Fixed[1] = word.Word(opMP)<<10 | word.Word(3)
	m.Z = 0

	m.Step() // EXTEND
	assert.True(t, m.ExtendedMode)
	assert.Equal(t, word.Word(1), m.Z)

	m.Step() // MP 3, fetched and decoded while ExtendedMode is still latched
	assert.Equal(t, word.Word(42), m.A)
	assert.False(t, m.ExtendedMode)
	assert.Equal(t, word.Word(2), m.Z)
}

func TestIndexLoadsZFromErasableThenAdvancesPastIt(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 20, 0x50)

	require.NoError(t, m.Execute("INDEX", 20))

	assert.Equal(t, word.Word(0x51), m.Z)
}

func TestXchSwapsAWithErasable(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 7, 9)
	m.A = 3

	require.NoError(t, m.Execute("XCH", 7))

	assert.Equal(t, word.Word(9), m.A)
	assert.Equal(t, word.Word(3), m.Memory.ReadErasable(0, 7))
}

func TestCsComplementsIntoA(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 8, 5)

	require.NoError(t, m.Execute("CS", 8))

	assert.Equal(t, word.Complement(5), m.A)
}

func TestMskAndsAWithOperand(t *testing.T) {
	m := New()
	m.A = 0xFF

	require.NoError(t, m.Execute("MSK", 0x0F0))

	assert.Equal(t, word.Word(0xF0), m.A)
}

func TestMpMultipliesIntoAAndL(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 9, 4)
	m.A = 3

	require.NoError(t, m.Execute("MP", 9))

	assert.Equal(t, word.Word(12), m.A)
	assert.Equal(t, word.Word(0), m.L)
}

func TestDcsComplementsDoubleWord(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 10, 5)
	m.Memory.WriteErasable(0, 11, 7)

	require.NoError(t, m.Execute("DCS", 10))

	assert.Equal(t, word.Complement(5), m.A)
	assert.Equal(t, word.Complement(7), m.L)
}

func TestDadAddsDoubleWordWithoutStoring(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 12, 2)
	m.Memory.WriteErasable(0, 13, 3)

	require.NoError(t, m.Execute("DAD", 12))

	assert.Equal(t, word.Word(2), m.A)
	assert.Equal(t, word.Word(3), m.L)
}

func TestDasAddsDoubleWordAndStoresBack(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 14, 1)
	m.Memory.WriteErasable(0, 15, 1)
	m.A, m.L = 2, 2

	require.NoError(t, m.Execute("DAS", 14))

	assert.Equal(t, word.Word(3), m.A)
	assert.Equal(t, word.Word(3), m.L)
	assert.Equal(t, word.Word(3), m.Memory.ReadErasable(0, 14))
	assert.Equal(t, word.Word(3), m.Memory.ReadErasable(0, 15))
}

func TestDsuComplementsBothWordsThenAdds(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 16, 3)
	m.Memory.WriteErasable(0, 17, 4)

	require.NoError(t, m.Execute("DSU", 16))

	assert.Equal(t, word.Complement(3), m.A)
	assert.Equal(t, word.Complement(4), m.L)
}

func TestLxchSwapsLWithErasable(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 18, 9)
	m.L = 4

	require.NoError(t, m.Execute("LXCH", 18))

	assert.Equal(t, word.Word(9), m.L)
	assert.Equal(t, word.Word(4), m.Memory.ReadErasable(0, 18))
}

func TestQxchSwapsQWithErasable(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 19, 11)
	m.Q = 6

	require.NoError(t, m.Execute("QXCH", 19))

	assert.Equal(t, word.Word(11), m.Q)
	assert.Equal(t, word.Word(6), m.Memory.ReadErasable(0, 19))
}

func TestIncrAddsOneInPlace(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 21, 5)

	require.NoError(t, m.Execute("INCR", 21))

	assert.Equal(t, word.Word(6), m.Memory.ReadErasable(0, 21))
}

func TestAugAddsOneToA(t *testing.T) {
	m := New()
	m.A = 5

	require.NoError(t, m.Execute("AUG", 0))

	assert.Equal(t, word.Word(6), m.A)
}

func TestDimDecrementsPositiveAndIncrementsNegative(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 22, 5)
	m.Memory.WriteErasable(0, 23, word.Sign|3)

	require.NoError(t, m.Execute("DIM", 22))
	require.NoError(t, m.Execute("DIM", 23))

	assert.Equal(t, word.Word(4), m.Memory.ReadErasable(0, 22))
	assert.Equal(t, word.Sign|4, m.Memory.ReadErasable(0, 23))
}

func TestBzmTakenOnNegativeNonzeroA(t *testing.T) {
	m := New()
	m.Z = 0
	m.A = word.Sign | 5

	require.NoError(t, m.Execute("BZM", 0x300))

	assert.Equal(t, word.Word(0x300), m.Z)
}

func TestBzmNotTakenOnPositiveA(t *testing.T) {
	m := New()
	m.Z = 0
	m.A = 1

	require.NoError(t, m.Execute("BZM", 0x300))

	assert.Equal(t, word.Word(1), m.Z)
}

func TestInhintThenRelintToggleEnabled(t *testing.T) {
	m := New()
	require.True(t, m.Interrupt.Enabled)

	require.NoError(t, m.Execute("INHINT", 0))
	assert.False(t, m.Interrupt.Enabled)

	require.NoError(t, m.Execute("RELINT", 0))
	assert.True(t, m.Interrupt.Enabled)
}

func TestEdruptVectorsToSoftwareSelectedTarget(t *testing.T) {
	m := New()
	m.Z = 0x10

	require.NoError(t, m.Execute("EDRUPT", 0x555))

	assert.True(t, m.Interrupt.Active)
	assert.Equal(t, uint16(0x11), m.Interrupt.Return)
	assert.Equal(t, word.Word(0x555), m.Z)
}

func TestResumeRestoresSavedPCAndClearsActive(t *testing.T) {
	m := New()
	m.Interrupt.Active = true
	m.Interrupt.Return = 0x77

	require.NoError(t, m.Execute("RESUME", 0))

	assert.False(t, m.Interrupt.Active)
	assert.Equal(t, word.Word(0x77), m.Z)
}

func TestCyrRotatesRight(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 24, 1)

	require.NoError(t, m.Execute("CYR", 24))

	assert.Equal(t, word.Word(0x4000), m.Memory.ReadErasable(0, 24))
}

func TestSrShiftsRight(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 25, 6)

	require.NoError(t, m.Execute("SR", 25))

	assert.Equal(t, word.Word(3), m.Memory.ReadErasable(0, 25))
}

func TestSlShiftsLeft(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 26, 3)

	require.NoError(t, m.Execute("SL", 26))

	assert.Equal(t, word.Word(6), m.Memory.ReadErasable(0, 26))
}

func TestPincIncrementsOnlyWhenPositive(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 27, 5)
	m.Memory.WriteErasable(0, 28, word.Sign|2)

	require.NoError(t, m.Execute("PINC", 27))
	require.NoError(t, m.Execute("PINC", 28))

	assert.Equal(t, word.Word(6), m.Memory.ReadErasable(0, 27))
	assert.Equal(t, word.Sign|2, m.Memory.ReadErasable(0, 28))
}

func TestMincIncrementsOnlyWhenNegative(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 29, word.Sign|2)
	m.Memory.WriteErasable(0, 30, 5)

	require.NoError(t, m.Execute("MINC", 29))
	require.NoError(t, m.Execute("MINC", 30))

	assert.Equal(t, word.Add(word.Sign|2, 1), m.Memory.ReadErasable(0, 29))
	assert.Equal(t, word.Word(5), m.Memory.ReadErasable(0, 30))
}

func TestDxchSwapsDoubleWordWithAAndL(t *testing.T) {
	m := New()
	m.Memory.WriteErasable(0, 31, 8)
	m.Memory.WriteErasable(0, 32, 9)
	m.A, m.L = 100, 200

	require.NoError(t, m.Execute("DXCH", 31))

	assert.Equal(t, word.Word(8), m.A)
	assert.Equal(t, word.Word(9), m.L)
	assert.Equal(t, word.Word(100), m.Memory.ReadErasable(0, 31))
	assert.Equal(t, word.Word(200), m.Memory.ReadErasable(0, 32))
}

func TestCafReadsFixedMemoryIntoA(t *testing.T) {
	m := New()
	m.Memory.Fixed[50] = 77

	require.NoError(t, m.Execute("CAF", 50))

	assert.Equal(t, word.Word(77), m.A)
}

func TestTcafReadsFixedMemoryAndBranches(t *testing.T) {
	m := New()
	m.Memory.Fixed[60] = 88

	require.NoError(t, m.Execute("TCAF", 60))

	assert.Equal(t, word.Word(88), m.A)
	assert.Equal(t, word.Word(60), m.Z)
}

func TestRandReadsChannelThenClearsIt(t *testing.T) {
	m := New()
	m.Channels.Write(5, 0x123)

	require.NoError(t, m.Execute("RAND", 5))

	assert.Equal(t, word.Word(0x123), m.A)
	assert.Equal(t, word.Word(0), m.Channels.Read(5))
}

func TestMaskAndsAWithOperand(t *testing.T) {
	m := New()
	m.A = 0xFF

	require.NoError(t, m.Execute("MASK", 0x0F0))

	assert.Equal(t, word.Word(0xF0), m.A)
}

func TestReadDoesNotClearChannel(t *testing.T) {
	m := New()
	m.Channels.Write(6, 55)

	require.NoError(t, m.Execute("READ", 6))

	assert.Equal(t, word.Word(55), m.A)
	assert.Equal(t, word.Word(55), m.Channels.Read(6))
}

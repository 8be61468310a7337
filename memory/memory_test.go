package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcornwell/agc/word"
)

func TestReadWriteErasableRoundTrip(t *testing.T) {
	m := New()
	m.WriteErasable(2, 5, 0x0015)
	assert.Equal(t, word.Word(0x0015), m.ReadErasable(2, 5))
	assert.False(t, m.ParityFail)
}

func TestWriteNormalizesNegativeZero(t *testing.T) {
	m := New()
	m.WriteErasable(0, 0, word.NegativeZero)
	assert.Equal(t, word.Word(0), m.ReadErasable(0, 0))
}

func TestReadErasableOutOfRangeLatchesParity(t *testing.T) {
	m := New()
	got := m.ReadErasable(7, 256) // bank 7 offset 256 -> addr 2048, out of range
	assert.Equal(t, word.Word(0), got)
	assert.True(t, m.ParityFail)
}

func TestReadFixedOutOfRangeLatchesParity(t *testing.T) {
	m := New()
	got := m.ReadFixed(35, FixedBankSize) // one past last bank's end
	assert.Equal(t, word.Word(0), got)
	assert.True(t, m.ParityFail)
}

func TestWriteBadParityLatchesFlag(t *testing.T) {
	m := New()
	// 0x0003 has two set bits: even parity, so it fails the odd-parity check.
	m.WriteErasable(0, 0, 0x0003)
	assert.True(t, m.ParityFail)
}

func TestWriteGoodParityDoesNotLatch(t *testing.T) {
	m := New()
	// 0x0001 has one set bit: odd parity.
	m.WriteErasable(0, 0, 0x0001)
	assert.False(t, m.ParityFail)
}

func TestBankSelectionIsIndependentPerSpace(t *testing.T) {
	m := New()
	m.WriteFixed(3, 10, 0x0111)
	m.WriteErasable(3, 10, 0x0222)
	assert.Equal(t, word.Word(0x0111), m.ReadFixed(3, 10))
	assert.Equal(t, word.Word(0x0222), m.ReadErasable(3, 10))
}

func TestLoadFixedFillsFromOffsetZero(t *testing.T) {
	m := New()
	prog := []word.Word{0x0001, 0x0002, 0x0003}
	m.LoadFixed(1, prog)
	assert.Equal(t, word.Word(0x0001), m.ReadFixed(1, 0))
	assert.Equal(t, word.Word(0x0002), m.ReadFixed(1, 1))
	assert.Equal(t, word.Word(0x0003), m.ReadFixed(1, 2))
}

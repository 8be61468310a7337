package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCollapsesNegativeZero(t *testing.T) {
	assert.Equal(t, Word(0), Normalize(NegativeZero))
	assert.Equal(t, Word(0x1234), Normalize(0x1234))
	assert.Equal(t, Word(0), Normalize(0x8000)) // high bit outside 15 bits ignored
}

func TestAddIsCommutative(t *testing.T) {
	for a := 0; a < 0x8000; a += 0x137 {
		for b := 0; b < 0x8000; b += 0x29b {
			assert.Equal(t, Add(Word(a), Word(b)), Add(Word(b), Word(a)))
		}
	}
}

func TestAddIdentities(t *testing.T) {
	assert.Equal(t, Normalize(0x1234), Add(0x1234, 0))
	assert.Equal(t, Word(0), Add(0x1234, Complement(0x1234)))
	assert.Equal(t, Word(0), Add(NegativeZero, 0))
}

func TestAddEndAroundCarry(t *testing.T) {
	// 0x7FFF + 1 = 0x8000 carries out of bit 14; the low 15 bits are 0
	// and the carry folds back in as 1.
	assert.Equal(t, Word(1), Add(0x7FFF, 1))
}

func TestSubIsAddComplementDuality(t *testing.T) {
	for a := Word(0); a < 0x8000; a += 0x511 {
		for b := Word(0); b < 0x8000; b += 0x733 {
			assert.Equal(t, Add(a, Complement(b)), Sub(a, b))
		}
	}
}

func TestComplementOfZeroIsNegativeZero(t *testing.T) {
	assert.Equal(t, NegativeZero, Complement(0))
}

func TestSignOf(t *testing.T) {
	assert.Equal(t, 0, SignOf(0))
	assert.Equal(t, 0, SignOf(NegativeZero))
	assert.Equal(t, 1, SignOf(0x0001))
	assert.Equal(t, -1, SignOf(0x4001))
}

func TestIsNegative(t *testing.T) {
	assert.False(t, IsNegative(0x3FFF))
	assert.True(t, IsNegative(0x4000))
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(0))
	assert.True(t, IsZero(NegativeZero))
	assert.False(t, IsZero(1))
}

func TestParity(t *testing.T) {
	assert.False(t, Parity(0)) // zero bits set: even
	assert.True(t, Parity(1))  // one bit set: odd
	assert.False(t, Parity(0x3)) // two bits set: even
}

func TestFuzzNegativeZeroProducingPairs(t *testing.T) {
	// Any pair whose raw 15-bit sum is 0x7FFF before folding must still
	// normalize to a word that is never the stored negative-zero pattern.
	for a := Word(0); a < 0x8000; a += 0x1f1 {
		b := Word(0x7FFF) - a
		got := Add(a, b)
		assert.NotEqual(t, NegativeZero, got)
	}
}

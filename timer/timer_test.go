package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcornwell/agc/word"
)

func TestTickMCTsIncrementsAllFive(t *testing.T) {
	tm := New()
	tm.TickMCTs(1)
	assert.Equal(t, word.Word(1), tm.Time1)
	assert.Equal(t, word.Word(1), tm.Time3)
	assert.Equal(t, word.Word(1), tm.Time4)
	assert.Equal(t, word.Word(1), tm.Time5)
	assert.Equal(t, word.Word(1), tm.Time6)
}

func TestTime3OverflowRaisesT3(t *testing.T) {
	tm := New()
	tm.Time3 = 0x7FFF
	ov := tm.TickMCTs(1)
	assert.True(t, ov.T3)
	// end-around carry: 0x7FFF + 1 folds back to 1
	assert.Equal(t, word.Word(1), tm.Time3)
}

func TestTime4OverflowRaisesT4(t *testing.T) {
	tm := New()
	tm.Time4 = 0x7FFF
	ov := tm.TickMCTs(1)
	assert.True(t, ov.T4)
}

func TestTime5OverflowRaisesT5(t *testing.T) {
	tm := New()
	tm.Time5 = 0x7FFF
	ov := tm.TickMCTs(1)
	assert.True(t, ov.T5)
}

func TestTime1AndTime6NeverOverflowRupt(t *testing.T) {
	tm := New()
	tm.Time1 = 0x7FFF
	tm.Time6 = 0x7FFF
	ov := tm.TickMCTs(1)
	assert.False(t, ov.T3)
	assert.False(t, ov.T4)
	assert.False(t, ov.T5)
	assert.Equal(t, word.Word(1), tm.Time1)
	assert.Equal(t, word.Word(1), tm.Time6)
}

func TestTickMCTsZeroIsNoop(t *testing.T) {
	tm := New()
	tm.TickMCTs(0)
	assert.Equal(t, word.Word(0), tm.Time1)
}

package dsky

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputLatchesAndRaisesKeyrupt(t *testing.T) {
	d := New()
	raised := false
	d.Input(16, 25, func() { raised = true })

	assert.Equal(t, uint8(16), d.Verb)
	assert.Equal(t, uint8(25), d.Noun)
	assert.True(t, raised)
	assert.True(t, d.Lights[KeyRel])
}

func TestInputOutOfRangeSetsOprErr(t *testing.T) {
	d := New()
	raised := false
	d.Input(200, 0, func() { raised = true })

	assert.True(t, d.Lights[OprErr])
	assert.True(t, raised)
}

func TestOutputFormatsDecimal(t *testing.T) {
	d := New()
	d.Input(16, 25, func() {})
	display, ok := d.Output()
	assert.True(t, ok)
	assert.Equal(t, "00016", display[0])
	assert.Equal(t, "00025", display[1])
	assert.Equal(t, "00000", display[2])
	assert.True(t, d.Lights[Prog])
}

func TestOutputFormatsOctal(t *testing.T) {
	d := New()
	d.SetMode(OCT)
	d.Input(16, 25, func() {})
	display, ok := d.Output()
	assert.True(t, ok)
	assert.Equal(t, "00020", display[0])
	assert.Equal(t, "00031", display[1])
}

func TestOutputOnEmptyBufferReturnsFalse(t *testing.T) {
	d := New()
	_, ok := d.Output()
	assert.False(t, ok)
}

func TestOutputDrainsOldestFirst(t *testing.T) {
	d := New()
	d.Input(1, 2, func() {})
	d.Input(3, 4, func() {})
	display, _ := d.Output()
	assert.Equal(t, "00001", display[0])
	display, _ = d.Output()
	assert.Equal(t, "00003", display[0])
}

func TestSetModeRejectsInvalid(t *testing.T) {
	d := New()
	d.SetMode(Mode(99))
	assert.True(t, d.Lights[OprErr])
	assert.Equal(t, DEC, d.Mode)
}

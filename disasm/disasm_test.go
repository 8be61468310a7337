package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcornwell/agc/word"
)

func TestOneBasicTC(t *testing.T) {
	v := word.Word(0x0AB) // opcode 0, subcode 0 -> TC
	assert.Equal(t, "TC 0253", One(v, false))
}

func TestOneBasicCCS(t *testing.T) {
	// opcode 0, subcode 1 -> CCS; the address field is the full 12-bit
	// field (bits 11..0), which includes the subcode bits themselves.
	v := word.Word(0b01<<10) | 0x001
	assert.Equal(t, "CCS 02001", One(v, false))
}

func TestOneExtendedNoArg(t *testing.T) {
	v := word.Word(12) << 10 // extended opcode 12 -> AUG, no operand
	assert.Equal(t, "AUG", One(v, true))
}

func TestOneExtendedWithArg(t *testing.T) {
	v := (word.Word(1) << 10) | 0x010 // extended opcode 1 -> MP
	assert.Equal(t, "MP 0020", One(v, true))
}

func TestOneUnknownOpcodeRendersPlaceholder(t *testing.T) {
	v := word.Word(7) << 12 // basic opcode 7, unassigned
	out := One(v, false)
	assert.Contains(t, out, "???")
}

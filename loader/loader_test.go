package loader

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcornwell/agc/word"
)

func TestLoadMasksTo15Bits(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0x00, 0x05}
	prog, err := Load(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, []word.Word{0x7FFF, 0x0005}, prog)
}

func TestLoadEmptyStream(t *testing.T) {
	prog, err := Load(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, prog)
}

func TestLoadOddByteCountErrors(t *testing.T) {
	buf := []byte{0x00, 0x01, 0x02}
	_, err := Load(bytes.NewReader(buf))
	assert.ErrorIs(t, err, ErrOddLength)
}

func TestLoadBigEndianOrdering(t *testing.T) {
	buf := []byte{0x12, 0x34}
	prog, err := Load(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, []word.Word{0x1234}, prog)
}

package tambour

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand_EncodeDecode(t *testing.T) {
	assert := assert.New(t)

	cmd := EncodeCommand(COLOR_CHANGE, 3, 0, 254)
	action, thread, needle, order := DecodeCommand(cmd)
	assert.Equal(COLOR_CHANGE, action)
	assert.Equal(3, thread)
	assert.Equal(0, needle)
	assert.Equal(254, order)
	assert.Equal(COLOR_CHANGE, Action(cmd))
	assert.Equal(uint32(0xFF010405), cmd)
}

func TestCommand_UnsetFieldsAreZero(t *testing.T) {
	assert := assert.New(t)

	cmd := EncodeCommand(JUMP, NoValue, NoValue, NoValue)
	assert.Equal(JUMP, cmd)

	_, thread, needle, order := DecodeCommand(cmd)
	assert.Equal(NoValue, thread)
	assert.Equal(NoValue, needle)
	assert.Equal(NoValue, order)

	// Out of range values cannot be stored and stay unset.
	assert.Equal(STITCH, EncodeCommand(STITCH, 255, -4, 1000))
}

func TestCommand_WithNeedle(t *testing.T) {
	cmd := WithNeedle(EncodeCommand(COLOR_CHANGE, 1, 7, NoValue), 2)
	_, thread, needle, _ := DecodeCommand(cmd)
	assert.Equal(t, 1, thread)
	assert.Equal(t, 2, needle)
}

func TestCommand_Name(t *testing.T) {
	assert.Equal(t, "SEQUIN_EJECT", CommandName(SEQUIN_EJECT|ThreadMask))
	assert.Equal(t, "FAST", CommandName(FAST))
	assert.Equal(t, "UNKNOWN", CommandName(0x42))
	assert.Equal(t, "JUMP(1.00, -2.50)", Stitch{X: 1, Y: -2.5, Command: JUMP}.String())
}

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	opcodes := []int{Stitch, Jump, ColorChange, End, 0x00, 0xFF}
	fields := []int{-1, 0, 1, 254}

	for _, op := range opcodes {
		for _, thread := range fields {
			for _, needle := range fields {
				for _, order := range fields {
					w := Encode(op, thread, needle, order)
					gotOp, gotThread, gotNeedle, gotOrder := Decode(w)
					assert.Equal(t, op, gotOp)
					assert.Equal(t, thread, gotThread)
					assert.Equal(t, needle, gotNeedle)
					assert.Equal(t, order, gotOrder)
				}
			}
		}
	}
}

func TestNoCommandSentinel(t *testing.T) {
	assert.Equal(t, uint32(0xFFFFFFFF), NoCommand)
}

func TestClassify(t *testing.T) {
	assert.True(t, IsMovement(Stitch))
	assert.True(t, IsMovement(Jump))
	assert.True(t, IsMovement(ColorChange))
	assert.False(t, IsMovement(Trim))

	assert.True(t, IsThreadCommand(Trim))
	assert.True(t, IsThreadCommand(Cut))
	assert.True(t, IsThreadCommand(Stop))
	assert.False(t, IsThreadCommand(Jump))

	assert.True(t, IsControl(Stop))
	assert.True(t, IsControl(End))
	assert.False(t, IsControl(Trim))

	assert.True(t, IsSequin(SequinEject))
	assert.True(t, IsSequin(SequinMode))
	assert.False(t, IsSequin(Jump))
}

func TestNameUnknown(t *testing.T) {
	assert.Equal(t, "STITCH", Name(Stitch))
	assert.Equal(t, "UNKNOWN", Name(0x77))
}

func TestEncodeOpcodeLeavesFieldsAbsent(t *testing.T) {
	w := EncodeOpcode(End)
	op, thread, needle, order := Decode(w)
	assert.Equal(t, End, op)
	assert.Equal(t, -1, thread)
	assert.Equal(t, -1, needle)
	assert.Equal(t, -1, order)
}

package pattern

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fibercraft/stitchkit/command"
)

func TestBoundsEmpty(t *testing.T) {
	p := New()
	minX, minY, maxX, maxY := p.Bounds()
	assert.Equal(t, 0.0, minX)
	assert.Equal(t, 0.0, minY)
	assert.Equal(t, 0.0, maxX)
	assert.Equal(t, 0.0, maxY)
}

func TestBoundsAndMoveCenterToOrigin(t *testing.T) {
	p := New()
	p.StitchAbs(0, 0)
	p.StitchAbs(100, 0)
	p.StitchAbs(100, 100)
	p.StitchAbs(0, 100)

	minX, minY, maxX, maxY := p.Bounds()
	assert.Equal(t, 0.0, minX)
	assert.Equal(t, 0.0, minY)
	assert.Equal(t, 100.0, maxX)
	assert.Equal(t, 100.0, maxY)

	p.MoveCenterToOrigin()
	minX, minY, maxX, maxY = p.Bounds()
	assert.InDelta(t, 0, minX+maxX, 1)
	assert.InDelta(t, 0, minY+maxY, 1)
}

func TestTranslateNoOpOnNonFinite(t *testing.T) {
	p := New()
	p.StitchAbs(1, 1)
	p.Translate(math.NaN(), 1)
	x, y := p.Stitches[0].X, p.Stitches[0].Y
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)
}

func TestStitchBlocksFillerThread(t *testing.T) {
	p := New()
	p.StitchAbs(0, 0)
	p.ColorChange(10, 10)
	p.StitchAbs(20, 20)

	blocks := p.StitchBlocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, uint32(37), blocks[1].Thread.Color>>16&0xFF)
}

func TestThreadOrFillerUsesPatternThread(t *testing.T) {
	p := New()
	p.AddThread(NewThread(0xFF0000))
	th := p.ThreadOrFiller(0)
	assert.Equal(t, uint32(0xFF0000), th.Color)
}

func TestInterpolateTrimsReplacesTriggeringJump(t *testing.T) {
	p := New()
	p.Jump(10, 0)
	p.Jump(10, 0)
	p.Jump(10, 0)
	p.Stitch(5, 5)

	p.InterpolateTrims(3, nil, true)

	trims := 0
	jumps := 0
	for _, s := range p.Stitches {
		switch s.Opcode() {
		case command.Trim:
			trims++
		case command.Jump:
			jumps++
		}
	}
	assert.Equal(t, 1, trims)
	assert.Equal(t, 2, jumps)
}

func TestInterpolateTrimsHighThresholdLeavesJumps(t *testing.T) {
	p := New()
	p.Jump(10, 0)
	p.Jump(10, 0)
	p.Jump(10, 0)
	p.Stitch(5, 5)

	p.InterpolateTrims(10, nil, true)

	trims := 0
	for _, s := range p.Stitches {
		if s.Opcode() == command.Trim {
			trims++
		}
	}
	assert.Equal(t, 0, trims)
}

func TestInterpolateDuplicateColorAsStop(t *testing.T) {
	p := New()
	p.ColorChange(0, 0)
	p.ColorChange(0, 0)

	p.InterpolateDuplicateColorAsStop()

	assert.Equal(t, command.Stop, p.Stitches[0].Opcode())
	assert.Equal(t, command.ColorChange, p.Stitches[1].Opcode())
}

func TestDigestStable(t *testing.T) {
	p1 := New()
	p1.StitchAbs(1, 2)
	p2 := New()
	p2.StitchAbs(1, 2)
	assert.Equal(t, p1.Digest(), p2.Digest())

	p2.StitchAbs(3, 4)
	assert.NotEqual(t, p1.Digest(), p2.Digest())
}

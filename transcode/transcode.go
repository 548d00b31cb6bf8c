package transcode

import (
	"math"

	"github.com/fibercraft/stitchkit/command"
	"github.com/fibercraft/stitchkit/embfmt"
	"github.com/fibercraft/stitchkit/pattern"
)

// Transcode is a pure function of (p, settings): it never mutates p,
// always returns a new pattern, and always returns a byte-identical
// result for identical inputs. It applies the nine fixed-order
// normalisation stages documented below.
//
//  1. Coordinate rounding
//  2. Long-stitch contingency
//  3. Trim/color-change coupling
//  4. Thread-change rewriting
//  5. Sequin contingency
//  6. Tie-on / tie-off
//  7. Matrix directive collapsing
//  8. Speed directive stripping
//  9. Finalisation (terminal END)
func Transcode(p *pattern.Pattern, s Settings) (*pattern.Pattern, error) {
	out := pattern.New()
	out.Threads = append(out.Threads, p.Threads...)
	for k, v := range p.Extras {
		out.SetMetadata(k, v)
	}

	threadIndex := 0
	var matrix affine
	matrix.reset()

	px, py := 0.0, 0.0 // actual emitted position, never p's bookkeeping fields

	appendAbs := func(cmd uint32, x, y float64) {
		out.AddCommand(cmd, x, y)
		px, py = x, y
	}

	// trimBeforeColorChange[i] marks a TRIM immediately followed by a
	// COLOR_CHANGE in the source stream: stage 3 always elides these from
	// the source (the COLOR_CHANGE branch below synthesizes the canonical
	// one when ExplicitTrim requires it), so a source TRIM and an
	// inserted one are never both emitted.
	trimBeforeColorChange := make([]bool, len(p.Stitches))
	for i, st := range p.Stitches {
		op, _, _, _ := command.Decode(st.Command)
		if op != command.Trim || i+1 >= len(p.Stitches) {
			continue
		}
		nextOp, _, _, _ := command.Decode(p.Stitches[i+1].Command)
		trimBeforeColorChange[i] = nextOp == command.ColorChange
	}

	for idx, st := range p.Stitches {
		opcode, thread, needle, order := command.Decode(st.Command)
		x, y := st.X, st.Y

		switch opcode {
		case command.MatrixTranslate:
			matrix.translate(x, y)
			continue
		case command.MatrixScale:
			matrix.scale(x, y)
			continue
		case command.MatrixScaleOrigin:
			matrix.scaleOrigin(x, y)
			continue
		case command.MatrixRotate:
			matrix.rotate(x)
			continue
		case command.MatrixRotateOrigin:
			matrix.rotateOrigin(x, y)
			continue
		case command.MatrixReset:
			matrix.reset()
			continue
		}

		x, y = matrix.apply(x, y)

		if s.Round {
			x = math.Round(x)
			y = math.Round(y)
		}

		switch opcode {
		case command.Slow, command.Fast:
			if s.WritesSpeeds {
				appendAbs(command.Encode(opcode, thread, needle, order), x, y)
			}
			continue

		case command.SequinEject:
			switch s.SequinContingency {
			case SequinRemove:
				continue
			case SequinJump:
				appendAbs(command.Encode(command.Jump, thread, needle, order), x, y)
			case SequinStitch:
				appendAbs(command.Encode(command.Stitch, thread, needle, order), x, y)
			default: // SequinUtilize
				appendAbs(command.Encode(command.SequinEject, thread, needle, order), x, y)
			}
			continue

		case command.ColorChange:
			threadIndex++
			if s.ExplicitTrim {
				appendAbs(command.EncodeOpcode(command.Trim), px, py)
			}
			applyTieOff(appendAbs, s, px, py)
			emitThreadChange(appendAbs, s, thread, needle, order, threadIndex, x, y)
			applyTieOn(appendAbs, s, x, y)
			continue

		case command.NeedleSet:
			emitThreadChange(appendAbs, s, thread, needle, order, threadIndex, x, y)
			continue

		case command.Trim:
			if trimBeforeColorChange[idx] {
				// Coupling handled by the COLOR_CHANGE branch above.
				continue
			}
			if len(out.Stitches) > 0 && out.Stitches[len(out.Stitches)-1].Opcode() == command.Trim {
				continue // duplicates collapsed
			}
			appendAbs(command.Encode(opcode, thread, needle, order), x, y)
			continue

		case command.Stitch:
			if err := emitStitchChain(appendAbs, s, px, py, x, y, command.Encode(opcode, thread, needle, order)); err != nil {
				return nil, err
			}
			continue

		case command.Jump:
			if err := emitJumpChain(appendAbs, s, px, py, x, y, command.Encode(opcode, thread, needle, order)); err != nil {
				return nil, err
			}
			continue

		default:
			appendAbs(command.Encode(opcode, thread, needle, order), x, y)
		}
	}

	if len(out.Stitches) == 0 || out.Stitches[len(out.Stitches)-1].Opcode() != command.End {
		appendAbs(command.EncodeOpcode(command.End), px, py)
	}
	return out, nil
}

func emitThreadChange(appendAbs func(uint32, float64, float64), s Settings, thread, needle, order, threadIndex int, x, y float64) {
	switch s.ThreadChangeCommand {
	case ThreadChangeNeedleSet:
		appendAbs(command.Encode(command.NeedleSet, thread, threadIndex, order), x, y)
	default:
		appendAbs(command.Encode(command.ColorChange, thread, needle, order), x, y)
	}
}

func applyTieOff(appendAbs func(uint32, float64, float64), s Settings, x, y float64) {
	if s.TieOff != TieThreeSmall {
		return
	}
	for i := 0; i < 3; i++ {
		appendAbs(command.EncodeOpcode(command.Stitch), x, y)
	}
}

func applyTieOn(appendAbs func(uint32, float64, float64), s Settings, x, y float64) {
	if s.TieOn != TieThreeSmall {
		return
	}
	for i := 0; i < 3; i++ {
		appendAbs(command.EncodeOpcode(command.Stitch), x, y)
	}
}

// emitStitchChain applies the long-stitch contingency for STITCH commands
// whose distance from (px, py) exceeds s.MaxStitch.
func emitStitchChain(appendAbs func(uint32, float64, float64), s Settings, px, py, x, y float64, cmd uint32) error {
	if s.MaxStitch <= 0 {
		appendAbs(cmd, x, y)
		return nil
	}
	dist := math.Hypot(x-px, y-py)
	if dist <= s.MaxStitch {
		appendAbs(cmd, x, y)
		return nil
	}
	switch s.LongStitchContingency {
	case LongStitchJumpNeedle:
		appendAbs(command.EncodeOpcode(command.Jump), x, y)
	case LongStitchSewTo:
		return subdivide(appendAbs, px, py, x, y, s.MaxStitch, cmd)
	default: // LongStitchNone: preserve, let the downstream writer decide
		appendAbs(cmd, x, y)
	}
	return nil
}

// emitJumpChain always subdivides over-length JUMPs unless FullJump is set.
func emitJumpChain(appendAbs func(uint32, float64, float64), s Settings, px, py, x, y float64, cmd uint32) error {
	limit := s.MaxJump
	if limit <= 0 || s.FullJump {
		appendAbs(cmd, x, y)
		return nil
	}
	dist := math.Hypot(x-px, y-py)
	if dist <= limit {
		appendAbs(cmd, x, y)
		return nil
	}
	return subdivide(appendAbs, px, py, x, y, limit, cmd)
}

// subdivideSanityBound caps the number of segments subdivide will emit for
// a single over-length stitch or jump. A valid pattern never approaches it;
// it exists so a pathological MaxStitch/MaxJump value can't be used to make
// the transcoder allocate without bound.
const subdivideSanityBound = 1_000_000

func subdivide(appendAbs func(uint32, float64, float64), px, py, x, y, step float64, cmd uint32) error {
	dist := math.Hypot(x-px, y-py)
	if dist == 0 {
		appendAbs(cmd, x, y)
		return nil
	}
	n := int(math.Ceil(dist / step))
	if n < 1 {
		n = 1
	}
	if n > subdivideSanityBound {
		return embfmt.EncodingError("transcode: subdivision count %d exceeds sanity bound for a %.2f-unit stitch", n, dist)
	}
	for i := 1; i <= n; i++ {
		t := math.Min(float64(i)*step/dist, 1)
		appendAbs(cmd, px+(x-px)*t, py+(y-py)*t)
	}
	return nil
}

// affine is the current accumulated transform from MATRIX_* directives.
// Matrices do not survive into the normalised output (§4.3): they are
// applied and discarded by the transcoder.
type affine struct {
	a, b, c, d, tx, ty float64
	originX, originY   float64
}

func (m *affine) reset() {
	m.a, m.b, m.c, m.d = 1, 0, 0, 1
	m.tx, m.ty = 0, 0
	m.originX, m.originY = 0, 0
}

func (m *affine) apply(x, y float64) (float64, float64) {
	ox, oy := x-m.originX, y-m.originY
	return m.a*ox+m.c*oy+m.tx+m.originX, m.b*ox+m.d*oy+m.ty+m.originY
}

func (m *affine) translate(dx, dy float64) {
	m.tx += dx
	m.ty += dy
}

func (m *affine) scale(sx, sy float64) {
	m.a *= sx
	m.d *= sy
}

func (m *affine) scaleOrigin(sx, sy float64) {
	m.originX, m.originY = sx, sy
}

func (m *affine) rotate(degrees float64) {
	rad := degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	a, b, c, d := m.a, m.b, m.c, m.d
	m.a = a*cos - b*sin
	m.b = a*sin + b*cos
	m.c = c*cos - d*sin
	m.d = c*sin + d*cos
}

func (m *affine) rotateOrigin(ox, oy float64) {
	m.originX, m.originY = ox, oy
}

// Package pattern is the canonical in-memory embroidery pattern model: a
// stitch is a coordinate plus a packed command word (see package command),
// a thread is an RGB colour plus cataloguing metadata, and a Pattern is an
// ordered history of stitches, a thread list, and a string metadata map.
package pattern

import (
	"math"

	"github.com/dgryski/go-farm"

	"github.com/fibercraft/stitchkit/command"
)

// Stitch is one entry in a pattern's ordered history: a coordinate (in
// tenths of a millimetre) plus the packed command word describing what
// happens there.
type Stitch struct {
	X, Y    float64
	Command uint32
}

// Opcode returns the bare opcode byte of the stitch's command word.
func (s Stitch) Opcode() int { return command.ExtractOpcode(s.Command) }

// Pattern is the canonical in-memory representation of an embroidery
// design: an ordered stitch history, an ordered thread list, and an open
// string metadata map (file-level key/value pairs such as author,
// copyright, or name).
type Pattern struct {
	Stitches []Stitch
	Threads  []Thread
	Extras   map[string]string

	// previousX/previousY track the pen position for relative mutators.
	// They are bookkeeping only: not part of Pattern identity (I6), not
	// persisted by any codec.
	previousX, previousY float64
}

// New returns an empty pattern with its previous position at the origin.
func New() *Pattern {
	return &Pattern{Extras: make(map[string]string)}
}

// AddStitchAbsolute appends a stitch at an absolute coordinate and updates
// the previous position to match.
func (p *Pattern) AddStitchAbsolute(x, y float64, cmd uint32) {
	p.Stitches = append(p.Stitches, Stitch{X: x, Y: y, Command: cmd})
	p.previousX, p.previousY = x, y
}

// AddStitchRelative appends a stitch at previous-position + (dx, dy) and
// updates the previous position to the resulting absolute coordinate.
func (p *Pattern) AddStitchRelative(dx, dy float64, cmd uint32) {
	p.AddStitchAbsolute(p.previousX+dx, p.previousY+dy, cmd)
}

// AddCommand appends a stitch at an absolute coordinate WITHOUT updating
// the previous position — used for commands (e.g. an asserted
// COLOR_CHANGE at the current pen position) that carry no movement
// semantics of their own.
func (p *Pattern) AddCommand(cmd uint32, x, y float64) {
	p.Stitches = append(p.Stitches, Stitch{X: x, Y: y, Command: cmd})
}

// AddThread appends a thread to the pattern's thread list.
func (p *Pattern) AddThread(t Thread) {
	p.Threads = append(p.Threads, t)
}

// PreviousPosition returns the pattern's current pen position.
func (p *Pattern) PreviousPosition() (float64, float64) {
	return p.previousX, p.previousY
}

// SetMetadata sets (or AddMetadata, its alias, sets) a key in the
// pattern's extras map.
func (p *Pattern) SetMetadata(key, value string) {
	if p.Extras == nil {
		p.Extras = make(map[string]string, 1)
	}
	p.Extras[key] = value
}

// AddMetadata is an alias for SetMetadata, matching the source API's two
// names for the same operation.
func (p *Pattern) AddMetadata(key, value string) { p.SetMetadata(key, value) }

// GetMetadata returns a key from the pattern's extras map.
func (p *Pattern) GetMetadata(key string) (string, bool) {
	v, ok := p.Extras[key]
	return v, ok
}

// Convenience relative mutators.
func (p *Pattern) Stitch(dx, dy float64) { p.AddStitchRelative(dx, dy, command.EncodeOpcode(command.Stitch)) }
func (p *Pattern) Jump(dx, dy float64)   { p.AddStitchRelative(dx, dy, command.EncodeOpcode(command.Jump)) }
func (p *Pattern) ColorChange(dx, dy float64) {
	p.AddStitchRelative(dx, dy, command.EncodeOpcode(command.ColorChange))
}
func (p *Pattern) Trim() { p.AddStitchRelative(0, 0, command.EncodeOpcode(command.Trim)) }
func (p *Pattern) Stop() { p.AddStitchRelative(0, 0, command.EncodeOpcode(command.Stop)) }
func (p *Pattern) End()  { p.AddStitchRelative(0, 0, command.EncodeOpcode(command.End)) }

// Convenience absolute mutators.
func (p *Pattern) StitchAbs(x, y float64) {
	p.AddStitchAbsolute(x, y, command.EncodeOpcode(command.Stitch))
}
func (p *Pattern) JumpAbs(x, y float64) {
	p.AddStitchAbsolute(x, y, command.EncodeOpcode(command.Jump))
}

// CountStitches returns the number of STITCH commands. JUMPs and
// COLOR_CHANGEs move the needle too but are not stitches.
func (p *Pattern) CountStitches() int {
	n := 0
	for _, s := range p.Stitches {
		if s.Opcode() == command.Stitch {
			n++
		}
	}
	return n
}

// CountColorChanges returns the number of COLOR_CHANGE commands.
func (p *Pattern) CountColorChanges() int {
	n := 0
	for _, s := range p.Stitches {
		if s.Opcode() == command.ColorChange {
			n++
		}
	}
	return n
}

// Bounds returns (minX, minY, maxX, maxY) over all finite stitch
// coordinates. An empty pattern, or one with no finite coordinates,
// returns (0, 0, 0, 0).
func (p *Pattern) Bounds() (minX, minY, maxX, maxY float64) {
	first := true
	for _, s := range p.Stitches {
		if !isFinite(s.X) || !isFinite(s.Y) {
			continue
		}
		if first {
			minX, maxX = s.X, s.X
			minY, maxY = s.Y, s.Y
			first = false
			continue
		}
		if s.X < minX {
			minX = s.X
		}
		if s.X > maxX {
			maxX = s.X
		}
		if s.Y < minY {
			minY = s.Y
		}
		if s.Y > maxY {
			maxY = s.Y
		}
	}
	if first {
		return 0, 0, 0, 0
	}
	return
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Translate shifts every stitch coordinate by (dx, dy). A non-finite dx or
// dy makes Translate a no-op.
func (p *Pattern) Translate(dx, dy float64) {
	if !isFinite(dx) || !isFinite(dy) {
		return
	}
	for i := range p.Stitches {
		p.Stitches[i].X += dx
		p.Stitches[i].Y += dy
	}
}

// MoveCenterToOrigin translates the pattern so that the midpoint of its
// bounds sits at (0, 0), per axis, with each axis's shift rounded to the
// nearest integer before translation.
func (p *Pattern) MoveCenterToOrigin() {
	minX, minY, maxX, maxY := p.Bounds()
	cx := math.Round((maxX + minX) / 2)
	cy := math.Round((maxY + minY) / 2)
	p.Translate(-cx, -cy)
}

// StitchBlock is one colour block: a contiguous run of STITCH commands
// plus the thread used to draw it (resolved per invariant I2).
type StitchBlock struct {
	Stitches []Stitch
	Thread   Thread
}

// StitchBlocks groups consecutive STITCH-opcode commands into blocks,
// incrementing the thread index only on COLOR_CHANGE. A block with no
// matching thread in p.Threads receives a deterministic filler thread
// (invariant I2).
func (p *Pattern) StitchBlocks() []StitchBlock {
	var blocks []StitchBlock
	var current []Stitch
	threadIndex := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, StitchBlock{
			Stitches: current,
			Thread:   p.ThreadOrFiller(threadIndex),
		})
		current = nil
	}

	for _, s := range p.Stitches {
		switch s.Opcode() {
		case command.Stitch:
			current = append(current, s)
		case command.ColorChange:
			flush()
			threadIndex++
		default:
			flush()
		}
	}
	flush()
	return blocks
}

// ThreadOrFiller returns p.Threads[index] if present, otherwise a
// deterministic filler colour synthesized from the block index per
// invariant I2: r = 37*index mod 256, g = 91*index mod 256,
// b = 173*index mod 256.
func (p *Pattern) ThreadOrFiller(index int) Thread {
	if index >= 0 && index < len(p.Threads) {
		return p.Threads[index]
	}
	r := uint8((37 * index) % 256)
	g := uint8((91 * index) % 256)
	b := uint8((173 * index) % 256)
	return NewThread(ColorRGB(r, g, b))
}

// InterpolateTrims rewrites the stitch list in place so that any run of at
// least jumpThreshold consecutive JUMPs is terminated by a single TRIM at
// the triggering JUMP's position, optionally gated by the Euclidean
// distance from the last emitted movement command or TRIM.
// distanceThreshold == nil disables the distance gate (every sufficiently
// long run is trimmed); a JUMP with no earlier movement in the output always
// passes the gate. clipping does not change the result: the distance is
// measured against the output in both cases.
func (p *Pattern) InterpolateTrims(jumpThreshold int, distanceThreshold *float64, clipping bool) {
	var out []Stitch
	jumpCount := 0
	var lastX, lastY float64
	haveLast := false

	emit := func(s Stitch) {
		out = append(out, s)
		if command.IsMovement(s.Opcode()) {
			lastX, lastY = s.X, s.Y
			haveLast = true
		}
	}

	for _, s := range p.Stitches {
		if s.Opcode() != command.Jump {
			jumpCount = 0
			emit(s)
			continue
		}

		jumpCount++
		meetsDistance := true
		if distanceThreshold != nil {
			if !haveLast && !clipping {
				meetsDistance = true
			} else if haveLast {
				dx := s.X - lastX
				dy := s.Y - lastY
				meetsDistance = math.Hypot(dx, dy) >= *distanceThreshold
			}
		}

		if jumpCount >= jumpThreshold && meetsDistance {
			out = append(out, Stitch{X: s.X, Y: s.Y, Command: command.EncodeOpcode(command.Trim)})
			lastX, lastY = s.X, s.Y
			haveLast = true
			jumpCount = 0
			continue
		}
		emit(s)
	}
	p.Stitches = out
}

// InterpolateDuplicateColorAsStop rewrites the earlier of any two
// consecutive COLOR_CHANGE commands (with no intervening stitch) to STOP,
// matching the manual-operation semantics of thread-cone swaps and
// appliqué placement: the second COLOR_CHANGE remains, signalling the
// operator should resume after the manual step.
func (p *Pattern) InterpolateDuplicateColorAsStop() {
	lastWasColorChange := -1
	for i := range p.Stitches {
		op := p.Stitches[i].Opcode()
		if op != command.ColorChange {
			lastWasColorChange = -1
			continue
		}
		if lastWasColorChange >= 0 {
			_, thread, needle, order := command.Decode(p.Stitches[lastWasColorChange].Command)
			p.Stitches[lastWasColorChange].Command = command.Encode(command.Stop, thread, needle, order)
		}
		lastWasColorChange = i
	}
}

// Digest returns a stable fingerprint over the pattern's stitches and
// thread colours, using farm.Hash64. Two structurally-equal (I6) patterns
// always share a digest; the converse is not guaranteed across hash
// versions. Digest is diagnostic only, not part of pattern identity.
func (p *Pattern) Digest() uint64 {
	buf := make([]byte, 0, len(p.Stitches)*20+len(p.Threads)*4)
	for _, s := range p.Stitches {
		buf = appendFloat64(buf, s.X)
		buf = appendFloat64(buf, s.Y)
		buf = appendUint32(buf, s.Command)
	}
	for _, t := range p.Threads {
		buf = appendUint32(buf, t.Color)
	}
	return farm.Hash64(buf)
}

func appendUint32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendFloat64(buf []byte, f float64) []byte {
	v := math.Float64bits(f)
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(v>>(8*i)))
	}
	return buf
}

// Package hus implements the Husqvarna Viking HUS reader: a small binary
// header, a thread palette given as indices into huspalette.Table, and
// three independently Huffman/LZSS-compressed streams (commands, X
// deltas, Y deltas). See SPEC_FULL.md §4.7.
//
// HUS has no documented, load-bearing encoder in the wild — every known
// implementation, including the one this package is grounded on, reads
// HUS but does not write it. This package follows suit: it registers only
// a Reader.
package hus

import (
	"io"

	"github.com/fibercraft/stitchkit/embfmt"
	"github.com/fibercraft/stitchkit/embio"
	"github.com/fibercraft/stitchkit/huspalette"
	"github.com/fibercraft/stitchkit/pattern"
)

const (
	cmdStitch      = 0x80
	cmdJump        = 0x81
	cmdColorChange = 0x84
	cmdTrim        = 0x88
	cmdEnd         = 0x90
)

func init() {
	embfmt.RegisterDefault(embfmt.Format{
		Name:        "hus",
		DisplayName: "Husqvarna Viking HUS",
		Extensions:  []string{"hus"},
		Description: "Husqvarna/Viking Huffman-compressed stitch format",
		Reader:      embfmt.ReaderFunc(func(r io.ReadSeeker) (*pattern.Pattern, error) { return Read(r) }),
	})
}

// Read parses a HUS file into a Pattern.
func Read(r io.ReadSeeker) (*pattern.Pattern, error) {
	br := embio.NewReader(r)

	if _, err := br.ReadUint32LE(); err != nil { // magic code, unvalidated
		return nil, err
	}
	numStitches, err := br.ReadUint32LE()
	if err != nil {
		return nil, err
	}
	numColors, err := br.ReadUint32LE()
	if err != nil {
		return nil, err
	}
	for i := 0; i < 4; i++ { // extend_pos_x/y, extend_neg_x/y
		if _, err := br.ReadInt16LE(); err != nil {
			return nil, err
		}
	}
	commandOffset, err := br.ReadUint32LE()
	if err != nil {
		return nil, err
	}
	xOffset, err := br.ReadUint32LE()
	if err != nil {
		return nil, err
	}
	yOffset, err := br.ReadUint32LE()
	if err != nil {
		return nil, err
	}
	if _, err := br.ReadExact(8); err != nil { // 8-byte string field, unused
		return nil, err
	}
	if _, err := br.ReadUint16LE(); err != nil { // unknown field
		return nil, err
	}

	p := pattern.New()
	for i := uint32(0); i < numColors; i++ {
		idx, err := br.ReadUint16LE()
		if err != nil {
			return nil, err
		}
		if int(idx) >= len(huspalette.Table) {
			return nil, embfmt.ParseError("HUS thread palette index %d out of range (max %d)", idx, len(huspalette.Table)-1)
		}
		p.AddThread(huspalette.Thread(int(idx)))
	}

	if xOffset < commandOffset {
		return nil, embfmt.ParseError("HUS: X offset %d precedes command offset %d", xOffset, commandOffset)
	}
	if yOffset < xOffset {
		return nil, embfmt.ParseError("HUS: Y offset %d precedes X offset %d", yOffset, xOffset)
	}

	commandCompressed, err := readSection(r, int64(commandOffset), int(xOffset-commandOffset))
	if err != nil {
		return nil, err
	}
	xCompressed, err := readSection(r, int64(xOffset), int(yOffset-xOffset))
	if err != nil {
		return nil, err
	}
	yCompressed, err := readRemainder(r, int64(yOffset))
	if err != nil {
		return nil, err
	}

	commands, err := Expand(commandCompressed, int(numStitches))
	if err != nil {
		return nil, err
	}
	xs, err := Expand(xCompressed, int(numStitches))
	if err != nil {
		return nil, err
	}
	ys, err := Expand(yCompressed, int(numStitches))
	if err != nil {
		return nil, err
	}

	if len(commands) != int(numStitches) || len(xs) != int(numStitches) || len(ys) != int(numStitches) {
		return nil, embfmt.ParseError("HUS: decompressed stream lengths (commands=%d, x=%d, y=%d) do not match stitch count %d", len(commands), len(xs), len(ys), numStitches)
	}

	for i := 0; i < int(numStitches); i++ {
		cmd := commands[i]
		dx := float64(int8(xs[i]))
		dy := -float64(int8(ys[i]))

		switch cmd {
		case cmdStitch:
			p.Stitch(dx, dy)
		case cmdJump:
			p.Jump(dx, dy)
		case cmdColorChange:
			if dx != 0 || dy != 0 {
				p.Stitch(dx, dy)
			}
			p.ColorChange(0, 0)
		case cmdTrim:
			if dx != 0 || dy != 0 {
				p.Jump(dx, dy)
			}
			p.Trim()
		case cmdEnd:
			// fallthrough to the break below
		default:
			return nil, embfmt.ParseError("HUS: unknown command byte 0x%02X at stitch %d", cmd, i)
		}
		if cmd == cmdEnd {
			break
		}
	}
	p.End()
	return p, nil
}

func readSection(r io.ReadSeeker, offset int64, size int) ([]byte, error) {
	if size < 0 {
		return nil, embfmt.ParseError("HUS: negative section size %d at offset %d", size, offset)
	}
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, embfmt.IOError(err)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, embfmt.IOError(err)
	}
	return buf, nil
}

func readRemainder(r io.ReadSeeker, offset int64) ([]byte, error) {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, embfmt.IOError(err)
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, embfmt.IOError(err)
	}
	return buf, nil
}

// Package dst implements the Tajima DST reference codec: a 512-byte ASCII
// header followed by 3-byte ternary-encoded stitch records. See
// SPEC_FULL.md §4.6 for the bit layout this package implements exactly.
package dst

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fibercraft/stitchkit/command"
	"github.com/fibercraft/stitchkit/embfmt"
	"github.com/fibercraft/stitchkit/embio"
	"github.com/fibercraft/stitchkit/pattern"
	"github.com/fibercraft/stitchkit/transcode"
)

const (
	HeaderSize  = 512
	MaxStitches = 1_000_000

	// DefaultTrimAt is the default number of consecutive JUMPs the reader
	// collapses into a single reconstructed TRIM.
	DefaultTrimAt = 3
)

func init() {
	embfmt.RegisterDefault(embfmt.Format{
		Name:        "dst",
		DisplayName: "Tajima DST",
		Extensions:  []string{"dst"},
		Description: "Tajima ternary-encoded stitch format",
		Reader:      embfmt.ReaderFunc(func(r io.ReadSeeker) (*pattern.Pattern, error) { return Read(r) }),
		Writer:      embfmt.WriterFunc(func(p *pattern.Pattern, w io.Writer) error { return Write(p, w) }),
	})
}

// Options configures Read/Write beyond their defaults, in the teacher's
// functional-options idiom.
type Options struct {
	TrimAt         int
	TrimDistance   *float64
	Clipping       bool
	ExtendedHeader bool
}

type Opt func(*Options)

func WithTrimAt(n int) Opt           { return func(o *Options) { o.TrimAt = n } }
func WithTrimDistance(d float64) Opt { return func(o *Options) { o.TrimDistance = &d } }
func WithClipping(v bool) Opt        { return func(o *Options) { o.Clipping = v } }
func WithExtendedHeader(v bool) Opt  { return func(o *Options) { o.ExtendedHeader = v } }

func makeOptions(opts ...Opt) Options {
	o := Options{TrimAt: DefaultTrimAt, Clipping: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.TrimAt <= 0 {
		o.TrimAt = DefaultTrimAt
	}
	return o
}

func bit(b byte, n uint) int {
	return int((b >> n) & 1)
}

// decodeDX decodes an X displacement from a 3-byte DST stitch record.
func decodeDX(b0, b1, b2 byte) int {
	return 81*bit(b2, 2) - 81*bit(b2, 3) +
		27*bit(b1, 2) - 27*bit(b1, 3) +
		9*bit(b0, 2) - 9*bit(b0, 3) +
		3*bit(b1, 0) - 3*bit(b1, 1) +
		bit(b0, 0) - bit(b0, 1)
}

// decodeDY decodes a Y displacement from a 3-byte DST stitch record. b0 and
// b1 use the same bit shape as decodeDX one nibble over (bits 4-7 instead
// of 0-3). b2's ±81 weight sits at bits 4/5, not 6/7: bits 6/7 of b2 are
// reserved for the JUMP/COLOR_CHANGE/END flags and never carry coordinate
// data. The total is negated.
func decodeDY(b0, b1, b2 byte) int {
	sum := 81*bit(b2, 4) - 81*bit(b2, 5) +
		27*bit(b1, 6) - 27*bit(b1, 7) +
		9*bit(b0, 6) - 9*bit(b0, 7) +
		3*bit(b1, 4) - 3*bit(b1, 5) +
		bit(b0, 4) - bit(b0, 5)
	return -sum
}

// encodeAxis greedily encodes a displacement in [-121, 121] into the three
// output bytes. lowBit locates the ±1/±3 weights (in b0/b1), b01HighBit
// locates the ±9/±27 weights (in b0/b1), and b2HighBit locates the ±81
// weight in b2 specifically — for Y this differs from b01HighBit because
// bits 6/7 of b2 are reserved for stitch-type flags. It returns an error
// if the value cannot be fully consumed.
func encodeAxis(b0, b1, b2 *byte, v int, lowBit, b01HighBit, b2HighBit uint) error {
	setBit := func(target *byte, n uint) { *target |= 1 << n }

	switch {
	case v > 40:
		setBit(b2, b2HighBit)
		v -= 81
	case v < -40:
		setBit(b2, b2HighBit+1)
		v += 81
	}
	switch {
	case v > 13:
		setBit(b1, b01HighBit)
		v -= 27
	case v < -13:
		setBit(b1, b01HighBit+1)
		v += 27
	}
	switch {
	case v > 4:
		setBit(b0, b01HighBit)
		v -= 9
	case v < -4:
		setBit(b0, b01HighBit+1)
		v += 9
	}
	switch {
	case v > 1:
		setBit(b1, lowBit)
		v -= 3
	case v < -1:
		setBit(b1, lowBit+1)
		v += 3
	}
	switch {
	case v > 0:
		setBit(b0, lowBit)
		v -= 1
	case v < 0:
		setBit(b0, lowBit+1)
		v += 1
	}
	if v != 0 {
		return embfmt.EncodingError("DST coordinate out of range (|v| > 121)")
	}
	return nil
}

// encodeRecord packs one stitch's (x, y, opcode) into a 3-byte DST record.
// y is negated before encoding to match the on-disk convention.
func encodeRecord(x, y int, opcode int) ([3]byte, error) {
	var rec [3]byte
	y = -y

	switch opcode {
	case command.ColorChange, command.Stop:
		rec[2] = 0b11000011
		return rec, nil
	case command.End:
		rec[2] = 0b11110011
		return rec, nil
	case command.SequinMode:
		rec[2] = 0b01000011
		return rec, nil
	}

	if opcode == command.Jump || opcode == command.SequinEject {
		rec[2] |= 0b10000011
	}
	rec[2] |= 1 << 0
	rec[2] |= 1 << 1

	if err := encodeAxis(&rec[0], &rec[1], &rec[2], x, 0, 2, 2); err != nil {
		return rec, err
	}
	if err := encodeAxis(&rec[0], &rec[1], &rec[2], y, 4, 6, 4); err != nil {
		return rec, err
	}
	return rec, nil
}

// Read parses a DST file into a Pattern.
func Read(r io.ReadSeeker, opts ...Opt) (*pattern.Pattern, error) {
	o := makeOptions(opts...)

	header, err := io.ReadAll(io.LimitReader(r, HeaderSize))
	if err != nil {
		return nil, embfmt.IOError(err)
	}
	if len(header) < HeaderSize {
		return nil, embfmt.ParseError("DST header truncated: got %d bytes, want %d", len(header), HeaderSize)
	}
	if !validHeader(header) {
		return nil, embfmt.ParseError("DST header missing LA:/ST:/CO: tokens and lacks printable text")
	}

	p := pattern.New()
	headerText := header
	if idx := bytes.IndexByte(headerText, 0x1A); idx >= 0 {
		headerText = headerText[:idx]
	}
	for _, field := range strings.FieldsFunc(string(headerText), func(r rune) bool {
		return r == '\r' || r == '\n'
	}) {
		applyHeaderField(p, field)
	}

	br := embio.NewReader(r)
	sequinMode := false
	count := 0
	for {
		if count >= MaxStitches {
			return nil, embfmt.ParseError("DST stitch count exceeds %d", MaxStitches)
		}
		buf, err := br.ReadExact(3)
		if err != nil {
			if pe, ok := embfmt.CodeOf(err); ok && pe == embfmt.CodeParse {
				// graceful EOF with no END record: stop here.
				break
			}
			return nil, err
		}
		count++
		b0, b1, b2 := buf[0], buf[1], buf[2]

		switch {
		case b2&0b11110011 == 0b11110011:
			p.End()
			goto doneReading
		case b2&0b11000011 == 0b11000011:
			p.ColorChange(0, 0)
		case b2&0b01000011 == 0b01000011:
			sequinMode = !sequinMode
		case b2&0b10000011 == 0b10000011:
			dx := float64(decodeDX(b0, b1, b2))
			dy := float64(decodeDY(b0, b1, b2))
			if sequinMode {
				p.AddStitchRelative(dx, dy, command.EncodeOpcode(command.SequinEject))
			} else {
				p.Jump(dx, dy)
			}
		default:
			dx := float64(decodeDX(b0, b1, b2))
			dy := float64(decodeDY(b0, b1, b2))
			p.Stitch(dx, dy)
		}
	}
doneReading:

	trimAt := o.TrimAt
	p.InterpolateTrims(trimAt, o.TrimDistance, o.Clipping)
	return p, nil
}

func validHeader(header []byte) bool {
	head := header
	if len(head) > 32 {
		head = head[:32]
	}
	if bytes.Contains(head, []byte("LA:")) || bytes.Contains(head, []byte("ST:")) || bytes.Contains(head, []byte("CO:")) {
		return true
	}
	printable := 0
	for _, b := range head {
		if b == ' ' || b == '\r' || b == '\n' || b == '\t' || (b >= 0x20 && b < 0x7F) {
			printable++
		}
	}
	return printable >= 24
}

func applyHeaderField(p *pattern.Pattern, field string) {
	if len(field) < 2 {
		return
	}
	prefix := field[:2]
	var value string
	if idx := strings.IndexByte(field, ':'); idx >= 0 {
		value = strings.TrimSpace(field[idx+1:])
	} else {
		value = strings.TrimSpace(field[2:])
	}

	switch prefix {
	case "LA":
		p.SetMetadata("name", value)
	case "AU":
		p.SetMetadata("author", value)
	case "CP":
		p.SetMetadata("copyright", value)
	case "TC":
		parts := strings.Split(value, ",")
		if len(parts) == 0 {
			return
		}
		color, err := pattern.ParseColorHex(strings.TrimSpace(parts[0]))
		if err != nil {
			return
		}
		th := pattern.NewThread(color)
		if len(parts) > 1 {
			th = th.WithDescription(strings.TrimSpace(parts[1]))
		}
		if len(parts) > 2 {
			th = th.WithCatalogNumber(strings.TrimSpace(parts[2]))
		}
		p.AddThread(th)
	default:
		if value != "" {
			p.SetMetadata(prefix, value)
		}
	}
}

// Write encodes p as a DST file.
func Write(p *pattern.Pattern, w io.Writer, opts ...Opt) error {
	o := makeOptions(opts...)
	tc, err := transcode.Transcode(p, transcode.DSTSettings())
	if err != nil {
		return err
	}

	bw := embio.NewWriter(w)

	name, _ := p.GetMetadata("name")
	author, _ := p.GetMetadata("author")
	copyright, _ := p.GetMetadata("copyright")

	minX, minY, maxX, maxY := tc.Bounds()
	colorChanges := tc.CountColorChanges()

	var records [][3]byte
	xx, yy := 0, 0
	lastX, lastY := 0, 0

	emit := func(x, y int, opcode int) error {
		rec, err := encodeRecord(x-xx, y-yy, opcode)
		if err != nil {
			return err
		}
		records = append(records, rec)
		xx, yy = x, y
		if opcode == command.Stitch || opcode == command.Jump || opcode == command.SequinEject {
			lastX, lastY = x, y
		}
		return nil
	}

	for _, s := range tc.Stitches {
		x, y := int(math.Round(s.X)), int(math.Round(s.Y))
		switch s.Opcode() {
		case command.Trim:
			rel := func(dx, dy int, opcode int) error { return emit(xx+dx, yy+dy, opcode) }
			if err := emitTrimSerpentine(rel, o.TrimAt); err != nil {
				return err
			}
		case command.Stitch, command.Jump, command.SequinEject, command.ColorChange, command.Stop, command.End, command.SequinMode:
			if err := emit(x, y, s.Opcode()); err != nil {
				return err
			}
		}
	}
	if len(tc.Stitches) == 0 || tc.Stitches[len(tc.Stitches)-1].Opcode() != command.End {
		if err := emit(xx, yy, command.End); err != nil {
			return err
		}
	}

	if err := writeHeader(bw, headerFields{
		name:         name,
		author:       author,
		copyright:    copyright,
		stitchCount:  len(records),
		colorChanges: colorChanges,
		minX:         minX, minY: minY, maxX: maxX, maxY: maxY,
		lastX: lastX, lastY: lastY,
		threads:  tc.Threads,
		extended: o.ExtendedHeader,
	}); err != nil {
		return err
	}

	for _, rec := range records {
		if err := bw.WriteBytes(rec[:]); err != nil {
			return err
		}
	}
	return nil
}

// emitTrimSerpentine emits trimAt JUMP records forming a tiny zig-zag in
// place of a TRIM, which DST has no native opcode for. The reader's
// InterpolateTrims pass (with a matching trimAt) collapses the run back
// into a single TRIM. emit takes displacements from the current position;
// the run's net displacement is zero.
func emitTrimSerpentine(emit func(x, y int, opcode int) error, trimAt int) error {
	if trimAt < 2 {
		trimAt = 2
	}
	delta := -4
	if err := emit(delta/-2, delta/-2, command.Jump); err != nil {
		return err
	}
	for i := 0; i < trimAt-2; i++ {
		if err := emit(delta, delta, command.Jump); err != nil {
			return err
		}
		delta = -delta
	}
	return emit(delta/2, delta/2, command.Jump)
}

type headerFields struct {
	name, author, copyright string
	stitchCount, colorChanges int
	minX, minY, maxX, maxY   float64
	lastX, lastY             int
	threads                  []pattern.Thread
	extended                 bool
}

func writeHeader(bw *embio.Writer, h headerFields) error {
	write := func(s string) error { return bw.WriteBytes([]byte(s)) }

	if err := write("LA:" + embio.PadRight(h.name, 16) + "\r"); err != nil {
		return err
	}
	if err := write("ST:" + embio.PadRight(strconv.Itoa(h.stitchCount), 7) + "\r"); err != nil {
		return err
	}
	if err := write("CO:" + embio.PadRight(strconv.Itoa(h.colorChanges), 3) + "\r"); err != nil {
		return err
	}

	extent := func(label string, v float64) error {
		return write(label + ":" + embio.PadRight(strconv.Itoa(int(math.Abs(v))), 5) + "\r")
	}
	if err := extent("+X", math.Max(0, h.maxX)); err != nil {
		return err
	}
	if err := extent("-X", math.Abs(math.Min(0, h.minX))); err != nil {
		return err
	}
	if err := extent("+Y", math.Max(0, h.maxY)); err != nil {
		return err
	}
	if err := extent("-Y", math.Abs(math.Min(0, h.minY))); err != nil {
		return err
	}

	signedField := func(label string, v int) error {
		sign := "+"
		if v < 0 {
			sign = "-"
		}
		return write(label + ":" + sign + embio.PadRight(strconv.Itoa(int(math.Abs(float64(v)))), 5) + "\r")
	}
	if err := signedField("AX", h.lastX); err != nil {
		return err
	}
	if err := signedField("AY", -h.lastY); err != nil {
		return err
	}
	if err := write("MX:+0\r"); err != nil {
		return err
	}
	if err := write("MY:+0\r"); err != nil {
		return err
	}
	if err := write("PD:" + embio.PadRight("******", 6) + "\r"); err != nil {
		return err
	}

	if h.extended {
		if h.author != "" {
			if err := write("AU:" + h.author + "\r"); err != nil {
				return err
			}
		}
		if h.copyright != "" {
			if err := write("CP:" + h.copyright + "\r"); err != nil {
				return err
			}
		}
		for _, t := range h.threads {
			line := "TC:" + strings.ToUpper(strings.TrimPrefix(t.HexColor(), "#")) + "," + t.Description + "," + t.CatalogNumber + "\r"
			if err := write(line); err != nil {
				return err
			}
		}
	}

	if err := bw.WriteByte(0x1A); err != nil {
		return err
	}
	return bw.PadTo(HeaderSize, 0x20)
}

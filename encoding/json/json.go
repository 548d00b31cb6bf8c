// Package json implements the canonical JSON interchange codec: the one
// lossless format in the registry, used as the reference representation
// against which every other codec's round trip is judged. See
// SPEC_FULL.md §6 for the object schema this package reads and writes
// byte-exact.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fibercraft/stitchkit/command"
	"github.com/fibercraft/stitchkit/embfmt"
	"github.com/fibercraft/stitchkit/pattern"
	"github.com/fibercraft/stitchkit/transcode"
)

func init() {
	embfmt.RegisterDefault(embfmt.Format{
		Name:        "json",
		DisplayName: "JSON interchange",
		Extensions:  []string{"json"},
		Description: "lossless JSON interchange schema",
		Reader:      embfmt.ReaderFunc(func(r io.ReadSeeker) (*pattern.Pattern, error) { return Read(r) }),
		Writer:      embfmt.WriterFunc(func(p *pattern.Pattern, w io.Writer) error { return Write(p, w) }),
	})
}

// document mirrors the on-disk object shape. Every field is optional on
// read; omitempty on write so an empty pattern serializes as "{}".
type document struct {
	Metadata map[string]string `json:"metadata,omitempty"`
	Threads  []threadDoc       `json:"threads,omitempty"`
	Stitches []stitchDoc       `json:"stitches,omitempty"`
}

type threadDoc struct {
	Color         string `json:"color"`
	Description   string `json:"description,omitempty"`
	CatalogNumber string `json:"catalog_number,omitempty"`
	Brand         string `json:"brand,omitempty"`
	Chart         string `json:"chart,omitempty"`
	Weight        string `json:"weight,omitempty"`
}

type stitchDoc struct {
	Command string  `json:"command"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

var commandNames = map[int]string{
	command.Stitch:        "STITCH",
	command.Jump:          "JUMP",
	command.Trim:          "TRIM",
	command.ColorChange:   "COLOR_CHANGE",
	command.NeedleSet:     "NEEDLE_SET",
	command.Stop:          "STOP",
	command.End:           "END",
	command.SequenceBreak: "SEQUENCE_BREAK",
	command.ColorBreak:    "COLOR_BREAK",
	command.Slow:          "SLOW",
	command.Fast:          "FAST",
	command.SequinMode:    "SEQUIN_MODE",
	command.SequinEject:   "SEQUIN_EJECT",
}

var namesToCommand = func() map[string]int {
	m := make(map[string]int, len(commandNames))
	for k, v := range commandNames {
		m[v] = k
	}
	return m
}()

// commandName renders an opcode as its canonical spelling, or
// "UNKNOWN_<n>" when the opcode has no entry in the interchange's name
// table.
func commandName(opcode int) string {
	if n, ok := commandNames[opcode]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN_%d", opcode)
}

// parseCommandName is the inverse of commandName.
func parseCommandName(s string) (int, error) {
	if op, ok := namesToCommand[s]; ok {
		return op, nil
	}
	if strings.HasPrefix(s, "UNKNOWN_") {
		n, err := strconv.Atoi(strings.TrimPrefix(s, "UNKNOWN_"))
		if err == nil {
			return n, nil
		}
	}
	return 0, embfmt.ParseError("JSON: unrecognised stitch command %q", s)
}

// parseColor accepts "#rrggbb", "0xrrggbb", or bare "rrggbb", all
// case-insensitively, matching the reference JSON reader.
func parseColor(s string) (uint32, error) {
	h := s
	switch {
	case strings.HasPrefix(h, "#"):
		h = h[1:]
	case strings.HasPrefix(h, "0x"), strings.HasPrefix(h, "0X"):
		h = h[2:]
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, embfmt.InvalidColorError(s, "")
	}
	return uint32(v) & 0xFFFFFF, nil
}

// Read parses a JSON interchange document into a Pattern. Missing
// metadata/threads/stitches keys are treated as empty.
func Read(r io.Reader) (*pattern.Pattern, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return pattern.New(), nil
		}
		return nil, embfmt.JSONError(err)
	}

	p := pattern.New()
	for k, v := range doc.Metadata {
		p.SetMetadata(k, v)
	}

	for i, td := range doc.Threads {
		color, err := parseColor(td.Color)
		if err != nil {
			return nil, embfmt.ParseError("JSON: thread %d: %v", i, err)
		}
		th := pattern.NewThread(color).
			WithDescription(td.Description).
			WithCatalogNumber(td.CatalogNumber).
			WithBrand(td.Brand).
			WithChart(td.Chart).
			WithWeight(td.Weight)
		p.AddThread(th)
	}

	for i, sd := range doc.Stitches {
		opcode, err := parseCommandName(sd.Command)
		if err != nil {
			return nil, embfmt.ParseError("JSON: stitch %d: %v", i, err)
		}
		p.AddStitchAbsolute(sd.X, sd.Y, command.EncodeOpcode(opcode))
	}

	return p, nil
}

// Write renders p as a JSON interchange document. Empty collections are
// omitted rather than emitted as empty arrays; an empty pattern
// serializes as "{}".
func Write(p *pattern.Pattern, w io.Writer) error {
	if len(p.Stitches) == 0 && len(p.Threads) == 0 && len(p.Extras) == 0 {
		enc := json.NewEncoder(w)
		if err := enc.Encode(document{}); err != nil {
			return embfmt.JSONError(err)
		}
		return nil
	}

	tc, err := transcode.Transcode(p, transcode.JSONSettings())
	if err != nil {
		return err
	}

	doc := document{}
	if len(tc.Extras) > 0 {
		doc.Metadata = tc.Extras
	}
	for _, t := range tc.Threads {
		doc.Threads = append(doc.Threads, threadDoc{
			Color:         strings.ToUpper(t.HexColor()),
			Description:   t.Description,
			CatalogNumber: t.CatalogNumber,
			Brand:         t.Brand,
			Chart:         t.Chart,
			Weight:        t.Weight,
		})
	}
	for _, s := range tc.Stitches {
		doc.Stitches = append(doc.Stitches, stitchDoc{
			Command: commandName(s.Opcode()),
			X:       s.X,
			Y:       s.Y,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return embfmt.JSONError(err)
	}
	return nil
}

package json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fibercraft/stitchkit/command"
	"github.com/fibercraft/stitchkit/pattern"
)

func TestRoundTripTwoColourPattern(t *testing.T) {
	p := pattern.New()
	p.StitchAbs(0, 0)
	p.StitchAbs(50, 50)
	p.AddThread(pattern.NewThread(0xFF0000))
	p.ColorChange(0, 0)
	p.StitchAbs(100, 100)
	p.AddThread(pattern.NewThread(0x0000FF))
	p.End()

	var buf bytes.Buffer
	if err := Write(p, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(out.Threads) != 2 {
		t.Fatalf("threads = %d, want 2", len(out.Threads))
	}
	if out.Threads[0].HexColor() != "#ff0000" || out.Threads[1].HexColor() != "#0000ff" {
		t.Fatalf("thread colors = %v", out.Threads)
	}

	var stitches, colorChanges int
	for _, s := range out.Stitches {
		switch s.Opcode() {
		case command.Stitch:
			stitches++
		case command.ColorChange:
			colorChanges++
		}
	}
	if stitches != 3 || colorChanges != 1 {
		t.Fatalf("stitches=%d colorChanges=%d, want 3 and 1", stitches, colorChanges)
	}
}

func TestRoundTripThreadMetadataSurvives(t *testing.T) {
	p := pattern.New()
	p.StitchAbs(0, 0)
	th := pattern.NewThread(0x00FF00).
		WithDescription("Forest Green").
		WithCatalogNumber("1234").
		WithBrand("Madeira")
	p.AddThread(th)
	p.End()

	var buf bytes.Buffer
	if err := Write(p, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(out.Threads) != 1 {
		t.Fatalf("threads = %d, want 1", len(out.Threads))
	}
	got := out.Threads[0]
	if got.Description != "Forest Green" || got.CatalogNumber != "1234" || got.Brand != "Madeira" {
		t.Fatalf("thread metadata lost: %+v", got)
	}
}

func TestWriteEmptyPatternIsEmptyObject(t *testing.T) {
	p := pattern.New()

	var buf bytes.Buffer
	if err := Write(p, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "{}" {
		t.Fatalf("empty pattern serialized as %q, want {}", got)
	}
}

func TestColorParsingAcceptsAllPrefixForms(t *testing.T) {
	for _, s := range []string{"#ff00aa", "0xFF00AA", "ff00aa", "FF00AA"} {
		v, err := parseColor(s)
		if err != nil {
			t.Fatalf("parseColor(%q): %v", s, err)
		}
		if v != 0xFF00AA {
			t.Fatalf("parseColor(%q) = %06x, want ff00aa", s, v)
		}
	}
}

func TestReadToleratesMissingKeys(t *testing.T) {
	out, err := Read(strings.NewReader(`{"stitches":[{"command":"END","x":0,"y":0}]}`))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(out.Threads) != 0 {
		t.Fatalf("threads = %d, want 0", len(out.Threads))
	}
	if len(out.Stitches) != 1 {
		t.Fatalf("stitches = %d, want 1", len(out.Stitches))
	}
}

func TestUnknownOpcodeRoundTrips(t *testing.T) {
	p := pattern.New()
	p.AddStitchAbsolute(0, 0, command.EncodeOpcode(0x42))
	p.End()

	var buf bytes.Buffer
	if err := Write(p, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "UNKNOWN_66") {
		t.Fatalf("expected UNKNOWN_66 in output, got %s", buf.String())
	}

	out, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if out.Stitches[0].Opcode() != 0x42 {
		t.Fatalf("opcode = %#x, want 0x42", out.Stitches[0].Opcode())
	}
}

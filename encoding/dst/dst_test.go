package dst

import (
	"bytes"
	"testing"

	"github.com/fibercraft/stitchkit/command"
	"github.com/fibercraft/stitchkit/embfmt"
	"github.com/fibercraft/stitchkit/pattern"
)

func TestDecodeDXDYRoundTrip(t *testing.T) {
	for dx := -121; dx <= 121; dx += 7 {
		for dy := -121; dy <= 121; dy += 11 {
			rec, err := encodeRecord(dx, dy, command.Stitch)
			if err != nil {
				t.Fatalf("encodeRecord(%d,%d): %v", dx, dy, err)
			}
			gotDX := decodeDX(rec[0], rec[1], rec[2])
			gotDY := decodeDY(rec[0], rec[1], rec[2])
			if gotDX != dx || gotDY != dy {
				t.Fatalf("round trip (%d,%d) -> (%d,%d)", dx, dy, gotDX, gotDY)
			}
		}
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	if _, err := encodeRecord(122, 0, command.Stitch); err == nil {
		t.Fatal("expected Encoding error for dx=122")
	} else if code, ok := embfmt.CodeOf(err); !ok || code != embfmt.CodeEncoding {
		t.Fatalf("expected Encoding code, got %v", err)
	}
}

func TestEncodeEndByteExact(t *testing.T) {
	rec, err := encodeRecord(0, 0, command.End)
	if err != nil {
		t.Fatalf("encodeRecord: %v", err)
	}
	if rec[2] != 0b11110011 {
		t.Fatalf("END byte2 = %08b, want 11110011", rec[2])
	}
}

func TestDecodeScenarioEightyMinusForty(t *testing.T) {
	rec, err := encodeRecord(80, -40, command.Stitch)
	if err != nil {
		t.Fatalf("encodeRecord: %v", err)
	}
	if gotDX := decodeDX(rec[0], rec[1], rec[2]); gotDX != 80 {
		t.Fatalf("dx = %d, want 80", gotDX)
	}
	if gotDY := decodeDY(rec[0], rec[1], rec[2]); gotDY != -40 {
		t.Fatalf("dy = %d, want -40", gotDY)
	}
}

func TestWriteReadRoundTripSquare(t *testing.T) {
	p := pattern.New()
	p.StitchAbs(0, 0)
	p.StitchAbs(100, 0)
	p.StitchAbs(100, 100)
	p.StitchAbs(0, 100)
	p.StitchAbs(0, 0)
	p.AddThread(pattern.NewThread(0xFF0000))
	p.End()

	var buf bytes.Buffer
	if err := Write(p, &buf, WithExtendedHeader(true)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	minX, minY, maxX, maxY := out.Bounds()
	if minX != 0 || minY != 0 || maxX != 100 || maxY != 100 {
		t.Fatalf("bounds = (%v,%v,%v,%v), want (0,0,100,100)", minX, minY, maxX, maxY)
	}
	if len(out.Threads) == 0 || out.Threads[0].HexColor() != "#ff0000" {
		t.Fatalf("first thread = %+v, want #ff0000", out.Threads)
	}

	stitchCount := out.CountStitches()
	if stitchCount < 3 || stitchCount > 7 {
		t.Fatalf("stitch count = %d, want within [3,7]", stitchCount)
	}
}

func TestTrimSerpentineRecoversOneTrim(t *testing.T) {
	p := pattern.New()
	p.StitchAbs(0, 0)
	p.Trim()
	p.StitchAbs(50, 50)
	p.End()

	var buf bytes.Buffer
	if err := Write(p, &buf, WithTrimAt(3)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Read(bytes.NewReader(buf.Bytes()), WithTrimAt(3))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	trims := 0
	for _, s := range out.Stitches {
		if s.Opcode() == command.Trim {
			trims++
		}
	}
	if trims != 1 {
		t.Fatalf("trims = %d, want 1", trims)
	}
}

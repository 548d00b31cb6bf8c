package hus

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/fibercraft/stitchkit/embfmt"
)

// buildHeader writes a minimal valid HUS header naming one colour index
// and the given section offsets, with no compressed payload following.
func buildHeader(colorIndex uint16, commandOffset, xOffset, yOffset uint32) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian
	write32 := func(v uint32) { var b [4]byte; le.PutUint32(b[:], v); buf.Write(b[:]) }
	write16 := func(v uint16) { var b [2]byte; le.PutUint16(b[:], v); buf.Write(b[:]) }

	write32(0)  // magic
	write32(0)  // stitch count
	write32(1)  // color count
	write16(0)  // extend_pos_x
	write16(0)  // extend_pos_y
	write16(0)  // extend_neg_x
	write16(0)  // extend_neg_y
	write32(commandOffset)
	write32(xOffset)
	write32(yOffset)
	buf.Write(make([]byte, 8)) // string field
	write16(0)                 // unknown
	write16(colorIndex)
	return buf.Bytes()
}

func TestReadRejectsOutOfRangeThreadIndex(t *testing.T) {
	data := buildHeader(9999, 42, 52, 62)
	data = append(data, make([]byte, 64)...)
	_, err := Read(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for out-of-range thread index")
	}
	if code, ok := embfmt.CodeOf(err); !ok || code != embfmt.CodeParse {
		t.Fatalf("expected Parse error, got %v", err)
	}
}

func TestReadRejectsOffsetsOutOfOrder(t *testing.T) {
	data := buildHeader(0, 60, 50, 70)
	data = append(data, make([]byte, 64)...)
	_, err := Read(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for out-of-order section offsets")
	}
}

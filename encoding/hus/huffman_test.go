package hus

import "testing"

func TestBitReaderGetBitsAcrossByteBoundary(t *testing.T) {
	r := bitReader{data: []byte{0b10110000, 0b00001111}}
	if got := r.getBits(0, 4); got != 0b1011 {
		t.Fatalf("got %b, want 1011", got)
	}
	if got := r.getBits(4, 8); got != 0b00000000 {
		t.Fatalf("got %b, want 00000000", got)
	}
	if got := r.getBits(12, 4); got != 0b1111 {
		t.Fatalf("got %b, want 1111", got)
	}
}

func TestBitReaderPopAdvancesPosition(t *testing.T) {
	r := &bitReader{data: []byte{0xFF, 0x00}}
	if v := r.pop(4); v != 0xF {
		t.Fatalf("first nibble = %x, want f", v)
	}
	if v := r.pop(4); v != 0xF {
		t.Fatalf("second nibble = %x, want f", v)
	}
	if v := r.pop(8); v != 0x00 {
		t.Fatalf("third byte = %x, want 00", v)
	}
}

func TestHuffmanDefaultValue(t *testing.T) {
	h := newDefaultHuffman(42)
	v, n := h.lookup(0xFFFF)
	if v != 42 || n != 0 {
		t.Fatalf("lookup = (%d, %d), want (42, 0)", v, n)
	}
}

func TestHuffmanTableUniformLengths(t *testing.T) {
	// Three symbols, all code length 2: each code occupies one slot of the
	// (1<<2)-entry table, in ascending symbol order.
	h := newHuffman([]int{2, 2, 2}, 0)
	for i := 0; i < 3; i++ {
		lookahead := uint16(i) << 14
		v, n := h.lookup(lookahead)
		if v != i {
			t.Fatalf("symbol %d: lookup value = %d", i, v)
		}
		if n != 2 {
			t.Fatalf("symbol %d: lookup length = %d, want 2", i, n)
		}
	}
}

func TestExpandLiteralTerminatesOnEndToken(t *testing.T) {
	// block_elements = 1, degenerate character huffman (count 0, default
	// value 510 = END) so the first token terminates the stream with zero
	// output bytes. Bit fields, in order: 16 bits block_elements = 1;
	// character-length huffman 5 bits count = 0, 5 bits default = 0;
	// character huffman 9 bits count = 0, 9 bits default = 510; distance
	// huffman 5 bits count = 0, 5 bits default = 0.
	data := []byte{
		0x00, 0x01,
		0x00, 0x00,
		0x1F, 0xE0,
		0x00,
	}
	out, err := Expand(data, 5)
	if err != nil {
		t.Fatalf("Expand returned error on degenerate input: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("Expand produced %d bytes, want 0", len(out))
	}
}

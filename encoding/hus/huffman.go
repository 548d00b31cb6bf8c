package hus

import "github.com/fibercraft/stitchkit/embfmt"

// huffmanTable is a flattened lookup table for one Huffman alphabet: every
// possible tableWidth-bit lookahead maps directly to a symbol index plus
// the number of bits that symbol's code actually occupies. Entries for
// codes shorter than tableWidth occupy multiple contiguous slots, filled in
// increasing code-length order — the same construction the HUS encoder
// used, so the slot layout recovers the original codes without needing to
// store them explicitly.
type huffmanTable struct {
	defaultValue int
	lengths      []int
	table        []int
	tableWidth   int
}

func newDefaultHuffman(defaultValue int) *huffmanTable {
	return &huffmanTable{defaultValue: defaultValue}
}

func newHuffman(lengths []int, defaultValue int) *huffmanTable {
	h := &huffmanTable{defaultValue: defaultValue, lengths: lengths}
	h.build()
	return h
}

func (h *huffmanTable) build() {
	if len(h.lengths) == 0 {
		return
	}
	maxLength := 0
	for _, l := range h.lengths {
		if l > maxLength {
			maxLength = l
		}
	}
	h.tableWidth = maxLength
	if h.tableWidth > 16 {
		h.tableWidth = 16
	}
	if h.tableWidth == 0 {
		return
	}
	tableSize := 1 << uint(h.tableWidth)
	h.table = make([]int, 0, tableSize)

	for bitLength := 1; bitLength <= h.tableWidth; bitLength++ {
		size := 1 << uint(h.tableWidth-bitLength)
		for idx, length := range h.lengths {
			if length != bitLength {
				continue
			}
			for i := 0; i < size; i++ {
				if len(h.table) < cap(h.table) {
					h.table = append(h.table, idx)
				}
			}
		}
	}
}

// lookup decodes the symbol whose code prefixes the given 16-bit lookahead,
// returning the symbol index and its code length in bits.
func (h *huffmanTable) lookup(lookahead uint16) (value, length int) {
	if len(h.table) == 0 {
		return h.defaultValue, 0
	}
	if h.tableWidth == 0 || h.tableWidth > 16 {
		return h.defaultValue, 0
	}
	index := int(lookahead >> uint(16-h.tableWidth))
	if index >= len(h.table) {
		return h.defaultValue, 0
	}
	v := h.table[index]
	if v >= len(h.lengths) {
		return h.defaultValue, 0
	}
	return v, h.lengths[v]
}

// bitReader reads fixed-width big-endian bitfields from a byte slice at an
// arbitrary bit offset, mirroring the source decompressor's get_bits.
type bitReader struct {
	data   []byte
	bitPos int
}

func (r *bitReader) getBits(start, length int) uint32 {
	if length <= 0 || length > 32 {
		return 0
	}
	endBit := start + length - 1
	startByte := start / 8
	if startByte >= len(r.data) {
		return 0
	}
	endByte := endBit / 8
	if endByte >= len(r.data) {
		endByte = len(r.data) - 1
	}

	var value uint32
	for i := startByte; i <= endByte; i++ {
		value <<= 8
		if i < len(r.data) {
			value |= uint32(r.data[i])
		}
	}

	unusedBitsRight := (8 - (endBit+1)%8) % 8
	var mask uint32
	if length == 32 {
		mask = 0xFFFFFFFF
	} else {
		mask = (1 << uint(length)) - 1
	}
	return (value >> uint(unusedBitsRight)) & mask
}

func (r *bitReader) peek(n int) uint32 { return r.getBits(r.bitPos, n) }
func (r *bitReader) slide(n int)       { r.bitPos += n }
func (r *bitReader) pop(n int) uint32 {
	v := r.peek(n)
	r.slide(n)
	return v
}

func (r *bitReader) readVariableLength() int {
	m := int(r.pop(3))
	if m != 7 {
		return m
	}
	for i := 0; i < 13; i++ {
		if r.pop(1) == 1 {
			m++
		} else {
			break
		}
	}
	return m
}

// huffmanDecompressor replays the dynamic-block LZSS/Huffman stream used by
// every compressed HUS section (commands, X deltas, Y deltas).
type huffmanDecompressor struct {
	bitReader
	blockElements    int
	characterHuffman *huffmanTable
	distanceHuffman  *huffmanTable
}

func newHuffmanDecompressor(data []byte) *huffmanDecompressor {
	return &huffmanDecompressor{bitReader: bitReader{data: data}, blockElements: -1}
}

func (d *huffmanDecompressor) loadCharacterLengthHuffman() *huffmanTable {
	count := int(d.pop(5))
	if count == 0 {
		return newDefaultHuffman(int(d.pop(5)))
	}
	lengths := make([]int, count)
	index := 0
	for index < count {
		if index == 3 {
			index += int(d.pop(2))
		}
		if index < count {
			lengths[index] = d.readVariableLength()
			index++
		}
	}
	return newHuffman(lengths, 8)
}

func (d *huffmanDecompressor) loadCharacterHuffman(lengthHuffman *huffmanTable) *huffmanTable {
	count := int(d.pop(9))
	if count == 0 {
		return newDefaultHuffman(int(d.pop(9)))
	}
	lengths := make([]int, count)
	index := 0
	for index < count {
		c, length := lengthHuffman.lookup(uint16(d.peek(16)))
		d.slide(length)

		switch {
		case c == 0:
			index++
		case c == 1:
			index += 3 + int(d.pop(4))
		case c == 2:
			index += 20 + int(d.pop(9))
		case index < count:
			lengths[index] = c - 2
			index++
		default:
			index++
		}
	}
	return newHuffman(lengths, 0)
}

func (d *huffmanDecompressor) loadDistanceHuffman() *huffmanTable {
	count := int(d.pop(5))
	if count == 0 {
		return newDefaultHuffman(int(d.pop(5)))
	}
	lengths := make([]int, count)
	for i := range lengths {
		lengths[i] = d.readVariableLength()
	}
	return newHuffman(lengths, 0)
}

func (d *huffmanDecompressor) loadBlock() {
	d.blockElements = int(d.pop(16))
	lengthHuffman := d.loadCharacterLengthHuffman()
	d.characterHuffman = d.loadCharacterHuffman(lengthHuffman)
	d.distanceHuffman = d.loadDistanceHuffman()
}

func (d *huffmanDecompressor) getToken() int {
	if d.blockElements <= 0 {
		d.loadBlock()
	}
	d.blockElements--
	value, length := d.characterHuffman.lookup(uint16(d.peek(16)))
	d.slide(length)
	return value
}

func (d *huffmanDecompressor) getPosition() int {
	value, length := d.distanceHuffman.lookup(uint16(d.peek(16)))
	d.slide(length)
	if value == 0 {
		return 0
	}
	v := value - 1
	if v >= 32 {
		return 0
	}
	additional := int(d.pop(v))
	return (1 << uint(v)) + additional
}

// expandHuffman decompresses data, stopping at the END token (510) or once
// expectedSize bytes have been produced, whichever comes first.
func expandHuffman(data []byte, expectedSize int) ([]byte, error) {
	d := newHuffmanDecompressor(data)
	out := make([]byte, 0, expectedSize)
	bitsTotal := len(data) * 8

	for bitsTotal > d.bitPos {
		if expectedSize >= 0 && len(out) >= expectedSize {
			break
		}
		character := d.getToken()

		switch {
		case character <= 255:
			out = append(out, byte(character))
		case character == 510:
			return out, nil
		default:
			length := character - 253
			if length <= 0 {
				continue
			}
			back := d.getPosition() + 1
			if back > len(out) {
				continue
			}
			position := len(out) - back
			if back > length {
				end := position + length
				if end > len(out) {
					end = len(out)
				}
				for i := position; i < end; i++ {
					out = append(out, out[i])
				}
			} else {
				for i := 0; i < length; i++ {
					idx := position + i
					if idx >= len(out) {
						break
					}
					out = append(out, out[idx])
				}
			}
		}
	}
	return out, nil
}

// Expand is the package-level entry point mirroring the reference
// implementation's compress::expand: it decompresses one HUS section given
// its expected uncompressed length (a stitch count). It returns a Parse
// error only for an empty section when expectedSize > 0; malformed tokens
// and out-of-range back-references are skipped, and the output may be
// shorter than expectedSize (hus.Read checks the lengths).
func Expand(data []byte, expectedSize int) ([]byte, error) {
	if len(data) == 0 && expectedSize > 0 {
		return nil, embfmt.ParseError("HUS: empty compressed section, expected %d bytes", expectedSize)
	}
	out, err := expandHuffman(data, expectedSize)
	if err != nil {
		return nil, err
	}
	return out, nil
}

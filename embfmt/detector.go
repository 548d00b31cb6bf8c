package embfmt

import (
	"bytes"
	"io"
)

// sniffLen is the number of leading bytes the detector inspects.
const sniffLen = 512

// Detect inspects up to the first sniffLen bytes of r without consuming
// them: the stream position after Detect equals the position before,
// regardless of outcome. It returns "" if no heuristic matches.
func Detect(r io.ReadSeeker) (string, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", IOError(err)
	}
	defer func() { _, _ = r.Seek(start, io.SeekStart) }()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", IOError(err)
	}
	buf = buf[:n]

	if n < 4 {
		return "", ParseError("input too short to detect format: %d bytes", n)
	}

	switch {
	case bytes.HasPrefix(buf, []byte("#PES")):
		return "pes", nil
	case bytes.HasPrefix(buf, []byte("#PEC")):
		return "pec", nil
	case bytes.HasPrefix(buf, []byte("%vsm%")):
		return "vp3", nil
	case buf[0] == 0x74 && n >= 4 && buf[1] < 0x80 && buf[2] < 0x80 && buf[3] < 0x80:
		return "jef", nil
	}

	if i := firstNonSpace(buf); i >= 0 && buf[i] == '{' {
		return "json", nil
	}

	if looksLikeCSV(buf) {
		return "csv", nil
	}

	if looksLikeDST(buf) {
		return "dst", nil
	}

	if looksLikeGcode(buf) {
		return "gcode", nil
	}

	return "", nil
}

func firstNonSpace(buf []byte) int {
	for i, b := range buf {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return i
		}
	}
	return -1
}

func looksLikeDST(buf []byte) bool {
	return bytes.Contains(buf, []byte("LA:")) ||
		bytes.Contains(buf, []byte("ST:")) ||
		bytes.Contains(buf, []byte("CO:"))
}

func looksLikeCSV(buf []byte) bool {
	nl := bytes.IndexByte(buf, '\n')
	line := buf
	if nl >= 0 {
		line = buf[:nl]
	}
	return bytes.Count(line, []byte(",")) >= 2
}

func looksLikeGcode(buf []byte) bool {
	for _, tok := range [][]byte{[]byte("G0"), []byte("G1"), []byte("M3")} {
		if bytes.Contains(buf, tok) {
			return true
		}
	}
	return false
}

// DetectByExtension looks up a format purely from a filename extension via
// the given registry, without reading any bytes.
func DetectByExtension(reg *Registry, filename string) (string, bool) {
	i := bytes.LastIndexByte([]byte(filename), '.')
	if i < 0 {
		return "", false
	}
	f, ok := reg.LookupExtension(filename[i+1:])
	if !ok {
		return "", false
	}
	return f.Name, true
}

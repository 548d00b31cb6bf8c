package embfmt

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetectPESPrefix(t *testing.T) {
	payload := append([]byte("#PES0001"), make([]byte, 24)...)
	r := bytes.NewReader(payload)
	name, err := Detect(r)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if name != "pes" {
		t.Fatalf("Detect = %q, want pes", name)
	}
}

func TestDetectLeavesPositionUnchanged(t *testing.T) {
	payload := append([]byte("#PES0001"), make([]byte, 600)...)
	r := bytes.NewReader(payload)

	const seekTo = 17
	if _, err := r.Seek(seekTo, 0); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	before, _ := r.Seek(0, 1)

	if _, err := Detect(r); err != nil {
		t.Fatalf("Detect: %v", err)
	}

	after, _ := r.Seek(0, 1)
	if after != before {
		t.Fatalf("stream position moved from %d to %d", before, after)
	}
}

func TestDetectDSTHeaderTokens(t *testing.T) {
	header := strings.Repeat(" ", 512)
	header = "LA:test     \r" + "ST:0005\r" + "CO:001\r" + header
	r := bytes.NewReader([]byte(header))
	name, err := Detect(r)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if name != "dst" {
		t.Fatalf("Detect = %q, want dst", name)
	}
}

func TestDetectJSONObject(t *testing.T) {
	r := bytes.NewReader([]byte(`  {"stitches": []}`))
	name, err := Detect(r)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if name != "json" {
		t.Fatalf("Detect = %q, want json", name)
	}
}

func TestDetectByExtensionEveryRegisteredFormat(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Format{Name: "dst", Extensions: []string{"dst"}})
	reg.Register(Format{Name: "hus", Extensions: []string{"hus", "vip"}})
	reg.Register(Format{Name: "json", Extensions: []string{"json"}})
	reg.Register(Format{Name: "pes", Extensions: []string{"pes"}})

	for _, name := range reg.Names() {
		f, _ := reg.Lookup(name)
		if len(f.Extensions) == 0 {
			continue
		}
		for _, ext := range f.Extensions {
			found, ok := DetectByExtension(reg, "design."+ext)
			if !ok {
				t.Errorf("format %q not recognised by its own extension %q", f.Name, ext)
				continue
			}
			if found != f.Name {
				t.Errorf("DetectByExtension(%q) = %q, want %q", ext, found, f.Name)
			}
		}
	}
}

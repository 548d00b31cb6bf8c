package embfmt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fibercraft/stitchkit/pattern"
)

func stubFormat(name string) Format {
	return Format{
		Name:       name,
		Extensions: []string{name},
		Reader: ReaderFunc(func(r io.ReadSeeker) (*pattern.Pattern, error) {
			return pattern.New(), nil
		}),
		Writer: WriterFunc(func(p *pattern.Pattern, w io.Writer) error {
			_, err := w.Write([]byte(name))
			return err
		}),
	}
}

func TestRegisterThenLookupCaseInsensitive(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubFormat("dst"))
	f, ok := reg.Lookup("DST")
	if !ok || f.Name != "dst" {
		t.Fatalf("Lookup(DST) = %+v, %v", f, ok)
	}
}

func TestRegistryOnlyLeftUnsupportedWithoutReaderOrWriter(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Format{Name: "pes", Extensions: []string{"pes"}})

	if _, err := reg.ReadPattern(bytes.NewReader(nil), "pes"); err == nil {
		t.Fatal("ReadPattern on a registry-only format should fail")
	} else if code, ok := CodeOf(err); !ok || code != CodeUnsupportedFormat {
		t.Fatalf("code = %v, %v, want CodeUnsupportedFormat", code, ok)
	}

	if err := reg.WritePattern(pattern.New(), &bytes.Buffer{}, "pes"); err == nil {
		t.Fatal("WritePattern on a registry-only format should fail")
	} else if code, ok := CodeOf(err); !ok || code != CodeUnsupportedFormat {
		t.Fatalf("code = %v, %v, want CodeUnsupportedFormat", code, ok)
	}
}

func TestReadPatternUnknownFormat(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.ReadPattern(bytes.NewReader(nil), "nope"); err == nil {
		t.Fatal("expected an error for an unregistered format name")
	}
}

func TestReadWritePatternDispatch(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubFormat("dst"))

	p, err := reg.ReadPattern(bytes.NewReader([]byte("irrelevant")), "dst")
	if err != nil {
		t.Fatalf("ReadPattern: %v", err)
	}
	if p == nil {
		t.Fatal("ReadPattern returned a nil pattern")
	}

	var buf bytes.Buffer
	if err := reg.WritePattern(p, &buf, "dst"); err != nil {
		t.Fatalf("WritePattern: %v", err)
	}
	if buf.String() != "dst" {
		t.Fatalf("buf = %q, want dst", buf.String())
	}
}

func TestReadWritePatternContextRespectsCancellation(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubFormat("dst"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := reg.ReadPatternContext(ctx, bytes.NewReader(nil), "dst"); err == nil {
		t.Fatal("expected a cancellation error")
	} else if code, ok := CodeOf(err); !ok || code != CodeIO {
		t.Fatalf("code = %v, %v, want CodeIO", code, ok)
	}

	if err := reg.WritePatternContext(ctx, pattern.New(), &bytes.Buffer{}, "dst"); err == nil {
		t.Fatal("expected a cancellation error")
	} else if code, ok := CodeOf(err); !ok || code != CodeIO {
		t.Fatalf("code = %v, %v, want CodeIO", code, ok)
	}
}

func TestReadableWritableAndNamesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubFormat("zzz"))
	reg.Register(Format{Name: "aaa", Extensions: []string{"aaa"}})

	names := reg.Names()
	if !sortedStrings(names) {
		t.Fatalf("Names() = %v, not sorted", names)
	}

	readable := reg.Readable()
	if len(readable) != 1 || readable[0] != "zzz" {
		t.Fatalf("Readable() = %v, want [zzz]", readable)
	}
	writable := reg.Writable()
	if len(writable) != 1 || writable[0] != "zzz" {
		t.Fatalf("Writable() = %v, want [zzz]", writable)
	}
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if strings.Compare(s[i-1], s[i]) > 0 {
			return false
		}
	}
	return true
}

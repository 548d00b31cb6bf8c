package embfmt

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"blainsmith.com/go/seahash"

	"github.com/fibercraft/stitchkit/pattern"
)

// Reader decodes a pattern from a seekable byte source.
type Reader interface {
	Read(r io.ReadSeeker) (*pattern.Pattern, error)
}

// Writer encodes a pattern to a byte sink. Some formats require the sink
// to support Seek because size/offset fields in their header are written
// after the stitch data.
type Writer interface {
	Write(p *pattern.Pattern, w io.Writer) error
}

// ReaderFunc adapts a plain function to the Reader interface.
type ReaderFunc func(r io.ReadSeeker) (*pattern.Pattern, error)

func (f ReaderFunc) Read(r io.ReadSeeker) (*pattern.Pattern, error) { return f(r) }

// WriterFunc adapts a plain function to the Writer interface.
type WriterFunc func(p *pattern.Pattern, w io.Writer) error

func (f WriterFunc) Write(p *pattern.Pattern, w io.Writer) error { return f(p, w) }

// Format describes one entry in the registry: a canonical name, its
// recognised extensions, a human description, and optional reader/writer
// implementations. A Format with a nil Reader or Writer is registry-only
// in that direction: dispatching that direction returns
// UnsupportedFormatError.
type Format struct {
	Name        string
	DisplayName string
	Extensions  []string
	Description string
	Reader      Reader
	Writer      Writer
}

func (f Format) CanRead() bool  { return f.Reader != nil }
func (f Format) CanWrite() bool { return f.Writer != nil }

// Registry is a read-only (after construction), concurrency-safe table of
// known formats.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Format
	byExt   map[string]string // extension (no dot, lowercase) -> name
	ordered []string
}

// NewRegistry returns an empty registry. Use Register to populate it.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Format),
		byExt:  make(map[string]string),
	}
}

// Register adds a format. Later registrations with the same name replace
// earlier ones; extensions from the new entry take priority in By
// Extension lookups.
func (r *Registry) Register(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := strings.ToLower(f.Name)
	f.Name = name
	if _, exists := r.byName[name]; !exists {
		r.ordered = append(r.ordered, name)
	}
	r.byName[name] = f
	for _, ext := range f.Extensions {
		r.byExt[strings.ToLower(strings.TrimPrefix(ext, "."))] = name
	}
}

// Lookup returns the format registered under name (case-insensitive).
func (r *Registry) Lookup(name string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byName[strings.ToLower(name)]
	return f, ok
}

// LookupExtension returns the format registered for the given file
// extension (with or without a leading dot, case-insensitive).
func (r *Registry) LookupExtension(ext string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byExt[strings.ToLower(strings.TrimPrefix(ext, "."))]
	if !ok {
		return Format{}, false
	}
	return r.byName[name], true
}

// Names returns every registered format name, sorted, for stable
// enumeration (list-formats, help text).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.ordered))
	copy(out, r.ordered)
	sort.Strings(out)
	return out
}

// Readable returns the names of every format with a registered Reader.
func (r *Registry) Readable() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, name := range r.ordered {
		if r.byName[name].CanRead() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Writable returns the names of every format with a registered Writer.
func (r *Registry) Writable() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, name := range r.ordered {
		if r.byName[name].CanWrite() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ReadPattern dispatches to the named format's reader. On a Parse-coded
// failure the returned error is annotated with a checksum of the input, so
// two independent bug reports naming the same format can be told apart
// without re-attaching the payload.
func (r *Registry) ReadPattern(src io.ReadSeeker, name string) (*pattern.Pattern, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return nil, UnsupportedFormatError("unknown format %q", name)
	}
	if !f.CanRead() {
		return nil, UnsupportedFormatError("format %q has no reader", name)
	}
	p, err := f.Reader.Read(src)
	if err != nil {
		return nil, annotateParseError(err, name, src)
	}
	return p, nil
}

// WritePattern dispatches to the named format's writer.
func (r *Registry) WritePattern(p *pattern.Pattern, sink io.Writer, name string) error {
	f, ok := r.Lookup(name)
	if !ok {
		return UnsupportedFormatError("unknown format %q", name)
	}
	if !f.CanWrite() {
		return UnsupportedFormatError("format %q has no writer", name)
	}
	return f.Writer.Write(p, sink)
}

// ReadPatternContext is ReadPattern with a cancellation check before the
// read begins. The registry has no way to interrupt a read already in
// progress — cancelling drops straight to the same I/O error a closed or
// exhausted source would produce on its next call — so this only saves
// the call when the context is already done.
func (r *Registry) ReadPatternContext(ctx context.Context, src io.ReadSeeker, name string) (*pattern.Pattern, error) {
	if err := ctx.Err(); err != nil {
		return nil, IOError(err)
	}
	return r.ReadPattern(src, name)
}

// WritePatternContext is WritePattern with the same cancellation check.
func (r *Registry) WritePatternContext(ctx context.Context, p *pattern.Pattern, sink io.Writer, name string) error {
	if err := ctx.Err(); err != nil {
		return IOError(err)
	}
	return r.WritePattern(p, sink, name)
}

// annotateParseError attaches a debug content checksum to parse failures so
// two independent reports of "parse failed reading design.dst" from
// different files can be told apart without re-attaching the payload. Only
// Parse-coded errors are annotated; other error kinds pass through.
func annotateParseError(err error, format string, src io.ReadSeeker) error {
	code, ok := CodeOf(err)
	if !ok || code != CodeParse {
		return err
	}
	sum, sumErr := checksumRemaining(src)
	if sumErr != nil {
		return ParseError("%s: %s", format, err.Error())
	}
	return ParseError("%s: %s (content checksum %016x)", format, err.Error(), sum)
}

// checksumRemaining rewinds src to its start and hashes the whole input
// via seahash.Sum64, a fast non-cryptographic 64-bit hash well-suited to
// distinguishing malformed inputs in diagnostics without re-attaching the
// payload. The source position is left unspecified on return; callers only
// need the checksum, not further reads from src.
func checksumRemaining(src io.ReadSeeker) (uint64, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return 0, err
	}
	return seahash.Sum64(data), nil
}

// Default is the process-wide registry populated by codec packages'
// init functions via RegisterDefault.
var Default = NewRegistry()

// RegisterDefault registers f in the process-wide default registry. Codec
// packages call this from an init function so that importing a codec
// package for its side effect is sufficient to make it available through
// Default.
func RegisterDefault(f Format) {
	Default.Register(f)
}

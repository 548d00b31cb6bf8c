package pattern

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/fibercraft/stitchkit/embfmt"
)

// Thread describes an embroidery thread: its colour plus optional
// cataloguing metadata. Equality is by colour only (see Equal).
type Thread struct {
	Color uint32 // 0xRRGGBB

	Description   string
	CatalogNumber string
	Brand         string
	Chart         string
	Weight        string

	Attributes map[string]string
}

// NewThread returns a thread with the given colour and no metadata.
func NewThread(color uint32) Thread {
	return Thread{Color: color & 0xFFFFFF}
}

// ThreadFromRGB builds a thread from individual 8-bit components.
func ThreadFromRGB(r, g, b uint8) Thread {
	return NewThread(ColorRGB(r, g, b))
}

// ThreadFromString parses color (hex or named) and returns the thread.
func ThreadFromString(color string) (Thread, error) {
	c, err := ParseColorString(color)
	if err != nil {
		return Thread{}, err
	}
	return NewThread(c), nil
}

// Equal compares two threads by colour only, matching the source model's
// equality contract.
func (t Thread) Equal(other Thread) bool { return t.Color == other.Color }

func (t Thread) Red() uint8   { return uint8((t.Color >> 16) & 0xFF) }
func (t Thread) Green() uint8 { return uint8((t.Color >> 8) & 0xFF) }
func (t Thread) Blue() uint8  { return uint8(t.Color & 0xFF) }

// OpaqueColor ORs in a fully-opaque alpha channel.
func (t Thread) OpaqueColor() uint32 { return 0xFF000000 | t.Color }

// HexColor renders the colour as a lowercase "#rrggbb" string.
func (t Thread) HexColor() string {
	return fmt.Sprintf("#%02x%02x%02x", t.Red(), t.Green(), t.Blue())
}

// WithDescription, WithCatalogNumber, WithBrand, WithChart, WithWeight are
// chainable builder methods mirroring the source's builder API.
func (t Thread) WithDescription(desc string) Thread   { t.Description = desc; return t }
func (t Thread) WithCatalogNumber(cat string) Thread  { t.CatalogNumber = cat; return t }
func (t Thread) WithBrand(brand string) Thread        { t.Brand = brand; return t }
func (t Thread) WithChart(chart string) Thread        { t.Chart = chart; return t }
func (t Thread) WithWeight(weight string) Thread      { t.Weight = weight; return t }

// WithAttribute sets a custom attribute and returns the thread for
// chaining.
func (t Thread) WithAttribute(key, value string) Thread {
	if t.Attributes == nil {
		t.Attributes = make(map[string]string, 1)
	}
	t.Attributes[key] = value
	return t
}

func (t *Thread) GetAttribute(key string) (string, bool) {
	v, ok := t.Attributes[key]
	return v, ok
}

func (t *Thread) SetAttribute(key, value string) {
	if t.Attributes == nil {
		t.Attributes = make(map[string]string, 1)
	}
	t.Attributes[key] = value
}

func (t *Thread) RemoveAttribute(key string) {
	delete(t.Attributes, key)
}

func (t *Thread) HasAttribute(key string) bool {
	_, ok := t.Attributes[key]
	return ok
}

func (t *Thread) AttributeKeys() []string {
	keys := make([]string, 0, len(t.Attributes))
	for k := range t.Attributes {
		keys = append(keys, k)
	}
	return keys
}

// ColorDistance returns the perceptual distance (red-mean weighted) to
// another packed 0xRRGGBB colour.
func (t Thread) ColorDistance(other uint32) uint32 {
	return ColorDistance(t.Color, other)
}

// FindNearestInPalette returns the index of the closest-matching thread in
// palette by ColorDistance, or -1 if palette is empty.
func (t Thread) FindNearestInPalette(palette []Thread) int {
	return FindNearestColorIndex(t.Color, palette)
}

// FindNearestWithinThreshold is FindNearestInPalette gated by a maximum
// acceptable distance; it returns -1 if the closest match still exceeds
// threshold.
func (t Thread) FindNearestWithinThreshold(palette []Thread, threshold uint32) int {
	if len(palette) == 0 {
		return -1
	}
	closestIndex := 0
	closestDistance := uint32(math.MaxUint32)
	for i, p := range palette {
		d := ColorDistance(t.Color, p.Color)
		if d < closestDistance {
			closestDistance = d
			closestIndex = i
			if d == 0 {
				return closestIndex
			}
		}
	}
	if closestDistance <= threshold {
		return closestIndex
	}
	return -1
}

// String renders a diagnostic representation:
// "Thread(#rrggbb)[ - description][ [brand #catalog]|[brand]|[#catalog]]".
func (t Thread) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thread(%s)", t.HexColor())
	if t.Description != "" {
		fmt.Fprintf(&b, " - %s", t.Description)
	}
	switch {
	case t.Brand != "" && t.CatalogNumber != "":
		fmt.Fprintf(&b, " [%s #%s]", t.Brand, t.CatalogNumber)
	case t.Brand != "":
		fmt.Fprintf(&b, " [%s]", t.Brand)
	case t.CatalogNumber != "":
		fmt.Fprintf(&b, " [#%s]", t.CatalogNumber)
	}
	return b.String()
}

// ColorRGB packs 8-bit components into a 0xRRGGBB value.
func ColorRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// ParseColorHex parses a 3/4/6/8-digit hex colour string, with or without a
// leading '#'. Shorthand 3/4-digit forms are expanded by doubling each
// digit (matching the CSS shorthand convention).
func ParseColorHex(s string) (uint32, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 6, 8:
		v, err := strconv.ParseUint(h[:6], 16, 32)
		if err != nil {
			return 0, embfmt.InvalidColorError(s, "")
		}
		return uint32(v), nil
	case 3, 4:
		expanded := string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		v, err := strconv.ParseUint(expanded, 16, 32)
		if err != nil {
			return 0, embfmt.InvalidColorError(s, "")
		}
		return uint32(v), nil
	default:
		return 0, embfmt.InvalidColorError(s, "")
	}
}

func isHexDigits(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// ParseColorString parses color as hex (with or without '#') or as a named
// colour (case-insensitive). A bare 3- or 6-character run of hex digits is
// treated as hex even without a '#' prefix. On failure to match any of
// these, the nearest named colour (by Jaro-Winkler similarity) is offered
// as a suggestion in the returned InvalidColor error when it scores above
// a confidence floor.
func ParseColorString(color string) (uint32, error) {
	if color == "#" {
		return 0, embfmt.InvalidColorError(color, "")
	}
	if strings.HasPrefix(color, "#") {
		return ParseColorHex(color)
	}
	if (len(color) == 3 || len(color) == 6) && isHexDigits(color) {
		return ParseColorHex(color)
	}
	lower := strings.ToLower(color)
	if v, ok := namedColors[lower]; ok {
		return v, nil
	}
	return 0, embfmt.InvalidColorError(color, nearestColorName(lower))
}

// nearestColorName returns the named colour whose name is most similar to
// name by Jaro-Winkler string similarity, or "" if nothing scores above a
// reasonable confidence floor. This never errors: matchr.JaroWinkler is a
// pure numeric scoring function over two strings.
func nearestColorName(name string) string {
	const confidenceFloor = 0.75
	best := ""
	bestScore := 0.0
	for candidate := range namedColors {
		score := matchr.JaroWinkler(name, candidate)
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if bestScore < confidenceFloor {
		return ""
	}
	return best
}

// ColorDistance computes the red-mean-weighted squared distance between
// two packed 0xRRGGBB colours. Weighting the red and blue terms by the
// average red channel approximates human colour perception far better
// than a flat Euclidean RGB distance, at integer-only cost.
func ColorDistance(c1, c2 uint32) uint32 {
	r1 := int32((c1 >> 16) & 0xFF)
	g1 := int32((c1 >> 8) & 0xFF)
	b1 := int32(c1 & 0xFF)
	r2 := int32((c2 >> 16) & 0xFF)
	g2 := int32((c2 >> 8) & 0xFF)
	b2 := int32(c2 & 0xFF)
	return ColorDistanceComponents(r1, g1, b1, r2, g2, b2)
}

// ColorDistanceComponents is ColorDistance taking raw components directly.
func ColorDistanceComponents(r1, g1, b1, r2, g2, b2 int32) uint32 {
	redMean := (r1 + r2) / 2
	r := r1 - r2
	g := g1 - g2
	b := b1 - b2

	rComponent := ((512 + redMean) * r * r) >> 8
	gComponent := 4 * g * g
	bComponent := ((767 - redMean) * b * b) >> 8

	sum := int64(rComponent) + int64(gComponent) + int64(bComponent)
	if sum < 0 {
		return 0
	}
	if sum > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(sum)
}

// FindNearestColorIndex returns the index of the palette entry closest to
// color by ColorDistance, or -1 if palette is empty.
func FindNearestColorIndex(color uint32, palette []Thread) int {
	if len(palette) == 0 {
		return -1
	}
	closestIndex := 0
	closestDistance := uint32(math.MaxUint32)
	for i, t := range palette {
		d := ColorDistance(color, t.Color)
		if d < closestDistance {
			closestDistance = d
			closestIndex = i
			if d == 0 {
				break
			}
		}
	}
	return closestIndex
}

// Package huspalette holds the fixed 29-entry thread palette that the HUS
// (Husqvarna Viking) format references by table position rather than by
// colour value. A HUS header's per-colour index refers to this table's
// position, not to the catalog number printed alongside each entry.
package huspalette

import "github.com/fibercraft/stitchkit/pattern"

// Entry is one palette slot.
type Entry struct {
	Catalog     string
	Description string
	Color       uint32
}

// Table is the 29-entry HUS thread palette, in table-position order
// (index 0 is catalog "026", matching the reference implementation's
// get_thread_set ordering).
var Table = []Entry{
	{"026", "Black", 0x000000},
	{"005", "Blue", 0x0000E7},
	{"002", "Green", 0x00C600},
	{"014", "Red", 0xFF0000},
	{"008", "Purple", 0x840084},
	{"020", "Yellow", 0xFFFF00},
	{"024", "Grey", 0x848484},
	{"006", "Light Blue", 0x8484E7},
	{"003", "Light Green", 0x00FF84},
	{"017", "Orange", 0xFF7B31},
	{"011", "Pink", 0xFF8CA5},
	{"028", "Brown", 0x845200},
	{"022", "White", 0xFFFFFF},
	{"004", "Dark Blue", 0x000084},
	{"001", "Dark Green", 0x008400},
	{"013", "Dark Red", 0x7B0000},
	{"015", "Light Red", 0xFF6384},
	{"007", "Dark Purple", 0x522952},
	{"009", "Light Purple", 0xFF00FF},
	{"019", "Dark Yellow", 0xFFDE00},
	{"021", "Light Yellow", 0xFFFF9C},
	{"025", "Dark Grey", 0x525252},
	{"023", "Light Grey", 0xD6D6D6},
	{"016", "Dark Orange", 0xFF5208},
	{"018", "Light Orange", 0xFF9C5A},
	{"010", "Dark Pink", 0xFF52B5},
	{"012", "Light Pink", 0xFFC6DE},
	{"027", "Dark Brown", 0x523100},
	{"029", "Light Brown", 0xB5A584},
}

// MaxIndex is the largest valid index into Table.
var MaxIndex = len(Table) - 1

// Thread returns the Thread for a palette index. index must satisfy
// 0 <= index <= MaxIndex; callers validate bounds before calling (see
// encoding/hus's header parsing, which reports out-of-range indices as a
// typed Parse error).
func Thread(index int) pattern.Thread {
	e := Table[index]
	return pattern.NewThread(e.Color).
		WithDescription(e.Description).
		WithCatalogNumber(e.Catalog).
		WithBrand("Hus")
}

// Package registryformats registers every embroidery format named in
// the catalogue that has no codec body in this module: a name, its
// canonical extensions, and a one-line description, with no Reader or
// Writer. Dispatching a read or write through one of these yields a
// typed UnsupportedFormat error naming the missing direction, exactly
// as for any other unimplemented direction in the registry.
package registryformats

import "github.com/fibercraft/stitchkit/embfmt"

type entry struct {
	name, display string
	ext           []string
	desc          string
}

var entries = []entry{
	{"pes", "Brother/Babylock PES", []string{"pes"}, "Brother embroidery format"},
	{"pec", "Brother PEC", []string{"pec"}, "Brother embedded stitch block format"},
	{"jef", "Janome JEF", []string{"jef"}, "Janome embroidery format"},
	{"exp", "Melco Expanded", []string{"exp"}, "Melco/Bernina expanded stitch format"},
	{"vp3", "Husqvarna Viking VP3", []string{"vp3"}, "Husqvarna/Pfaff VP3 format"},
	{"xxx", "Singer XXX", []string{"xxx"}, "Singer/Compucon embroidery format"},
	{"u01", "Barudan U01", []string{"u01"}, "Barudan embroidery format"},
	{"tbf", "Tajima TBF", []string{"tbf"}, "Tajima barcode format"},
	{"col", "Embroidery color palette", []string{"col"}, "colour palette sidecar"},
	{"edr", "Embird color palette", []string{"edr"}, "Embird colour palette sidecar"},
	{"inf", "Tajima INF", []string{"inf"}, "Tajima colour/thread info sidecar"},
	{"csv", "Comma-separated stitch list", []string{"csv"}, "plain-text stitch list"},
	{"gcode", "G-code", []string{"gcode", "nc"}, "numerically-controlled machine code"},
	{"sew", "Janome SEW", []string{"sew"}, "Janome/Elna embroidery format"},
	{"shv", "Husqvarna SHV", []string{"shv"}, "Husqvarna shape format"},
	{"pcs", "Pfaff PCS", []string{"pcs"}, "Pfaff embroidery format"},
	{"pcd", "Pfaff PCD", []string{"pcd"}, "Pfaff embroidery format variant"},
	{"dat", "Barudan DAT", []string{"dat"}, "Barudan embroidery format"},
	{"dsb", "Tajima DSB", []string{"dsb"}, "Tajima DSB variant"},
	{"dsz", "Tajima DSZ", []string{"dsz"}, "Tajima DSZ variant"},
	{"emd", "Elna EMD", []string{"emd"}, "Elna embroidery format"},
	{"exy", "Eltac EXY", []string{"exy"}, "Eltac embroidery format"},
	{"fxy", "Fortron FXY", []string{"fxy"}, "Fortron embroidery format"},
	{"gt", "Gold Thread GT", []string{"gt"}, "Gold Thread embroidery format"},
	{"inb", "Inbro INB", []string{"inb"}, "Inbro embroidery format"},
	{"ksm", "Pfaff KSM", []string{"ksm"}, "Pfaff/Singer KSM format"},
	{"max", "Pfaff MAX", []string{"max"}, "Pfaff Home embroidery format"},
	{"mit", "Mitsubishi MIT", []string{"mit"}, "Mitsubishi embroidery format"},
	{"new", "Ameco NEW", []string{"new"}, "Ameco embroidery format"},
	{"pcm", "Pfaff PCM", []string{"pcm"}, "Pfaff embroidery format variant"},
	{"pcq", "Pfaff PCQ", []string{"pcq"}, "Pfaff embroidery format variant"},
	{"pmv", "Brother PMV movie", []string{"pmv"}, "Brother stitch-out movie format"},
	{"spx", "Super Cross SPX", []string{"spx"}, "Super Cross embroidery format"},
	{"stc", "Gunold STC", []string{"stc"}, "Gunold embroidery format"},
	{"stx", "Data Stitch STX", []string{"stx"}, "Data Stitch embroidery format"},
	{"tap", "Happy TAP", []string{"tap"}, "Happy embroidery format"},
	{"tyo100", "Toyota TYO100", []string{"100"}, "Toyota embroidery format variant"},
	{"tyo10o", "Toyota TYO10o", []string{"10o"}, "Toyota embroidery format variant"},
	{"zhs", "ZSK ZHS", []string{"zhs"}, "ZSK embroidery format"},
	{"zxy", "ZSK ZXY", []string{"zxy"}, "ZSK embroidery format variant"},
	{"svg", "Scalable Vector Graphics", []string{"svg"}, "vector preview, write-only"},
	{"txt", "Plain-text stitch dump", []string{"txt"}, "human-readable stitch dump, write-only"},
	{"png", "Portable Network Graphics", []string{"png"}, "rendered preview, write-only"},
}

func init() {
	for _, e := range entries {
		embfmt.RegisterDefault(embfmt.Format{
			Name:        e.name,
			DisplayName: e.display,
			Extensions:  e.ext,
			Description: e.desc,
		})
	}
}

package pattern

// namedColors is the X11/CSS/SVG named-colour table used by
// ParseColorString when a colour string matches neither hex syntax nor
// a bare run of hex digits.
var namedColors = map[string]uint32{
	"aliceblue":            ColorRGB(240, 248, 255),
	"antiquewhite":         ColorRGB(250, 235, 215),
	"aqua":                 ColorRGB(0, 255, 255),
	"aquamarine":           ColorRGB(127, 255, 212),
	"azure":                ColorRGB(240, 255, 255),
	"beige":                ColorRGB(245, 245, 220),
	"bisque":               ColorRGB(255, 228, 196),
	"black":                ColorRGB(0, 0, 0),
	"blanchedalmond":       ColorRGB(255, 235, 205),
	"blue":                 ColorRGB(0, 0, 255),
	"blueviolet":           ColorRGB(138, 43, 226),
	"brown":                ColorRGB(165, 42, 42),
	"burlywood":            ColorRGB(222, 184, 135),
	"cadetblue":            ColorRGB(95, 158, 160),
	"chartreuse":           ColorRGB(127, 255, 0),
	"chocolate":            ColorRGB(210, 105, 30),
	"coral":                ColorRGB(255, 127, 80),
	"cornflowerblue":       ColorRGB(100, 149, 237),
	"cornsilk":             ColorRGB(255, 248, 220),
	"crimson":              ColorRGB(220, 20, 60),
	"cyan":                 ColorRGB(0, 255, 255),
	"darkblue":             ColorRGB(0, 0, 139),
	"darkcyan":             ColorRGB(0, 139, 139),
	"darkgoldenrod":        ColorRGB(184, 134, 11),
	"darkgray":             ColorRGB(169, 169, 169),
	"darkgreen":            ColorRGB(0, 100, 0),
	"darkgrey":             ColorRGB(169, 169, 169),
	"darkkhaki":            ColorRGB(189, 183, 107),
	"darkmagenta":          ColorRGB(139, 0, 139),
	"darkolivegreen":       ColorRGB(85, 107, 47),
	"darkorange":           ColorRGB(255, 140, 0),
	"darkorchid":           ColorRGB(153, 50, 204),
	"darkred":              ColorRGB(139, 0, 0),
	"darksalmon":           ColorRGB(233, 150, 122),
	"darkseagreen":         ColorRGB(143, 188, 143),
	"darkslateblue":        ColorRGB(72, 61, 139),
	"darkslategray":        ColorRGB(47, 79, 79),
	"darkslategrey":        ColorRGB(47, 79, 79),
	"darkturquoise":        ColorRGB(0, 206, 209),
	"darkviolet":           ColorRGB(148, 0, 211),
	"deeppink":             ColorRGB(255, 20, 147),
	"deepskyblue":          ColorRGB(0, 191, 255),
	"dimgray":              ColorRGB(105, 105, 105),
	"dimgrey":              ColorRGB(105, 105, 105),
	"dodgerblue":           ColorRGB(30, 144, 255),
	"firebrick":            ColorRGB(178, 34, 34),
	"floralwhite":          ColorRGB(255, 250, 240),
	"forestgreen":          ColorRGB(34, 139, 34),
	"fuchsia":              ColorRGB(255, 0, 255),
	"gainsboro":            ColorRGB(220, 220, 220),
	"ghostwhite":           ColorRGB(248, 248, 255),
	"gold":                 ColorRGB(255, 215, 0),
	"goldenrod":            ColorRGB(218, 165, 32),
	"gray":                 ColorRGB(128, 128, 128),
	"grey":                 ColorRGB(128, 128, 128),
	"green":                ColorRGB(0, 128, 0),
	"greenyellow":          ColorRGB(173, 255, 47),
	"honeydew":             ColorRGB(240, 255, 240),
	"hotpink":              ColorRGB(255, 105, 180),
	"indianred":            ColorRGB(205, 92, 92),
	"indigo":               ColorRGB(75, 0, 130),
	"ivory":                ColorRGB(255, 255, 240),
	"khaki":                ColorRGB(240, 230, 140),
	"lavender":             ColorRGB(230, 230, 250),
	"lavenderblush":        ColorRGB(255, 240, 245),
	"lawngreen":            ColorRGB(124, 252, 0),
	"lemonchiffon":         ColorRGB(255, 250, 205),
	"lightblue":            ColorRGB(173, 216, 230),
	"lightcoral":           ColorRGB(240, 128, 128),
	"lightcyan":            ColorRGB(224, 255, 255),
	"lightgoldenrodyellow": ColorRGB(250, 250, 210),
	"lightgray":            ColorRGB(211, 211, 211),
	"lightgreen":           ColorRGB(144, 238, 144),
	"lightgrey":            ColorRGB(211, 211, 211),
	"lightpink":            ColorRGB(255, 182, 193),
	"lightsalmon":          ColorRGB(255, 160, 122),
	"lightseagreen":        ColorRGB(32, 178, 170),
	"lightskyblue":         ColorRGB(135, 206, 250),
	"lightslategray":       ColorRGB(119, 136, 153),
	"lightslategrey":       ColorRGB(119, 136, 153),
	"lightsteelblue":       ColorRGB(176, 196, 222),
	"lightyellow":          ColorRGB(255, 255, 224),
	"lime":                 ColorRGB(0, 255, 0),
	"limegreen":            ColorRGB(50, 205, 50),
	"linen":                ColorRGB(250, 240, 230),
	"magenta":              ColorRGB(255, 0, 255),
	"maroon":               ColorRGB(128, 0, 0),
	"mediumaquamarine":     ColorRGB(102, 205, 170),
	"mediumblue":           ColorRGB(0, 0, 205),
	"mediumorchid":         ColorRGB(186, 85, 211),
	"mediumpurple":         ColorRGB(147, 112, 219),
	"mediumseagreen":       ColorRGB(60, 179, 113),
	"mediumslateblue":      ColorRGB(123, 104, 238),
	"mediumspringgreen":    ColorRGB(0, 250, 154),
	"mediumturquoise":      ColorRGB(72, 209, 204),
	"mediumvioletred":      ColorRGB(199, 21, 133),
	"midnightblue":         ColorRGB(25, 25, 112),
	"mintcream":            ColorRGB(245, 255, 250),
	"mistyrose":            ColorRGB(255, 228, 225),
	"moccasin":             ColorRGB(255, 228, 181),
	"navajowhite":          ColorRGB(255, 222, 173),
	"navy":                 ColorRGB(0, 0, 128),
	"oldlace":              ColorRGB(253, 245, 230),
	"olive":                ColorRGB(128, 128, 0),
	"olivedrab":            ColorRGB(107, 142, 35),
	"orange":               ColorRGB(255, 165, 0),
	"orangered":            ColorRGB(255, 69, 0),
	"orchid":               ColorRGB(218, 112, 214),
	"palegoldenrod":        ColorRGB(238, 232, 170),
	"palegreen":            ColorRGB(152, 251, 152),
	"paleturquoise":        ColorRGB(175, 238, 238),
	"palevioletred":        ColorRGB(219, 112, 147),
	"papayawhip":           ColorRGB(255, 239, 213),
	"peachpuff":            ColorRGB(255, 218, 185),
	"peru":                 ColorRGB(205, 133, 63),
	"pink":                 ColorRGB(255, 192, 203),
	"plum":                 ColorRGB(221, 160, 221),
	"powderblue":           ColorRGB(176, 224, 230),
	"purple":               ColorRGB(128, 0, 128),
	"red":                  ColorRGB(255, 0, 0),
	"rosybrown":            ColorRGB(188, 143, 143),
	"royalblue":            ColorRGB(65, 105, 225),
	"saddlebrown":          ColorRGB(139, 69, 19),
	"salmon":               ColorRGB(250, 128, 114),
	"sandybrown":           ColorRGB(244, 164, 96),
	"seagreen":             ColorRGB(46, 139, 87),
	"seashell":             ColorRGB(255, 245, 238),
	"sienna":               ColorRGB(160, 82, 45),
	"silver":               ColorRGB(192, 192, 192),
	"skyblue":              ColorRGB(135, 206, 235),
	"slateblue":            ColorRGB(106, 90, 205),
	"slategray":            ColorRGB(112, 128, 144),
	"slategrey":            ColorRGB(112, 128, 144),
	"snow":                 ColorRGB(255, 250, 250),
	"springgreen":          ColorRGB(0, 255, 127),
	"steelblue":            ColorRGB(70, 130, 180),
	"tan":                  ColorRGB(210, 180, 140),
	"teal":                 ColorRGB(0, 128, 128),
	"thistle":              ColorRGB(216, 191, 216),
	"tomato":               ColorRGB(255, 99, 71),
	"turquoise":            ColorRGB(64, 224, 208),
	"violet":               ColorRGB(238, 130, 238),
	"wheat":                ColorRGB(245, 222, 179),
	"white":                ColorRGB(255, 255, 255),
	"whitesmoke":           ColorRGB(245, 245, 245),
	"yellow":               ColorRGB(255, 255, 0),
	"yellowgreen":          ColorRGB(154, 205, 50),
}

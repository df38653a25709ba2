package svg

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorKind classifies a parsed colour value
type ColorKind int

const (
	// ColorRGB is a concrete colour (hex, rgb(), hsl() or a named colour)
	ColorRGB ColorKind = iota
	// ColorNone is the "none" keyword
	ColorNone
	// ColorCurrent is the "currentColor" keyword
	ColorCurrent
)

// Color is a parsed colour value. R, G and B are only meaningful for
// colours given as hex, rgb() or by name; Alpha is always set.
type Color struct {
	Kind  ColorKind
	R     uint8
	G     uint8
	B     uint8
	Alpha float64
}

// String renders the colour in CSS syntax
func (c Color) String() string {
	switch c.Kind {
	case ColorNone:
		return "none"
	case ColorCurrent:
		return "currentColor"
	}
	if c.Alpha < 1 {
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(c.Alpha, 'f', -1, 64))
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// IsEmptyColor reports whether c paints nothing: "none" or fully transparent
func IsEmptyColor(c Color) bool {
	return c.Kind == ColorNone || (c.Kind == ColorRGB && c.Alpha == 0)
}

// ParseColor parses a CSS/SVG paint value. ok is false for values that are
// not plain colours, such as url(#gradient), inherit or context-fill.
func ParseColor(value string) (Color, bool) {
	s := strings.ToLower(strings.TrimSpace(value))
	switch s {
	case "":
		return Color{}, false
	case "none":
		return Color{Kind: ColorNone}, true
	case "transparent":
		return Color{Kind: ColorRGB, Alpha: 0}, true
	case "currentcolor":
		return Color{Kind: ColorCurrent, Alpha: 1}, true
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}

	if open := strings.IndexByte(s, '('); open > 0 && strings.HasSuffix(s, ")") {
		fn := s[:open]
		args := splitColorArgs(s[open+1 : len(s)-1])
		switch fn {
		case "rgb", "rgba":
			return parseRGBFunc(args)
		case "hsl", "hsla":
			return parseHSLFunc(args)
		}
		return Color{}, false
	}

	if rgb, ok := namedColors[s]; ok {
		return Color{Kind: ColorRGB, R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), Alpha: 1}, true
	}
	return Color{}, false
}

func parseHex(h string) (Color, bool) {
	for _, r := range h {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return Color{}, false
		}
	}

	expand := func(c byte) uint8 {
		v, _ := strconv.ParseUint(string([]byte{c, c}), 16, 8)
		return uint8(v)
	}
	pair := func(s string) uint8 {
		v, _ := strconv.ParseUint(s, 16, 8)
		return uint8(v)
	}

	c := Color{Kind: ColorRGB, Alpha: 1}
	switch len(h) {
	case 3, 4:
		c.R, c.G, c.B = expand(h[0]), expand(h[1]), expand(h[2])
		if len(h) == 4 {
			c.Alpha = float64(expand(h[3])) / 255
		}
	case 6, 8:
		c.R, c.G, c.B = pair(h[0:2]), pair(h[2:4]), pair(h[4:6])
		if len(h) == 8 {
			c.Alpha = float64(pair(h[6:8])) / 255
		}
	default:
		return Color{}, false
	}
	return c, true
}

// splitColorArgs accepts both the legacy comma syntax and the
// space-separated syntax with an optional "/ alpha" suffix
func splitColorArgs(s string) []string {
	s = strings.ReplaceAll(s, "/", " ")
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func parseChannel(s string) (uint8, bool) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return uint8(clamp(v, 0, 100) * 255 / 100), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return uint8(clamp(v, 0, 255)), true
}

func parseAlpha(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clamp(v/100, 0, 1), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clamp(v, 0, 1), true
}

func parseRGBFunc(args []string) (Color, bool) {
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}
	c := Color{Kind: ColorRGB, Alpha: 1}
	var ok bool
	if c.R, ok = parseChannel(args[0]); !ok {
		return Color{}, false
	}
	if c.G, ok = parseChannel(args[1]); !ok {
		return Color{}, false
	}
	if c.B, ok = parseChannel(args[2]); !ok {
		return Color{}, false
	}
	if len(args) == 4 {
		if c.Alpha, ok = parseAlpha(args[3]); !ok {
			return Color{}, false
		}
	}
	return c, true
}

func parseHSLFunc(args []string) (Color, bool) {
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return Color{}, false
	}
	s, err := strconv.ParseFloat(strings.TrimSuffix(args[1], "%"), 64)
	if err != nil {
		return Color{}, false
	}
	l, err := strconv.ParseFloat(strings.TrimSuffix(args[2], "%"), 64)
	if err != nil {
		return Color{}, false
	}

	c := hslToRGB(h, clamp(s, 0, 100)/100, clamp(l, 0, 100)/100)
	if len(args) == 4 {
		var ok bool
		if c.Alpha, ok = parseAlpha(args[3]); !ok {
			return Color{}, false
		}
	}
	return c, true
}

func hslToRGB(h, s, l float64) Color {
	h = h - 360*float64(int(h/360))
	if h < 0 {
		h += 360
	}
	hue := func(p, q, t float64) float64 {
		switch {
		case t < 0:
			t++
		case t > 1:
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 0.5:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		}
		return p
	}

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		q := l * (1 + s)
		if l >= 0.5 {
			q = l + s - l*s
		}
		p := 2*l - q
		hk := h / 360
		r = hue(p, q, hk+1.0/3)
		g = hue(p, q, hk)
		b = hue(p, q, hk-1.0/3)
	}
	return Color{Kind: ColorRGB, R: uint8(r*255 + 0.5), G: uint8(g*255 + 0.5), B: uint8(b*255 + 0.5), Alpha: 1}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// namedColors are the CSS Color Module Level 4 keywords
var namedColors = map[string]uint32{
	"aliceblue":            0xf0f8ff,
	"antiquewhite":         0xfaebd7,
	"aqua":                 0x00ffff,
	"aquamarine":           0x7fffd4,
	"azure":                0xf0ffff,
	"beige":                0xf5f5dc,
	"bisque":               0xffe4c4,
	"black":                0x000000,
	"blanchedalmond":       0xffebcd,
	"blue":                 0x0000ff,
	"blueviolet":           0x8a2be2,
	"brown":                0xa52a2a,
	"burlywood":            0xdeb887,
	"cadetblue":            0x5f9ea0,
	"chartreuse":           0x7fff00,
	"chocolate":            0xd2691e,
	"coral":                0xff7f50,
	"cornflowerblue":       0x6495ed,
	"cornsilk":             0xfff8dc,
	"crimson":              0xdc143c,
	"cyan":                 0x00ffff,
	"darkblue":             0x00008b,
	"darkcyan":             0x008b8b,
	"darkgoldenrod":        0xb8860b,
	"darkgray":             0xa9a9a9,
	"darkgreen":            0x006400,
	"darkgrey":             0xa9a9a9,
	"darkkhaki":            0xbdb76b,
	"darkmagenta":          0x8b008b,
	"darkolivegreen":       0x556b2f,
	"darkorange":           0xff8c00,
	"darkorchid":           0x9932cc,
	"darkred":              0x8b0000,
	"darksalmon":           0xe9967a,
	"darkseagreen":         0x8fbc8f,
	"darkslateblue":        0x483d8b,
	"darkslategray":        0x2f4f4f,
	"darkslategrey":        0x2f4f4f,
	"darkturquoise":        0x00ced1,
	"darkviolet":           0x9400d3,
	"deeppink":             0xff1493,
	"deepskyblue":          0x00bfff,
	"dimgray":              0x696969,
	"dimgrey":              0x696969,
	"dodgerblue":           0x1e90ff,
	"firebrick":            0xb22222,
	"floralwhite":          0xfffaf0,
	"forestgreen":          0x228b22,
	"fuchsia":              0xff00ff,
	"gainsboro":            0xdcdcdc,
	"ghostwhite":           0xf8f8ff,
	"gold":                 0xffd700,
	"goldenrod":            0xdaa520,
	"gray":                 0x808080,
	"green":                0x008000,
	"greenyellow":          0xadff2f,
	"grey":                 0x808080,
	"honeydew":             0xf0fff0,
	"hotpink":              0xff69b4,
	"indianred":            0xcd5c5c,
	"indigo":               0x4b0082,
	"ivory":                0xfffff0,
	"khaki":                0xf0e68c,
	"lavender":             0xe6e6fa,
	"lavenderblush":        0xfff0f5,
	"lawngreen":            0x7cfc00,
	"lemonchiffon":         0xfffacd,
	"lightblue":            0xadd8e6,
	"lightcoral":           0xf08080,
	"lightcyan":            0xe0ffff,
	"lightgoldenrodyellow": 0xfafad2,
	"lightgray":            0xd3d3d3,
	"lightgreen":           0x90ee90,
	"lightgrey":            0xd3d3d3,
	"lightpink":            0xffb6c1,
	"lightsalmon":          0xffa07a,
	"lightseagreen":        0x20b2aa,
	"lightskyblue":         0x87cefa,
	"lightslategray":       0x778899,
	"lightslategrey":       0x778899,
	"lightsteelblue":       0xb0c4de,
	"lightyellow":          0xffffe0,
	"lime":                 0x00ff00,
	"limegreen":            0x32cd32,
	"linen":                0xfaf0e6,
	"magenta":              0xff00ff,
	"maroon":               0x800000,
	"mediumaquamarine":     0x66cdaa,
	"mediumblue":           0x0000cd,
	"mediumorchid":         0xba55d3,
	"mediumpurple":         0x9370db,
	"mediumseagreen":       0x3cb371,
	"mediumslateblue":      0x7b68ee,
	"mediumspringgreen":    0x00fa9a,
	"mediumturquoise":      0x48d1cc,
	"mediumvioletred":      0xc71585,
	"midnightblue":         0x191970,
	"mintcream":            0xf5fffa,
	"mistyrose":            0xffe4e1,
	"moccasin":             0xffe4b5,
	"navajowhite":          0xffdead,
	"navy":                 0x000080,
	"oldlace":              0xfdf5e6,
	"olive":                0x808000,
	"olivedrab":            0x6b8e23,
	"orange":               0xffa500,
	"orangered":            0xff4500,
	"orchid":               0xda70d6,
	"palegoldenrod":        0xeee8aa,
	"palegreen":            0x98fb98,
	"paleturquoise":        0xafeeee,
	"palevioletred":        0xdb7093,
	"papayawhip":           0xffefd5,
	"peachpuff":            0xffdab9,
	"peru":                 0xcd853f,
	"pink":                 0xffc0cb,
	"plum":                 0xdda0dd,
	"powderblue":           0xb0e0e6,
	"purple":               0x800080,
	"rebeccapurple":        0x663399,
	"red":                  0xff0000,
	"rosybrown":            0xbc8f8f,
	"royalblue":            0x4169e1,
	"saddlebrown":          0x8b4513,
	"salmon":               0xfa8072,
	"sandybrown":           0xf4a460,
	"seagreen":             0x2e8b57,
	"seashell":             0xfff5ee,
	"sienna":               0xa0522d,
	"silver":               0xc0c0c0,
	"skyblue":              0x87ceeb,
	"slateblue":            0x6a5acd,
	"slategray":            0x708090,
	"slategrey":            0x708090,
	"snow":                 0xfffafa,
	"springgreen":          0x00ff7f,
	"steelblue":            0x4682b4,
	"tan":                  0xd2b48c,
	"teal":                 0x008080,
	"thistle":              0xd8bfd8,
	"tomato":               0xff6347,
	"turquoise":            0x40e0d0,
	"violet":               0xee82ee,
	"wheat":                0xf5deb3,
	"white":                0xffffff,
	"whitesmoke":           0xf5f5f5,
	"yellow":               0xffff00,
	"yellowgreen":          0x9acd32,
}

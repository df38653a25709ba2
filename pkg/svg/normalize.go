package svg

import (
	"regexp"
	"strings"
)

// CurrentColor is the default replacement for concrete colours
const CurrentColor = "currentColor"

// colorAttrs are the presentation attributes that carry a paint or colour
var colorAttrs = map[string]bool{
	"fill":           true,
	"stroke":         true,
	"stop-color":     true,
	"flood-color":    true,
	"lighting-color": true,
	"color":          true,
}

// shapeElements render with a black fill unless told otherwise
var shapeElements = map[string]bool{
	"path":     true,
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"line":     true,
	"polyline": true,
	"polygon":  true,
	"text":     true,
}

// styleDeclPattern finds colour declarations inside <style> text
var styleDeclPattern = regexp.MustCompile(`(^|[\s;{])(fill|stroke|stop-color|flood-color|lighting-color|color)(\s*:\s*)([^;}!]+)`)

// ColorCallback decides the replacement for a colour value. attr is the
// attribute or CSS property name, value the original text and ok reports
// whether value parsed as a colour.
type ColorCallback func(attr, value string, color Color, ok bool) string

// ColorOptions configures NormalizeColors
type ColorOptions struct {
	// Replacement is written in place of every concrete colour (default: currentColor)
	Replacement string

	// DefaultColor, when set, is applied as fill to shapes that have no fill
	// on themselves or any ancestor
	DefaultColor string

	// Callback overrides the replacement decision
	Callback ColorCallback
}

// ColorReport counts what NormalizeColors did
type ColorReport struct {
	Replaced  int
	Preserved int
	Defaulted int
}

func (o ColorOptions) replacement() string {
	if o.Replacement == "" {
		return CurrentColor
	}
	return o.Replacement
}

func (o ColorOptions) decide(attr, value string) string {
	c, ok := ParseColor(value)
	if o.Callback != nil {
		return o.Callback(attr, value, c, ok)
	}
	if !ok || IsEmptyColor(c) {
		return value
	}
	return o.replacement()
}

// NormalizeColors rewrites every concrete colour in doc to the replacement
// colour. Values that are not colours (gradients, inherit) and empty
// colours (none, transparent) are kept as they are.
func NormalizeColors(doc *Document, opts ColorOptions) ColorReport {
	var report ColorReport

	rewrite := func(attr, value string) string {
		trimmed := strings.TrimSpace(value)
		out := opts.decide(attr, trimmed)
		if out != trimmed {
			report.Replaced++
			return out
		}
		report.Preserved++
		return value
	}

	doc.Root.Walk(func(n *Node) bool {
		for i := range n.Attrs {
			a := &n.Attrs[i]
			switch {
			case colorAttrs[a.Name]:
				a.Value = rewrite(a.Name, a.Value)
			case a.Name == "style":
				a.Value = rewriteInlineStyle(a.Value, rewrite)
			}
		}
		if localName(n.Name) == "style" {
			for _, c := range n.Children {
				if c.Kind == TextNode || c.Kind == RawNode {
					c.Data = rewriteStyleSheet(c.Data, rewrite)
				}
			}
			return false
		}
		return true
	})

	if opts.DefaultColor != "" {
		report.Defaulted = applyDefaultFill(doc.Root, opts.DefaultColor, false)
	}

	return report
}

func rewriteInlineStyle(style string, rewrite func(attr, value string) string) string {
	decls := strings.Split(style, ";")
	for i, decl := range decls {
		prop, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(prop))
		if !colorAttrs[name] {
			continue
		}
		suffix := ""
		if idx := strings.Index(value, "!"); idx >= 0 {
			value, suffix = value[:idx], value[idx:]
		}
		decls[i] = prop + ":" + rewrite(name, value) + suffix
	}
	return strings.Join(decls, ";")
}

func rewriteStyleSheet(css string, rewrite func(attr, value string) string) string {
	return styleDeclPattern.ReplaceAllStringFunc(css, func(m string) string {
		parts := styleDeclPattern.FindStringSubmatch(m)
		return parts[1] + parts[2] + parts[3] + rewrite(parts[2], parts[4])
	})
}

// hasFill reports whether an element sets fill by attribute or inline style
func hasFill(n *Node) bool {
	if _, ok := n.Attr("fill"); ok {
		return true
	}
	style, ok := n.Attr("style")
	if !ok {
		return false
	}
	for _, decl := range strings.Split(style, ";") {
		prop, _, found := strings.Cut(decl, ":")
		if found && strings.EqualFold(strings.TrimSpace(prop), "fill") {
			return true
		}
	}
	return false
}

func applyDefaultFill(n *Node, color string, inherited bool) int {
	if n.Kind != ElementNode {
		return 0
	}
	switch localName(n.Name) {
	case "defs", "clipPath", "mask", "style", "symbol", "pattern", "marker":
		return 0
	}

	count := 0
	filled := inherited || hasFill(n)
	if !filled && shapeElements[localName(n.Name)] {
		n.SetAttr("fill", color)
		filled = true
		count++
	}
	for _, c := range n.Children {
		count += applyDefaultFill(c, color, filled)
	}
	return count
}

// RestoreReplacement rewrites colour values that match the replacement
// colour ignoring case back to its exact spelling. The minifier lowercases
// attribute colours.
func RestoreReplacement(doc *Document, opts ColorOptions) int {
	want := opts.replacement()
	count := 0

	restore := func(attr, value string) string {
		trimmed := strings.TrimSpace(value)
		if trimmed != want && strings.EqualFold(trimmed, want) {
			count++
			return want
		}
		return value
	}

	doc.Root.Walk(func(n *Node) bool {
		for i := range n.Attrs {
			a := &n.Attrs[i]
			switch {
			case colorAttrs[a.Name]:
				a.Value = restore(a.Name, a.Value)
			case a.Name == "style":
				a.Value = rewriteInlineStyle(a.Value, restore)
			}
		}
		if localName(n.Name) == "style" {
			for _, c := range n.Children {
				if c.Kind == TextNode || c.Kind == RawNode {
					c.Data = rewriteStyleSheet(c.Data, restore)
				}
			}
			return false
		}
		return true
	})
	return count
}

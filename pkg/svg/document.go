// Package svg implements the SVG transforms applied to every imported icon:
// parsing into a small element tree, colour normalisation, optimisation
// and path de-optimisation.
package svg

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// NodeKind identifies the type of a Node
type NodeKind int

const (
	// ElementNode is an XML element with attributes and children
	ElementNode NodeKind = iota
	// TextNode is character data, written back verbatim
	TextNode
	// RawNode is a comment or CDATA section, written back verbatim
	RawNode
)

// Attr is a single element attribute. Value is stored without quotes.
type Attr struct {
	Name  string
	Value string
}

// Node is an element, text or raw node of a Document
type Node struct {
	Kind     NodeKind
	Name     string
	Attrs    []Attr
	Children []*Node
	Data     string
}

// Document is a parsed SVG image. Only the root <svg> element is kept;
// the XML declaration, doctype and anything outside the root are dropped.
type Document struct {
	Root *Node
}

// Parse parses SVG markup into a Document
func Parse(src []byte) (*Document, error) {
	l := xml.NewLexer(parse.NewInputBytes(src))

	var (
		root  *Node
		open  *Node // element whose start tag is being read
		stack []*Node
	)

	appendChild := func(n *Node) {
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
	}

	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			if root == nil {
				return nil, fmt.Errorf("%w: no root element", ErrMalformed)
			}
			if len(stack) > 0 {
				return nil, fmt.Errorf("%w: unclosed element <%s>", ErrMalformed, stack[len(stack)-1].Name)
			}
			if open != nil {
				return nil, fmt.Errorf("%w: unterminated start tag <%s", ErrMalformed, open.Name)
			}
			if localName(root.Name) != "svg" {
				return nil, fmt.Errorf("%w: root element is <%s>", ErrNotSVG, root.Name)
			}
			return &Document{Root: root}, nil

		case xml.StartTagToken:
			n := &Node{Kind: ElementNode, Name: tagName(l.Text(), data, 1)}
			switch {
			case len(stack) > 0:
				appendChild(n)
			case root == nil:
				root = n
			default:
				return nil, fmt.Errorf("%w: multiple root elements", ErrMalformed)
			}
			open = n

		case xml.StartTagPIToken:
			open = nil

		case xml.AttributeToken:
			if open != nil {
				open.Attrs = append(open.Attrs, attribute(l.Text(), l.AttrVal(), data))
			}

		case xml.StartTagCloseToken:
			if open != nil {
				stack = append(stack, open)
				open = nil
			}

		case xml.StartTagCloseVoidToken:
			open = nil

		case xml.EndTagToken:
			name := tagName(nil, data, 2)
			if len(stack) == 0 || stack[len(stack)-1].Name != name {
				return nil, fmt.Errorf("%w: unexpected </%s>", ErrMalformed, name)
			}
			stack = stack[:len(stack)-1]

		case xml.TextToken:
			if len(stack) > 0 {
				appendChild(&Node{Kind: TextNode, Data: string(data)})
			}

		case xml.CDATAToken, xml.CommentToken:
			if len(stack) > 0 {
				appendChild(&Node{Kind: RawNode, Data: string(data)})
			}
		}
	}
}

// ParseString is Parse for string input
func ParseString(src string) (*Document, error) {
	return Parse([]byte(src))
}

// tagName returns the element name of a start or end tag token.
// skip is the length of the "<" or "</" opener inside data.
func tagName(text, data []byte, skip int) string {
	if len(text) > 0 {
		return string(text)
	}
	if len(data) < skip {
		return ""
	}
	name := bytes.TrimRight(data[skip:], "> \t\r\n")
	return string(bytes.TrimSpace(name))
}

// attribute builds an Attr from the lexer's name and value, falling back
// to splitting the raw token on '='
func attribute(name, val, data []byte) Attr {
	name = bytes.TrimSpace(name)
	if len(name) == 0 || val == nil {
		rawName, rawVal, _ := bytes.Cut(bytes.TrimSpace(data), []byte("="))
		if len(name) == 0 {
			name = bytes.TrimSpace(rawName)
		}
		if val == nil {
			val = bytes.TrimSpace(rawVal)
		}
	}
	return Attr{Name: string(name), Value: unquote(val)}
}

func unquote(val []byte) string {
	if len(val) >= 2 && (val[0] == '"' || val[0] == '\'') && val[len(val)-1] == val[0] {
		return string(val[1 : len(val)-1])
	}
	return string(val)
}

// localName strips an XML namespace prefix
func localName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Attr returns the value of an attribute
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, appending it when absent
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes an attribute
func (n *Node) RemoveAttr(name string) {
	attrs := n.Attrs[:0]
	for _, a := range n.Attrs {
		if a.Name != name {
			attrs = append(attrs, a)
		}
	}
	n.Attrs = attrs
}

// Walk visits n and its element descendants depth-first.
// Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n.Kind != ElementNode {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func (n *Node) clone() *Node {
	c := &Node{Kind: n.Kind, Name: n.Name, Data: n.Data}
	if n.Attrs != nil {
		c.Attrs = append([]Attr(nil), n.Attrs...)
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.clone())
	}
	return c
}

func (n *Node) write(b *strings.Builder) {
	switch n.Kind {
	case TextNode, RawNode:
		b.WriteString(n.Data)
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Name)
		for _, a := range n.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(strings.ReplaceAll(a.Value, `"`, "&quot;"))
			b.WriteByte('"')
		}
		if len(n.Children) == 0 {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for _, c := range n.Children {
			c.write(b)
		}
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteByte('>')
	}
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	return &Document{Root: d.Root.clone()}
}

// String serialises the document
func (d *Document) String() string {
	var b strings.Builder
	d.Root.write(&b)
	return b.String()
}

// Body returns the markup inside the root element
func (d *Document) Body() string {
	var b strings.Builder
	for _, c := range d.Root.Children {
		c.write(&b)
	}
	return b.String()
}

// rootPresentationAttrs are root attributes inherited by the drawing.
// IconBody carries them onto a wrapping group.
var rootPresentationAttrs = map[string]bool{
	"fill":              true,
	"fill-opacity":      true,
	"fill-rule":         true,
	"stroke":            true,
	"stroke-width":      true,
	"stroke-linecap":    true,
	"stroke-linejoin":   true,
	"stroke-miterlimit": true,
	"stroke-dasharray":  true,
	"stroke-dashoffset": true,
	"stroke-opacity":    true,
	"clip-rule":         true,
	"color":             true,
	"opacity":           true,
	"shape-rendering":   true,
	"vector-effect":     true,
	"font-family":       true,
	"font-size":         true,
	"font-weight":       true,
	"text-anchor":       true,
}

// IconBody is Body wrapped in a <g> holding the root's presentation
// attributes. Without such attributes it equals Body.
func (d *Document) IconBody() string {
	var attrs []Attr
	for _, a := range d.Root.Attrs {
		if rootPresentationAttrs[a.Name] {
			attrs = append(attrs, a)
		}
	}
	if len(attrs) == 0 {
		return d.Body()
	}

	var b strings.Builder
	g := &Node{Kind: ElementNode, Name: "g", Attrs: attrs, Children: d.Root.Children}
	g.write(&b)
	return b.String()
}

// Box is the icon viewport
type Box struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// DefaultBox is used when an icon declares neither viewBox nor size
var DefaultBox = Box{Width: 16, Height: 16}

// ViewBox returns the viewport from the viewBox attribute,
// falling back to width/height and then to DefaultBox.
func (d *Document) ViewBox() Box {
	if vb, ok := d.Root.Attr("viewBox"); ok {
		if nums, ok := parseNumbers(vb); ok && len(nums) == 4 && nums[2] > 0 && nums[3] > 0 {
			return Box{Left: nums[0], Top: nums[1], Width: nums[2], Height: nums[3]}
		}
	}

	box := DefaultBox
	if w, ok := d.Root.Attr("width"); ok {
		if v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(w), "px"), 64); err == nil && v > 0 {
			box.Width = v
		}
	}
	if h, ok := d.Root.Attr("height"); ok {
		if v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(h), "px"), 64); err == nil && v > 0 {
			box.Height = v
		}
	}
	return box
}

func parseNumbers(s string) ([]float64, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		nums = append(nums, v)
	}
	return nums, true
}

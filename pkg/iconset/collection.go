package iconset

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ideamans/iconcollect/pkg/svg"
)

// Collection is an exported icon set: icon name to SVG markup
type Collection struct {
	Prefix string
	Icons  map[string]string
}

// Names returns icon names in sorted order
func (c Collection) Names() []string {
	names := make([]string, 0, len(c.Icons))
	for name := range c.Icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the collection contains the named icon
func (c Collection) Has(name string) bool {
	_, ok := c.Icons[name]
	return ok
}

// IconifyJSON is the Iconify icon set format understood by icon presets
type IconifyJSON struct {
	Prefix string                 `json:"prefix"`
	Icons  map[string]IconifyIcon `json:"icons"`
	Width  float64                `json:"width,omitempty"`
	Height float64                `json:"height,omitempty"`
}

// IconifyIcon is a single icon in IconifyJSON
type IconifyIcon struct {
	Body   string  `json:"body"`
	Left   float64 `json:"left,omitempty"`
	Top    float64 `json:"top,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Iconify converts the collection to Iconify JSON. When every icon has
// the same size it is stored once at the top level. Presentation
// attributes of the root <svg> move onto a group around the body.
func (c Collection) Iconify() (*IconifyJSON, error) {
	out := &IconifyJSON{Prefix: c.Prefix, Icons: make(map[string]IconifyIcon, len(c.Icons))}

	boxes := make(map[string]svg.Box, len(c.Icons))
	for _, name := range c.Names() {
		doc, err := svg.ParseString(c.Icons[name])
		if err != nil {
			return nil, fmt.Errorf("iconset: icon %s: %w", name, err)
		}
		box := doc.ViewBox()
		boxes[name] = box
		out.Icons[name] = IconifyIcon{
			Body:   doc.IconBody(),
			Left:   box.Left,
			Top:    box.Top,
			Width:  box.Width,
			Height: box.Height,
		}
	}

	if w, h, ok := commonSize(boxes); ok {
		out.Width, out.Height = w, h
		for name, icon := range out.Icons {
			icon.Width, icon.Height = 0, 0
			out.Icons[name] = icon
		}
	}

	return out, nil
}

func commonSize(boxes map[string]svg.Box) (float64, float64, bool) {
	var w, h float64
	first := true
	for _, b := range boxes {
		if first {
			w, h, first = b.Width, b.Height, false
			continue
		}
		if b.Width != w || b.Height != h {
			return 0, 0, false
		}
	}
	return w, h, !first
}

// MarshalJSON renders the collection as Iconify JSON
func (c Collection) MarshalJSON() ([]byte, error) {
	data, err := c.Iconify()
	if err != nil {
		return nil, err
	}
	return json.Marshal(data)
}

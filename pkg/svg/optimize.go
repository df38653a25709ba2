package svg

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	minsvg "github.com/tdewolff/minify/v2/svg"
)

// MediaType is the media type registered with the minifier
const MediaType = "image/svg+xml"

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.Add(MediaType, &minsvg.Minifier{})
	return m
}

// Optimize runs the SVG minifier over src
func Optimize(src string) (string, error) {
	out, err := minifier.String(MediaType, src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOptimize, err)
	}
	return out, nil
}

// OptimizeDocument minifies doc and parses the result back into a Document
func OptimizeDocument(doc *Document) (*Document, error) {
	out, err := Optimize(doc.String())
	if err != nil {
		return nil, err
	}
	optimized, err := ParseString(out)
	if err != nil {
		return nil, fmt.Errorf("%w: reparse: %v", ErrOptimize, err)
	}
	return optimized, nil
}

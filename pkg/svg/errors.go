package svg

import "errors"

var (
	// ErrMalformed is returned when markup cannot be parsed as XML
	ErrMalformed = errors.New("svg: malformed markup")

	// ErrNotSVG is returned when the root element is not <svg>
	ErrNotSVG = errors.New("svg: root element is not svg")

	// ErrPathData is returned when a path d attribute cannot be tokenised
	ErrPathData = errors.New("svg: invalid path data")

	// ErrOptimize is returned when the minifier rejects the markup
	ErrOptimize = errors.New("svg: optimization failed")
)

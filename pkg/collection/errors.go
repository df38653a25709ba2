package collection

import "errors"

// ErrEmptyBaseName is returned by Collect when no base name is given
var ErrEmptyBaseName = errors.New("collection: base name is required")

package iconset

import "errors"

var (
	// ErrImport is returned when a directory or file cannot be imported
	ErrImport = errors.New("iconset: import failed")

	// ErrEmptyName is recorded for files whose name has no usable characters
	ErrEmptyName = errors.New("icon name is empty after cleaning")

	// ErrDuplicateName is recorded when two files clean to the same icon name
	ErrDuplicateName = errors.New("duplicate icon name")
)

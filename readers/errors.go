package readers

import "errors"

var (
	// ErrUnsupportedFormat rejects a file before any processing happens.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrParse marks extraction failures on an otherwise supported format.
	ErrParse = errors.New("failed to extract document text")
)

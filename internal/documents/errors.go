package documents

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("document not found")
	ErrNoText          = errors.New("no extractable text")
	ErrUnsupportedType = errors.New("unsupported file type")
)

package object

import (
	"context"
	"io"
)

// Object describes a stored upload.
type Object struct {
	// ID is the collision-free basename without extension.
	ID string
	// Key is the storage key relative to the store root.
	Key      string
	Path     string
	Size     int64
	MimeType string
}

// ObjectStore saves uploaded files under collision-free keys.
type ObjectStore interface {
	Save(ctx context.Context, fileName string, r io.Reader) (Object, error)
}

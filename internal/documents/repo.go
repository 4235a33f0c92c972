package documents

import "context"

// Repo stores registered documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	Get(ctx context.Context, id string) (Document, error)
}

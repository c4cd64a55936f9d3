package storage

import (
	"context"

	"github.com/poiesic/shopassist/core"
)

// FAQRepository provides operations for managing an indexed FAQ corpus.
// Implementations must be thread-safe: the index is written once by
// ingestion and read concurrently by queries afterwards.
type FAQRepository interface {
	// CreateCollection atomically creates the collection marker if absent.
	// Returns created=false when the collection already exists. The
	// check-and-create is a single atomic operation, so two concurrent
	// callers can never both observe created=true.
	CreateCollection(ctx context.Context, name string) (created bool, err error)

	// CollectionExists reports whether the collection has been created.
	CollectionExists(ctx context.Context, name string) (bool, error)

	// PutEntries stores FAQ entries under the collection.
	// Entries are keyed by corpus position; re-putting a position overwrites it.
	PutEntries(ctx context.Context, name string, entries []*core.FAQEntry) error

	// CountEntries returns the number of entries stored in the collection.
	CountEntries(ctx context.Context, name string) (int, error)

	// FindSimilar finds FAQ entries similar to the given vector.
	// Returns up to limit results ordered by similarity score (highest
	// first); equal scores order by corpus position. Vectors are assumed
	// normalized, so the score is cosine similarity.
	FindSimilar(ctx context.Context, name string, vector []float32, limit int) ([]*core.ScoredEntry, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

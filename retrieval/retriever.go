package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/shopassist/ai"
	"github.com/poiesic/shopassist/core"
	"github.com/poiesic/shopassist/storage"
)

// Retriever provides top-K semantic search over an indexed FAQ collection.
type Retriever struct {
	repository storage.FAQRepository
	embedder   ai.Embedder
	collection string
	logger     *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever over the named collection.
func NewRetriever(
	repository storage.FAQRepository,
	provider ai.AIProvider,
	collection string,
	opts ...Option,
) (*Retriever, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if collection == "" {
		return nil, ErrCollectionRequired
	}

	r := &Retriever{
		repository: repository,
		embedder:   provider.Embedder(),
		collection: collection,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Query embeds the text and returns the k most similar FAQ entries, sorted
// by descending cosine similarity with ties broken by corpus order.
// Returns an empty result when k <= 0 or the index is empty. No similarity
// threshold is applied here; that is a synthesis-time decision.
func (r *Retriever) Query(ctx context.Context, text string, k int) ([]*core.ScoredEntry, error) {
	if k <= 0 {
		return []*core.ScoredEntry{}, nil
	}

	vector, err := r.embedder.EmbedText(ctx, text)
	if err != nil {
		r.logger.Error("error generating embedding for query", "query", text, "err", err)
		return nil, fmt.Errorf("retrieval: embed query: %w", err)
	}
	vector = core.NormalizeVector(vector)

	results, err := r.repository.FindSimilar(ctx, r.collection, vector, k)
	if err != nil {
		r.logger.Error("error querying for similar entries", "err", err)
		return nil, fmt.Errorf("retrieval: find similar: %w", err)
	}

	r.logger.Debug("retrieved entries", "query", text, "k", k, "hits", len(results))
	return results, nil
}

// Collection returns the name of the collection this retriever reads.
func (r *Retriever) Collection() string {
	return r.collection
}

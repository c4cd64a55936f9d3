package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/shopassist/ai"
	"github.com/poiesic/shopassist/core"
	"github.com/poiesic/shopassist/storage"
)

// Pipeline embeds an FAQ corpus and stores it as a named collection.
// Ingestion is idempotent per collection: an existing collection is left
// untouched and re-ingestion is a logged no-op.
type Pipeline struct {
	repository storage.FAQRepository
	embedder   ai.Embedder
	pool       *ants.Pool
	mu         sync.Mutex // serializes the exists-embed-create-put sequence
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(repository storage.FAQRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		embedder:   provider.Embedder(),
		pool:       pool,
		logger:     slog.Default().With("component", "ingestion"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// Ingest embeds every question in rows and stores the resulting entries
// under the named collection. Row position in the corpus becomes the
// entry's stable ordering key. If the collection already exists the call
// is a no-op and returns 0.
//
// Embedding failures are fatal: the collection marker is only written
// after every row embedded successfully, so a failed run leaves no
// half-built index behind.
func (p *Pipeline) Ingest(ctx context.Context, collection string, rows []QAPair) (int, error) {
	if collection == "" {
		return 0, storage.ErrEmptyCollectionName
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	exists, err := p.repository.CollectionExists(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("ingestion: check collection: %w", err)
	}
	if exists {
		p.logger.Info("collection already exists, skipping ingestion", "collection", collection)
		return 0, nil
	}

	p.logger.Info("ingesting corpus", "collection", collection, "rows", len(rows))

	entries, err := p.embedRows(ctx, rows)
	if err != nil {
		return 0, err
	}

	// Atomic create-if-absent guards against a concurrent ingestor in
	// another process; the loser skips without writing entries.
	created, err := p.repository.CreateCollection(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("ingestion: create collection: %w", err)
	}
	if !created {
		p.logger.Info("collection created concurrently, skipping ingestion", "collection", collection)
		return 0, nil
	}

	if err := p.repository.PutEntries(ctx, collection, entries); err != nil {
		return 0, fmt.Errorf("ingestion: store entries: %w", err)
	}

	p.logger.Info("corpus ingested", "collection", collection, "entries", len(entries))
	return len(entries), nil
}

// embedRows embeds every question on the worker pool and builds entries in
// corpus order. The first embedding error aborts the whole batch.
func (p *Pipeline) embedRows(ctx context.Context, rows []QAPair) ([]*core.FAQEntry, error) {
	entries := make([]*core.FAQEntry, len(rows))
	errs := make([]error, len(rows))

	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			vector, err := p.embedder.EmbedText(ctx, row.Question)
			if err != nil {
				errs[i] = fmt.Errorf("embed row %d: %w", i, err)
				return
			}

			entries[i] = &core.FAQEntry{
				Id:       core.IDFromContent(row.Question),
				Position: i,
				Question: row.Question,
				Answer:   row.Answer,
				Vector:   core.NormalizeVector(vector),
			}
		})
		if submitErr != nil {
			wg.Done()
			return nil, submitErr
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("ingestion: %w", err)
		}
	}
	return entries, nil
}

// Release frees the worker pool. The pipeline cannot be used afterwards.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

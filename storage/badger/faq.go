// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/shopassist/core"
	"github.com/poiesic/shopassist/storage"
)

// FAQRepository implements storage.FAQRepository on a BadgerDB backend.
type FAQRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.FAQRepository = (*FAQRepository)(nil)

// NewFAQRepository creates an FAQ repository over the given backend.
func NewFAQRepository(backend *Backend) (*FAQRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &FAQRepository{
		backend: backend,
		logger:  slog.Default().With("component", "faq-repository"),
	}, nil
}

// CreateCollection atomically creates the collection marker if absent.
// The get-and-set runs inside one write transaction, so concurrent callers
// cannot both observe created=true: badger aborts the losing transaction
// with a conflict, which is reported as created=false.
func (r *FAQRepository) CreateCollection(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, storage.ErrEmptyCollectionName
	}

	created := false
	key := makeCollectionKey(name)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		if err == nil {
			return nil // already exists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := tx.Set(key, []byte{}); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		created = true
		return nil
	}, true)
	if err != nil {
		if errors.Is(err, badger.ErrConflict) {
			// Lost the race; the other caller created it.
			return false, nil
		}
		return false, fmt.Errorf("create collection %q: %w", name, err)
	}

	if created {
		r.logger.Info("created collection", "collection", name)
	}
	return created, nil
}

// CollectionExists reports whether the collection marker is present.
func (r *FAQRepository) CollectionExists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, storage.ErrEmptyCollectionName
	}

	exists := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeCollectionKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	}, false)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// PutEntries stores FAQ entries keyed by their corpus position.
func (r *FAQRepository) PutEntries(ctx context.Context, name string, entries []*core.FAQEntry) error {
	if name == "" {
		return storage.ErrEmptyCollectionName
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if err := core.ValidateFAQEntry(entry); err != nil {
				return err
			}
			key := makeEntryKey(name, entry.Position)
			if err := tx.Set(key, storage.MarshalFAQEntry(entry)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("put entries in %q: %w", name, err)
	}

	r.logger.Debug("stored entries", "collection", name, "count", len(entries))
	return nil
}

// CountEntries returns the number of entries stored in the collection.
func (r *FAQRepository) CountEntries(ctx context.Context, name string) (int, error) {
	if name == "" {
		return 0, storage.ErrEmptyCollectionName
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEntryPrefix(name)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindSimilar finds FAQ entries similar to the given vector.
// Scores are dot products, which equal cosine similarity for the
// normalized vectors the ingestion pipeline stores. Results are sorted by
// score descending; equal scores keep corpus order because iteration
// already visits entries in position order.
func (r *FAQRepository) FindSimilar(ctx context.Context, name string, vector []float32, limit int) ([]*core.ScoredEntry, error) {
	if name == "" {
		return nil, storage.ErrEmptyCollectionName
	}
	if limit <= 0 {
		return []*core.ScoredEntry{}, nil
	}

	var results []*core.ScoredEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEntryPrefix(name)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.FAQEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalFAQEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil || len(entry.Vector) == 0 {
				continue
			}

			results = append(results, &core.ScoredEntry{
				Entry: entry,
				Score: core.DotProduct(vector, entry.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, fmt.Errorf("find similar in %q: %w", name, err)
	}

	// Stable sort keeps ingestion order for tied scores.
	slices.SortStableFunc(results, func(a, b *core.ScoredEntry) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []*core.ScoredEntry{}
	}
	return results, nil
}

// Close releases repository resources. The backend is owned by the caller
// and stays open.
func (r *FAQRepository) Close() error {
	return nil
}

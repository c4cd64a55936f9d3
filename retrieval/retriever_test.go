package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/shopassist/ai/mock"
	"github.com/poiesic/shopassist/core"
	"github.com/poiesic/shopassist/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *badger.FAQRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func seedEntries(t *testing.T, repo *badger.FAQRepository, entries []*core.FAQEntry) {
	t.Helper()
	require.NoError(t, repo.PutEntries(context.Background(), "faqs", entries))
}

func TestNewRetriever(t *testing.T) {
	repo := newTestRepo(t)
	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		retriever, err := NewRetriever(repo, provider, "faqs")
		require.NoError(t, err)
		assert.NotNil(t, retriever)
		assert.Equal(t, "faqs", retriever.Collection())
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewRetriever(nil, provider, "faqs")
		assert.Equal(t, ErrRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewRetriever(repo, nil, "faqs")
		assert.Equal(t, ErrAIProviderRequired, err)
	})

	t.Run("empty collection", func(t *testing.T) {
		_, err := NewRetriever(repo, provider, "")
		assert.Equal(t, ErrCollectionRequired, err)
	})
}

func TestQuery_EmptyIndex(t *testing.T) {
	repo := newTestRepo(t)
	retriever, err := NewRetriever(repo, mock.NewMockProvider(), "faqs")
	require.NoError(t, err)

	results, err := retriever.Query(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_NonPositiveK(t *testing.T) {
	repo := newTestRepo(t)
	embedder := mock.NewMockEmbedder()
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator())

	retriever, err := NewRetriever(repo, provider, "faqs")
	require.NoError(t, err)

	for _, k := range []int{0, -1} {
		results, err := retriever.Query(context.Background(), "anything", k)
		require.NoError(t, err)
		assert.Empty(t, results)
	}

	// k <= 0 short-circuits before embedding.
	assert.Equal(t, 0, embedder.CallCount())
}

func TestQuery_RanksBySimilarity(t *testing.T) {
	repo := newTestRepo(t)
	seedEntries(t, repo, []*core.FAQEntry{
		{Position: 0, Question: "shipping", Answer: "Free above Rs. 500.", Vector: []float32{0, 1}},
		{Position: 1, Question: "refund", Answer: "Refunds within 30 days.", Vector: []float32{1, 0}},
	})

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{5, 0}, nil // normalization happens inside Query
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator())

	retriever, err := NewRetriever(repo, provider, "faqs")
	require.NoError(t, err)

	results, err := retriever.Query(context.Background(), "how long to get my money back", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "refund", results[0].Entry.Question)
	assert.InDelta(t, 1.0, float64(results[0].Score), 1e-5)
	assert.LessOrEqual(t, results[1].Score, results[0].Score)
}

func TestQuery_NeverExceedsK(t *testing.T) {
	repo := newTestRepo(t)
	seedEntries(t, repo, []*core.FAQEntry{
		{Position: 0, Question: "q0", Answer: "a0", Vector: []float32{1, 0}},
		{Position: 1, Question: "q1", Answer: "a1", Vector: []float32{0.9, 0.1}},
		{Position: 2, Question: "q2", Answer: "a2", Vector: []float32{0.8, 0.2}},
	})

	retriever, err := NewRetriever(repo, mock.NewMockProvider(), "faqs")
	require.NoError(t, err)

	results, err := retriever.Query(context.Background(), "query", 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 2)
}

func TestQuery_EmbedderError(t *testing.T) {
	repo := newTestRepo(t)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("transient network error")
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator())

	retriever, err := NewRetriever(repo, provider, "faqs")
	require.NoError(t, err)

	_, err = retriever.Query(context.Background(), "query", 3)
	assert.Error(t, err)
}

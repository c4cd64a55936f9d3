package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/shopassist/ai/mock"
	"github.com/poiesic/shopassist/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// axisEmbedder returns a mock embedder that maps each known text to a fixed
// vector, so route geometry is fully controlled by the test.
func axisEmbedder(vectors map[string][]float32) *mock.MockEmbedder {
	lookup := func(text string) []float32 {
		if v, ok := vectors[text]; ok {
			return v
		}
		return []float32{0, 0, 1}
	}

	m := mock.NewMockEmbedder()
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return lookup(text), nil
	}
	m.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i] = lookup(text)
		}
		return out, nil
	}
	return m
}

func testRoutes() []Route {
	return []Route{
		{Name: core.IntentFAQ, Utterances: []string{"refund policy", "shipping charges"}},
		{Name: core.IntentProduct, Utterances: []string{"nike shoes under 3000"}},
	}
}

func testVectors() map[string][]float32 {
	return map[string][]float32{
		"refund policy":         {1, 0, 0},
		"shipping charges":      {0.9, 0.1, 0},
		"nike shoes under 3000": {0, 1, 0},
	}
}

func TestNewRouter(t *testing.T) {
	ctx := context.Background()

	t.Run("valid configuration", func(t *testing.T) {
		router, err := NewRouter(ctx, axisEmbedder(testVectors()), testRoutes())
		require.NoError(t, err)
		assert.NotNil(t, router)
		assert.Equal(t, float32(DefaultThreshold), router.Threshold())
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewRouter(ctx, nil, testRoutes())
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("no routes", func(t *testing.T) {
		_, err := NewRouter(ctx, axisEmbedder(testVectors()), nil)
		assert.Equal(t, ErrNoRoutes, err)
	})

	t.Run("route without utterances", func(t *testing.T) {
		routes := []Route{{Name: core.IntentFAQ}}
		_, err := NewRouter(ctx, axisEmbedder(testVectors()), routes)
		assert.ErrorIs(t, err, ErrNoUtterances)
	})

	t.Run("duplicate route names", func(t *testing.T) {
		routes := []Route{
			{Name: core.IntentFAQ, Utterances: []string{"a"}},
			{Name: core.IntentFAQ, Utterances: []string{"b"}},
		}
		_, err := NewRouter(ctx, axisEmbedder(testVectors()), routes)
		assert.ErrorIs(t, err, ErrDuplicateRoute)
	})

	t.Run("embedder failure is fatal", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("service unreachable")
		}
		_, err := NewRouter(ctx, embedder, testRoutes())
		assert.Error(t, err)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		_, err := NewRouter(ctx, axisEmbedder(testVectors()), testRoutes(), WithThreshold(1.5))
		assert.Equal(t, ErrInvalidThreshold, err)
	})

	t.Run("negative epsilon", func(t *testing.T) {
		_, err := NewRouter(ctx, axisEmbedder(testVectors()), testRoutes(), WithEpsilon(-0.1))
		assert.Equal(t, ErrInvalidEpsilon, err)
	})
}

func TestClassify_AboveThreshold(t *testing.T) {
	ctx := context.Background()
	vectors := testVectors()
	vectors["how long for my refund"] = []float32{0.95, 0.05, 0}

	router, err := NewRouter(ctx, axisEmbedder(vectors), testRoutes(), WithThreshold(0.8))
	require.NoError(t, err)

	result, err := router.Classify(ctx, "how long for my refund")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, core.IntentFAQ, result.Intent)
	assert.Greater(t, result.Score, float32(0.8))
}

func TestClassify_BelowThreshold(t *testing.T) {
	ctx := context.Background()
	vectors := testVectors()
	// Orthogonal to every route.
	vectors["completely unrelated"] = []float32{0, 0, 1}

	router, err := NewRouter(ctx, axisEmbedder(vectors), testRoutes(), WithThreshold(0.8))
	require.NoError(t, err)

	result, err := router.Classify(ctx, "completely unrelated")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestClassify_TieBreakFirstRegistered(t *testing.T) {
	ctx := context.Background()
	// Both routes sit on the same axis, so any query scores them identically.
	vectors := map[string][]float32{
		"alpha": {1, 0},
		"beta":  {1, 0},
		"query": {1, 0},
	}
	routes := []Route{
		{Name: core.IntentProduct, Utterances: []string{"alpha"}},
		{Name: core.IntentFAQ, Utterances: []string{"beta"}},
	}

	router, err := NewRouter(ctx, axisEmbedder(vectors), routes, WithThreshold(0.5))
	require.NoError(t, err)

	result, err := router.Classify(ctx, "query")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, core.IntentProduct, result.Intent, "first-registered route should win ties")
}

func TestClassify_EmbedderError(t *testing.T) {
	ctx := context.Background()
	embedder := axisEmbedder(testVectors())

	router, err := NewRouter(ctx, embedder, testRoutes())
	require.NoError(t, err)

	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("transient network error")
	}

	result, err := router.Classify(ctx, "anything")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestClassify_MeanAggregation(t *testing.T) {
	ctx := context.Background()
	// Route one has a single strong match plus a strong mismatch; route two
	// is uniformly moderate. Max picks route one, mean picks route two.
	vectors := map[string][]float32{
		"strong match":    {1, 0},
		"strong mismatch": {-1, 0},
		"moderate a":      {0.7, 0.7},
		"moderate b":      {0.7, 0.7},
		"query":           {1, 0},
	}
	routes := []Route{
		{Name: core.IntentFAQ, Utterances: []string{"strong match", "strong mismatch"}},
		{Name: core.IntentChitchat, Utterances: []string{"moderate a", "moderate b"}},
	}

	maxRouter, err := NewRouter(ctx, axisEmbedder(vectors), routes, WithThreshold(0.3))
	require.NoError(t, err)
	result, err := maxRouter.Classify(ctx, "query")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, core.IntentFAQ, result.Intent)

	meanRouter, err := NewRouter(ctx, axisEmbedder(vectors), routes,
		WithThreshold(0.3), WithAggregation(AggregationMean))
	require.NoError(t, err)
	result, err = meanRouter.Classify(ctx, "query")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, core.IntentChitchat, result.Intent)
}

func TestDefaultRoutes(t *testing.T) {
	routes := DefaultRoutes()
	require.Len(t, routes, 3)

	names := make(map[core.Intent]bool)
	for _, route := range routes {
		assert.NotEmpty(t, route.Utterances, "route %q has no utterances", route.Name)
		assert.False(t, names[route.Name], "duplicate route %q", route.Name)
		names[route.Name] = true
	}
	assert.True(t, names[core.IntentFAQ])
	assert.True(t, names[core.IntentProduct])
	assert.True(t, names[core.IntentChitchat])
}

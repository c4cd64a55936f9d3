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


package routing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/shopassist/ai"
	"github.com/poiesic/shopassist/core"
)

const (
	// DefaultThreshold is the minimum similarity a route must reach for a
	// query to be classified. Below it, Classify reports no route.
	DefaultThreshold = 0.75

	// DefaultEpsilon is the margin within which two route scores are
	// considered tied. Ties resolve to the first-registered route.
	DefaultEpsilon = 1e-6
)

// Aggregation selects how a route's utterance similarities collapse into
// a single route score.
type Aggregation int

const (
	// AggregationMax scores a route by its best-matching utterance.
	AggregationMax Aggregation = iota

	// AggregationMean scores a route by the mean similarity over all of
	// its utterances.
	AggregationMean
)

// Route is a named intent with its example utterances.
type Route struct {
	Name       core.Intent
	Utterances []string
}

// indexedRoute holds a route's normalized utterance vectors in
// registration order.
type indexedRoute struct {
	name    core.Intent
	vectors [][]float32
}

// Router classifies queries into intents by similarity against a fixed set
// of example utterances. The route set is embedded once at construction and
// never mutated afterwards, so Classify is safe for concurrent use.
type Router struct {
	routes      []*indexedRoute
	embedder    ai.Embedder
	threshold   float32
	epsilon     float32
	aggregation Aggregation
	logger      *slog.Logger
}

// Option configures a Router.
type Option func(*Router) error

// WithThreshold sets the acceptance threshold for classification.
// Default is DefaultThreshold.
func WithThreshold(threshold float32) Option {
	return func(r *Router) error {
		if threshold < -1 || threshold > 1 {
			return ErrInvalidThreshold
		}
		r.threshold = threshold
		return nil
	}
}

// WithEpsilon sets the tie-break margin.
// Default is DefaultEpsilon.
func WithEpsilon(epsilon float32) Option {
	return func(r *Router) error {
		if epsilon < 0 {
			return ErrInvalidEpsilon
		}
		r.epsilon = epsilon
		return nil
	}
}

// WithAggregation sets how utterance similarities aggregate per route.
// Default is AggregationMax.
func WithAggregation(agg Aggregation) Option {
	return func(r *Router) error {
		r.aggregation = agg
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRouter builds a router from the given routes. Every utterance is
// embedded via the embedder in a single batch; construction fails if the
// embedder is unreachable, a route has no utterances, or two routes share
// a name.
func NewRouter(ctx context.Context, embedder ai.Embedder, routes []Route, opts ...Option) (*Router, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if len(routes) == 0 {
		return nil, ErrNoRoutes
	}

	r := &Router{
		embedder:    embedder,
		threshold:   DefaultThreshold,
		epsilon:     DefaultEpsilon,
		aggregation: AggregationMax,
		logger:      slog.Default().With("component", "router"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	// Reject empty routes and duplicate names before embedding anything.
	seen := make(map[core.Intent]bool, len(routes))
	var texts []string
	for _, route := range routes {
		if len(route.Utterances) == 0 {
			return nil, fmt.Errorf("%w: route %q", ErrNoUtterances, route.Name)
		}
		if seen[route.Name] {
			return nil, fmt.Errorf("%w: route %q", ErrDuplicateRoute, route.Name)
		}
		seen[route.Name] = true
		texts = append(texts, route.Utterances...)
	}

	// One batch call for the whole corpus.
	vectors, err := r.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("routing: embed route utterances: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("routing: embedder returned %d vectors for %d utterances", len(vectors), len(texts))
	}

	offset := 0
	for _, route := range routes {
		indexed := &indexedRoute{
			name:    route.Name,
			vectors: make([][]float32, len(route.Utterances)),
		}
		for i := range route.Utterances {
			indexed.vectors[i] = core.NormalizeVector(vectors[offset+i])
		}
		offset += len(route.Utterances)
		r.routes = append(r.routes, indexed)
	}

	r.logger.Debug("router initialized",
		"routes", len(r.routes),
		"utterances", len(texts),
		"threshold", r.threshold)

	return r, nil
}

// Classify embeds the query and scores it against every route. It returns
// the best route's classification if its score clears the threshold, or
// (nil, nil) when no route qualifies. Within epsilon of the top score the
// first-registered route wins, keeping classification reproducible for
// identical inputs.
//
// An embedder failure is returned as an error; retry policy belongs to
// the caller.
func (r *Router) Classify(ctx context.Context, query string) (*core.Classification, error) {
	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("routing: embed query: %w", err)
	}
	vector = core.NormalizeVector(vector)

	var best *indexedRoute
	var bestScore float32
	for _, route := range r.routes {
		score := r.scoreRoute(route, vector)
		// Strictly-better-by-epsilon keeps the earlier route on ties.
		if best == nil || score > bestScore+r.epsilon {
			best = route
			bestScore = score
		}
	}

	if best == nil || bestScore < r.threshold {
		r.logger.Debug("no route above threshold",
			"bestScore", bestScore,
			"threshold", r.threshold)
		return nil, nil
	}

	r.logger.Debug("classified query", "intent", best.name, "score", bestScore)
	return &core.Classification{Intent: best.name, Score: bestScore}, nil
}

// scoreRoute collapses the similarities between the query vector and the
// route's utterance vectors into a single score.
func (r *Router) scoreRoute(route *indexedRoute, query []float32) float32 {
	switch r.aggregation {
	case AggregationMean:
		var sum float32
		for _, v := range route.vectors {
			sum += core.DotProduct(query, v)
		}
		return sum / float32(len(route.vectors))
	default:
		var max float32 = -1
		for _, v := range route.vectors {
			if s := core.DotProduct(query, v); s > max {
				max = s
			}
		}
		return max
	}
}

// Threshold returns the configured acceptance threshold.
func (r *Router) Threshold() float32 {
	return r.threshold
}

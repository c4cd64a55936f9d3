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

package shopassist

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/poiesic/shopassist/ai"
	"github.com/poiesic/shopassist/ai/openai"
	"github.com/poiesic/shopassist/core"
	"github.com/poiesic/shopassist/ingestion"
	"github.com/poiesic/shopassist/retrieval"
	"github.com/poiesic/shopassist/routing"
	"github.com/poiesic/shopassist/storage"
	"github.com/poiesic/shopassist/storage/badger"
	"github.com/poiesic/shopassist/synthesis"
)

// DefaultTopK is how many FAQ entries are retrieved as context for an
// answer.
const DefaultTopK = 3

// ProductUnavailableNotice is returned for product-intent queries when no
// product handler has been plugged in.
const ProductUnavailableNotice = "Product search isn't available right now, but I can help with order and policy questions, or we can just chat!"

// ProductHandler answers structured product queries. The catalog backend
// lives outside this module; plug one in with WithProductHandler.
type ProductHandler interface {
	Handle(ctx context.Context, query string) string
}

// Assistant wires storage, AI services, routing, retrieval and synthesis
// into a single ask/ingest surface.
type Assistant struct {
	backend        *badger.Backend
	faqRepo        storage.FAQRepository
	provider       ai.AIProvider
	router         *routing.Router
	synthesizer    *synthesis.Synthesizer
	chitchat       *synthesis.Chitchat
	productHandler ProductHandler
	topK           int
	logger         *slog.Logger

	mu         sync.RWMutex
	collection string
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig       *ai.Config
	provider       ai.AIProvider
	routes         []routing.Route
	routerOpts     []routing.Option
	productHandler ProductHandler
	collection     string
	topK           int
	inMemory       bool
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing
// one from the AI config. The assistant takes ownership and closes it.
func WithProvider(provider ai.AIProvider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithRoutes replaces the default intent routes.
func WithRoutes(routes []routing.Route) AssistantOption {
	return func(o *assistantOptions) {
		if len(routes) > 0 {
			o.routes = routes
		}
	}
}

// WithRouterOptions passes options through to the intent router.
func WithRouterOptions(opts ...routing.Option) AssistantOption {
	return func(o *assistantOptions) {
		o.routerOpts = append(o.routerOpts, opts...)
	}
}

// WithProductHandler plugs in a handler for product-intent queries.
func WithProductHandler(handler ProductHandler) AssistantOption {
	return func(o *assistantOptions) {
		o.productHandler = handler
	}
}

// WithFAQCollection points the assistant at an existing FAQ collection.
// Normally the collection is set by IngestFAQ.
func WithFAQCollection(name string) AssistantOption {
	return func(o *assistantOptions) {
		o.collection = name
	}
}

// WithTopK sets how many FAQ entries are retrieved per question.
func WithTopK(k int) AssistantOption {
	return func(o *assistantOptions) {
		if k > 0 {
			o.topK = k
		}
	}
}

// WithInMemoryStorage keeps the FAQ index in memory. Intended for tests.
func WithInMemoryStorage() AssistantOption {
	return func(o *assistantOptions) {
		o.inMemory = true
	}
}

// NewAssistant opens the FAQ index at filePath and builds the full query
// pipeline. Router construction embeds the route utterances, so the
// embedding service must be reachable.
func NewAssistant(ctx context.Context, filePath string, opts ...AssistantOption) (*Assistant, error) {
	// Apply options
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
		routes:   routing.DefaultRoutes(),
		topK:     DefaultTopK,
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create FAQ repository
	faqRepo, err := badger.NewFAQRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			faqRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	// Build the intent router (embeds route utterances)
	router, err := routing.NewRouter(ctx, provider.Embedder(), options.routes, options.routerOpts...)
	if err != nil {
		provider.Close()
		faqRepo.Close()
		backend.Close()
		return nil, err
	}

	synthesizer, err := synthesis.NewSynthesizer(provider)
	if err != nil {
		provider.Close()
		faqRepo.Close()
		backend.Close()
		return nil, err
	}

	chitchat, err := synthesis.NewChitchat(provider)
	if err != nil {
		provider.Close()
		faqRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Assistant{
		backend:        backend,
		faqRepo:        faqRepo,
		provider:       provider,
		router:         router,
		synthesizer:    synthesizer,
		chitchat:       chitchat,
		productHandler: options.productHandler,
		topK:           options.topK,
		collection:     options.collection,
		logger:         slog.Default(),
	}, nil
}

// Ask routes the query to the matching handler and returns its reply.
// Every failure path degrades to text: classification errors and
// unrecognized intents fall through to chitchat, and the handlers carry
// their own fallbacks. Ask never returns an error to the caller.
func (a *Assistant) Ask(ctx context.Context, query string) string {
	classification, err := a.router.Classify(ctx, query)
	if err != nil {
		a.logger.Error("intent classification failed", "query", query, "err", err)
		return a.chitchat.Reply(ctx, query)
	}
	if classification == nil {
		// No route cleared the threshold.
		return a.chitchat.Reply(ctx, query)
	}

	a.logger.Debug("query routed",
		"query", query,
		"intent", classification.Intent,
		"score", classification.Score)

	switch classification.Intent {
	case core.IntentFAQ:
		return a.answerFAQ(ctx, query)
	case core.IntentProduct:
		if a.productHandler != nil {
			return a.productHandler.Handle(ctx, query)
		}
		return ProductUnavailableNotice
	case core.IntentChitchat:
		return a.chitchat.Reply(ctx, query)
	default:
		return a.chitchat.Reply(ctx, query)
	}
}

func (a *Assistant) answerFAQ(ctx context.Context, query string) string {
	a.mu.RLock()
	collection := a.collection
	a.mu.RUnlock()

	if collection == "" {
		a.logger.Warn("faq query before any corpus was ingested", "query", query)
		return a.synthesizer.Synthesize(ctx, query, nil)
	}

	retriever, err := retrieval.NewRetriever(a.faqRepo, a.provider, collection)
	if err != nil {
		a.logger.Error("building retriever failed", "collection", collection, "err", err)
		return a.synthesizer.Synthesize(ctx, query, nil)
	}

	entries, err := retriever.Query(ctx, query, a.topK)
	if err != nil {
		a.logger.Error("faq retrieval failed", "query", query, "err", err)
		return synthesis.GenerationFallback
	}

	return a.synthesizer.Synthesize(ctx, query, entries)
}

// IngestFAQ loads the CSV corpus at csvPath into the index and points the
// assistant at the resulting collection. The collection name is a
// fingerprint of the corpus path, so re-ingesting the same file is a
// no-op. Returns the number of entries stored (zero when skipped).
func (a *Assistant) IngestFAQ(ctx context.Context, csvPath string) (int, error) {
	rows, skipped, err := ingestion.LoadCSVCorpus(csvPath)
	if err != nil {
		return 0, err
	}
	if skipped > 0 {
		a.logger.Warn("skipped malformed corpus rows", "path", csvPath, "skipped", skipped)
	}

	collection := CollectionForCorpus(csvPath)

	pipeline, err := ingestion.NewPipeline(a.faqRepo, a.provider)
	if err != nil {
		return 0, err
	}
	defer pipeline.Release()

	stored, err := pipeline.Ingest(ctx, collection, rows)
	if err != nil {
		return 0, err
	}

	a.mu.Lock()
	a.collection = collection
	a.mu.Unlock()

	return stored, nil
}

// FAQRepository exposes the underlying FAQ store.
func (a *Assistant) FAQRepository() storage.FAQRepository {
	return a.faqRepo
}

// CollectionForCorpus derives a stable collection name from a corpus
// path.
func CollectionForCorpus(csvPath string) string {
	return fmt.Sprintf("faq-%016x", uint64(core.IDFromContent(filepath.Clean(csvPath))))
}

func (a *Assistant) Close() error {
	// Close AI provider first
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.faqRepo.Close(); err != nil {
		a.logger.Error("error closing FAQ repository", "err", err)
		return err
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

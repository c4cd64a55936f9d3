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


package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/shopassist/ai"
	"github.com/poiesic/shopassist/core"
)

// User-facing fallback strings. The synthesizer's contract is to always
// return some text; these are what the user sees when there is nothing to
// answer from or generation fails.
const (
	// NoContextFallback is returned when retrieval produced no entries.
	NoContextFallback = "I don't have specific information about that. Please contact our support team or try rephrasing your question."

	// GenerationFallback is returned when the generation service fails.
	GenerationFallback = "I apologize, but I'm having trouble answering that right now. Please try asking again."
)

const (
	// Low temperature favors answers faithful to the retrieved context.
	defaultAnswerTemperature = 0.3
	defaultAnswerMaxTokens   = 3000
)

// Synthesizer turns a query and its retrieved FAQ context into a grounded
// natural-language answer.
type Synthesizer struct {
	generator   ai.Generator
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer) error

// WithTemperature sets the sampling temperature for answer generation.
// Default is 0.3.
func WithTemperature(temperature float64) Option {
	return func(s *Synthesizer) error {
		if temperature < 0 {
			return ErrInvalidTemperature
		}
		s.temperature = temperature
		return nil
	}
}

// WithMaxTokens caps the generated answer length.
// Default is 3000.
func WithMaxTokens(maxTokens int) Option {
	return func(s *Synthesizer) error {
		if maxTokens <= 0 {
			return ErrInvalidMaxTokens
		}
		s.maxTokens = maxTokens
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSynthesizer creates a new answer synthesizer.
func NewSynthesizer(provider ai.AIProvider, opts ...Option) (*Synthesizer, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Synthesizer{
		generator:   provider.Generator(),
		temperature: defaultAnswerTemperature,
		maxTokens:   defaultAnswerMaxTokens,
		logger:      slog.Default().With("component", "synthesizer"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Synthesize builds a grounded-generation request from the retrieved
// entries and returns the generated answer. An empty retrieval returns
// NoContextFallback without calling the generation service; a generation
// failure returns GenerationFallback. Internal errors are logged, never
// surfaced to the user.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, retrieval []*core.ScoredEntry) string {
	if len(retrieval) == 0 {
		s.logger.Debug("no context retrieved, returning fallback", "query", query)
		return NoContextFallback
	}

	contextBlock := buildContext(retrieval)
	s.logger.Debug("synthesizing answer",
		"query", query,
		"contextEntries", len(retrieval),
		"contextLength", len(contextBlock))

	answer, err := s.generator.Generate(ctx, ai.GenerationRequest{
		SystemPrompt: answerSystemPrompt,
		UserPrompt:   fmt.Sprintf(answerPromptTemplate, contextBlock, query),
		Temperature:  s.temperature,
		MaxTokens:    s.maxTokens,
	})
	if err != nil {
		s.logger.Error("answer generation failed", "query", query, "err", err)
		return GenerationFallback
	}

	return answer
}

// buildContext concatenates the retrieved answers in retrieval order.
func buildContext(retrieval []*core.ScoredEntry) string {
	parts := make([]string, 0, len(retrieval))
	for _, scored := range retrieval {
		if scored == nil || scored.Entry == nil {
			continue
		}
		parts = append(parts, scored.Entry.Answer)
	}
	return strings.Join(parts, " ")
}

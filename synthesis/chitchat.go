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
	"time"

	"github.com/poiesic/shopassist/ai"
)

// ChitchatFallback is returned when the generation service fails during
// casual conversation.
const ChitchatFallback = "I'm sorry, I'm having a little trouble right now. Please try asking something else!"

const (
	// Slightly higher temperature for more natural conversation.
	defaultChitchatTemperature = 0.7
	defaultChitchatMaxTokens   = 500
)

// Chitchat handles casual conversation with a shopping-assistant persona.
type Chitchat struct {
	generator   ai.Generator
	temperature float64
	maxTokens   int
	now         func() time.Time
	logger      *slog.Logger
}

// ChitchatOption configures a Chitchat handler.
type ChitchatOption func(*Chitchat) error

// WithChitchatTemperature sets the sampling temperature.
// Default is 0.7.
func WithChitchatTemperature(temperature float64) ChitchatOption {
	return func(c *Chitchat) error {
		if temperature < 0 {
			return ErrInvalidTemperature
		}
		c.temperature = temperature
		return nil
	}
}

// WithChitchatMaxTokens caps the generated reply length.
// Default is 500.
func WithChitchatMaxTokens(maxTokens int) ChitchatOption {
	return func(c *Chitchat) error {
		if maxTokens <= 0 {
			return ErrInvalidMaxTokens
		}
		c.maxTokens = maxTokens
		return nil
	}
}

// WithClock sets the time source used for the date/time context note.
// Default is time.Now. Intended for tests.
func WithClock(now func() time.Time) ChitchatOption {
	return func(c *Chitchat) error {
		if now == nil {
			now = time.Now
		}
		c.now = now
		return nil
	}
}

// NewChitchat creates a new chitchat handler.
func NewChitchat(provider ai.AIProvider, opts ...ChitchatOption) (*Chitchat, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	c := &Chitchat{
		generator:   provider.Generator(),
		temperature: defaultChitchatTemperature,
		maxTokens:   defaultChitchatMaxTokens,
		now:         time.Now,
		logger:      slog.Default().With("component", "chitchat"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Reply produces a conversational response to the query. The current date
// and time are appended to the persona prompt so the assistant can answer
// questions like "what is today's date". A generation failure returns
// ChitchatFallback; this handler always returns some text.
func (c *Chitchat) Reply(ctx context.Context, query string) string {
	now := c.now()
	contextNote := fmt.Sprintf("\n\nCurrent date and time: %s, %s",
		now.Format("Monday, January 02, 2006"),
		now.Format("03:04 PM"))

	reply, err := c.generator.Generate(ctx, ai.GenerationRequest{
		SystemPrompt: chitchatSystemPrompt + contextNote,
		UserPrompt:   query,
		Temperature:  c.temperature,
		MaxTokens:    c.maxTokens,
	})
	if err != nil {
		c.logger.Error("chitchat generation failed", "query", query, "err", err)
		return ChitchatFallback
	}

	return reply
}

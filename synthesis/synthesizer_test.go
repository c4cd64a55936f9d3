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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/shopassist/ai"
	"github.com/poiesic/shopassist/ai/mock"
	"github.com/poiesic/shopassist/core"
)

func scored(question, answer string) *core.ScoredEntry {
	return &core.ScoredEntry{
		Entry: &core.FAQEntry{
			Id:       core.IDFromContent(question),
			Question: question,
			Answer:   answer,
		},
		Score: 0.9,
	}
}

func TestNewSynthesizer_RequiresProvider(t *testing.T) {
	_, err := NewSynthesizer(nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestNewSynthesizer_OptionValidation(t *testing.T) {
	provider := mock.NewMockProvider()

	_, err := NewSynthesizer(provider, WithTemperature(-0.1))
	assert.ErrorIs(t, err, ErrInvalidTemperature)

	_, err = NewSynthesizer(provider, WithMaxTokens(0))
	assert.ErrorIs(t, err, ErrInvalidMaxTokens)
}

func TestSynthesize_EmptyRetrievalSkipsGeneration(t *testing.T) {
	generator := mock.NewMockGenerator()
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), generator)

	s, err := NewSynthesizer(provider)
	require.NoError(t, err)

	answer := s.Synthesize(context.Background(), "what is your refund policy?", nil)
	assert.Equal(t, NoContextFallback, answer)
	assert.Equal(t, 0, generator.CallCount())
}

func TestSynthesize_PromptContainsContextInOrder(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, req ai.GenerationRequest) (string, error) {
		return "You can return items within 30 days.", nil
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), generator)

	s, err := NewSynthesizer(provider)
	require.NoError(t, err)

	retrieval := []*core.ScoredEntry{
		scored("What is your return policy?", "Items can be returned within 30 days."),
		scored("How do refunds work?", "Refunds are issued to the original payment method."),
	}

	answer := s.Synthesize(context.Background(), "can I return my order?", retrieval)
	assert.Equal(t, "You can return items within 30 days.", answer)

	req := generator.LastRequest()
	first := strings.Index(req.UserPrompt, "Items can be returned within 30 days.")
	second := strings.Index(req.UserPrompt, "Refunds are issued to the original payment method.")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
	assert.Contains(t, req.UserPrompt, "can I return my order?")
	assert.Equal(t, 0.3, req.Temperature)
	assert.Equal(t, 3000, req.MaxTokens)
}

func TestSynthesize_GenerationFailureReturnsFallback(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, req ai.GenerationRequest) (string, error) {
		return "", ai.ErrServiceTimeout
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), generator)

	s, err := NewSynthesizer(provider)
	require.NoError(t, err)

	answer := s.Synthesize(context.Background(), "shipping times?",
		[]*core.ScoredEntry{scored("How long is shipping?", "Shipping takes 3-5 business days.")})
	assert.Equal(t, GenerationFallback, answer)
	assert.Equal(t, 1, generator.CallCount())
}

func TestSynthesize_SkipsNilEntries(t *testing.T) {
	generator := mock.NewMockGenerator()
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), generator)

	s, err := NewSynthesizer(provider, WithTemperature(0.5), WithMaxTokens(100))
	require.NoError(t, err)

	retrieval := []*core.ScoredEntry{
		nil,
		scored("Do you ship internationally?", "Yes, we ship worldwide."),
		{Entry: nil, Score: 0.1},
	}

	s.Synthesize(context.Background(), "international shipping?", retrieval)

	req := generator.LastRequest()
	assert.Contains(t, req.UserPrompt, "Yes, we ship worldwide.")
	assert.Equal(t, 0.5, req.Temperature)
	assert.Equal(t, 100, req.MaxTokens)
}

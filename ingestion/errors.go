package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when an FAQ repository is not provided.
	ErrRepositoryRequired = errors.New("faq repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)

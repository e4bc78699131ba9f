package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidModelName indicates the model name is empty.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidEmbedderModel indicates the embedder model is empty.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidChunkSize indicates the chunk size is out of range.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidChunkOverlap indicates the overlap is negative or not smaller
	// than the chunk size.
	ErrInvalidChunkOverlap = errors.New("invalid chunk overlap")

	// ErrInvalidTopK indicates top_k is out of range.
	ErrInvalidTopK = errors.New("invalid top_k")

	// ErrInvalidHistoryBudget indicates the history character budget is out of range.
	ErrInvalidHistoryBudget = errors.New("invalid history budget")

	// ErrInvalidEmbedRate indicates the embedding rate limit is out of range.
	ErrInvalidEmbedRate = errors.New("invalid embed rate")

	// ErrInvalidStorePath indicates the vector store path is empty.
	ErrInvalidStorePath = errors.New("invalid store path")
)

// Bounds for validated values. Chunks above maxChunkSize produce embeddings
// past every supported provider's input limit.
const (
	minChunkSize = 50
	maxChunkSize = 8192
	maxTopK      = 100
)

// Validate checks all configuration values and returns the first violation,
// wrapped around its sentinel error.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	switch c.Provider {
	case ProviderGemini, ProviderOllama, ProviderOpenAI:
	default:
		return fmt.Errorf("%w: %q (must be one of: gemini, ollama, openai)", ErrInvalidProvider, c.Provider)
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model name must not be empty", ErrInvalidModelName)
	}
	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder model must not be empty", ErrInvalidEmbedderModel)
	}

	if c.ChunkSize < minChunkSize || c.ChunkSize > maxChunkSize {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidChunkSize, c.ChunkSize, minChunkSize, maxChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: %d (must be >= 0 and smaller than chunk size %d)", ErrInvalidChunkOverlap, c.ChunkOverlap, c.ChunkSize)
	}

	if c.TopK < 1 || c.TopK > maxTopK {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidTopK, c.TopK, maxTopK)
	}
	if c.HistoryMaxChars < 0 {
		return fmt.Errorf("%w: %d (must not be negative)", ErrInvalidHistoryBudget, c.HistoryMaxChars)
	}
	if c.EmbedPerMinute < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidEmbedRate, c.EmbedPerMinute)
	}

	if c.StorePath == "" {
		return fmt.Errorf("%w: store path must not be empty", ErrInvalidStorePath)
	}

	return nil
}

package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/campuskit/advisor/internal/index"
)

// DefaultTopK is the number of chunks retrieved per question when the
// configuration does not override it.
const DefaultTopK = 3

// EmbedFunc turns a single text into its embedding vector.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// Index is the vector store surface the pipeline needs.
type Index interface {
	UpsertIfAbsent(ctx context.Context, entries []index.Entry) (int, error)
	Query(ctx context.Context, embedding []float32, topK int) ([]index.Result, error)
	Count() int
}

// Retriever embeds a question and finds the most similar indexed chunks.
type Retriever struct {
	index Index
	embed EmbedFunc
	topK  int
}

// NewRetriever builds a retriever over idx. topK values below 1 fall back to
// DefaultTopK.
func NewRetriever(idx Index, embed EmbedFunc, topK int) *Retriever {
	if topK < 1 {
		topK = DefaultTopK
	}
	return &Retriever{index: idx, embed: embed, topK: topK}
}

// Retrieve returns up to topK chunks ordered by descending similarity.
// The query is lowercased and trimmed before embedding so retrieval matches
// how documents were embedded at indexing time.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]index.Result, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return nil, nil
	}

	vec, err := r.embed(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.index.Query(ctx, vec, r.topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	return results, nil
}

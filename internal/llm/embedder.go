package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	chromem "github.com/philippgille/chromem-go"
)

// Embed maps a batch of texts to fixed-length vectors in input order. All
// texts go through one EmbedRequest; the rate limiter paces calls so bulk
// indexing stays under provider quotas.
//
// Corpus and query embeddings must come from the same embedder model to be
// comparable.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for embed slot: %w", err)
	}

	input := make([]*ai.Document, 0, len(texts))
	for _, text := range texts {
		input = append(input, ai.DocumentFromText(text, nil))
	}

	resp, err := c.embedder.Embed(ctx, &ai.EmbedRequest{Input: input})
	if err != nil {
		return nil, fmt.Errorf("embedding %d texts: %w", len(texts), err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts",
			len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, 0, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if len(e.Embedding) == 0 {
			return nil, fmt.Errorf("empty embedding returned for text %d", i)
		}
		vectors = append(vectors, e.Embedding)
	}
	return vectors, nil
}

// EmbeddingFunc adapts the Genkit embedder to chromem-go's single-text
// embedding contract so the vector store can embed new entries itself.
func (c *Client) EmbeddingFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vectors, err := c.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		return vectors[0], nil
	}
}

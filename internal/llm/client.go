// Package llm wires the configured AI provider through Genkit and exposes the
// two operations the pipeline needs: text embedding and text generation.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"golang.org/x/time/rate"

	"github.com/campuskit/advisor/internal/config"
	"github.com/campuskit/advisor/internal/log"
)

// Client holds the initialized Genkit instance, the embedder registered by
// the provider plugin, and the fully-qualified generation model name.
type Client struct {
	g         *genkit.Genkit
	embedder  ai.Embedder
	modelName string
	limiter   *rate.Limiter
	logger    log.Logger
}

// New initializes Genkit with the configured provider and looks up its
// embedder. Supported providers: gemini (default), ollama, and any
// OpenAI-compatible endpoint (openai).
func New(ctx context.Context, cfg *config.Config, logger log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	var (
		g        *genkit.Genkit
		embedder ai.Embedder
		model    string
	)

	switch cfg.Provider {
	case config.ProviderOllama:
		ollamaPlugin := &ollama.Ollama{ServerAddress: cfg.OllamaHost}
		g = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))
		if g == nil {
			return nil, errors.New("initializing genkit with ollama provider")
		}
		// Ollama requires explicit registration; there is no auto-discovery.
		ollamaPlugin.DefineModel(g, ollama.ModelDefinition{
			Name: cfg.ModelName,
			Type: "chat",
		}, nil)
		ollamaPlugin.DefineEmbedder(g, cfg.OllamaHost, cfg.EmbedderModel, nil)
		embedder = ollama.Embedder(g, cfg.OllamaHost)
		model = "ollama/" + cfg.ModelName
		logger.Info("initialized ollama provider",
			"model", cfg.ModelName, "host", cfg.OllamaHost)

	case config.ProviderOpenAI:
		g = genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with openai provider")
		}
		embedder = genkit.LookupEmbedder(g, api.NewName("openai", cfg.EmbedderModel))
		model = "openai/" + cfg.ModelName
		logger.Info("initialized openai provider", "model", cfg.ModelName)

	default: // gemini
		if os.Getenv("GEMINI_API_KEY") == "" {
			return nil, errors.New("GEMINI_API_KEY environment variable not set")
		}
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with gemini provider")
		}
		embedder = googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
		model = "googleai/" + cfg.ModelName
		logger.Info("initialized gemini provider", "model", cfg.ModelName)
	}

	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not found for provider %q",
			cfg.EmbedderModel, cfg.Provider)
	}

	perMinute := cfg.EmbedPerMinute
	if perMinute < 1 {
		perMinute = 1
	}

	return &Client{
		g:         g,
		embedder:  embedder,
		modelName: model,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		logger:    logger,
	}, nil
}

// Generate sends the composed prompt to the configured model and returns the
// generated text. Errors are returned to the caller; the pipeline decides the
// degrade policy.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := genkit.Generate(ctx, c.g,
		ai.WithModelName(c.modelName),
		ai.WithMessages(ai.NewUserMessage(ai.NewTextPart(prompt))),
	)
	if err != nil {
		return "", fmt.Errorf("generating response: %w", err)
	}
	return resp.Text(), nil
}

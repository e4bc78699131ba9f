// Package config provides application configuration with multi-source priority.
//
// Sources (highest to lowest):
//  1. Environment variables (ADVISOR_ prefix)
//  2. Config file (~/.advisor/config.yaml or ./config.yaml)
//  3. Default values
//
// Validation is fail-fast: Load returns a wrapped sentinel error for any
// out-of-range value so callers can branch with errors.Is.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

const (
	// DefaultCollection is the vector collection holding catalog chunks.
	DefaultCollection = "catalog"

	// DefaultSnapshotFile is the flat backup snapshot written by export.
	DefaultSnapshotFile = "vectordb_backup.json"
)

// Config stores application configuration.
type Config struct {
	// AI provider and model configuration
	Provider      string `mapstructure:"provider"`       // "gemini" (default), "ollama", "openai"
	ModelName     string `mapstructure:"model_name"`     // e.g. "gemini-2.5-flash", "mistral", "gpt-4o-mini"
	EmbedderModel string `mapstructure:"embedder_model"` // must stay fixed once a store is populated

	// Ollama configuration (only used when provider is "ollama")
	OllamaHost string `mapstructure:"ollama_host"`

	// Corpus and storage locations
	CatalogDir   string `mapstructure:"catalog_dir"`   // directory tree scanned for source documents
	StorePath    string `mapstructure:"store_path"`    // persistent vector store directory
	Collection   string `mapstructure:"collection"`    // vector collection name
	SnapshotPath string `mapstructure:"snapshot_path"` // flat snapshot export target

	// Chunking configuration
	ChunkSize    int  `mapstructure:"chunk_size"`
	ChunkOverlap int  `mapstructure:"chunk_overlap"`
	PerPage      bool `mapstructure:"per_page"`   // chunk paginated documents page by page
	Structured   bool `mapstructure:"structured"` // also load JSON/JSONL/YAML records

	// Retrieval and history configuration
	TopK            int `mapstructure:"top_k"`
	HistoryMaxChars int `mapstructure:"history_max_chars"`

	// EmbedPerMinute paces embedding requests to stay under provider quotas.
	EmbedPerMinute int `mapstructure:"embed_per_minute"`

	// Debug enables debug-level logging.
	Debug bool `mapstructure:"debug"`
}

// Load loads configuration with priority: env vars > config file > defaults.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".advisor")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v, home)

	v.SetEnvPrefix("ADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values on the given viper instance.
func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("embedder_model", "gemini-embedding-001")
	v.SetDefault("ollama_host", "http://localhost:11434")

	v.SetDefault("catalog_dir", "catalog")
	v.SetDefault("store_path", filepath.Join(home, ".advisor", "store"))
	v.SetDefault("collection", DefaultCollection)
	v.SetDefault("snapshot_path", DefaultSnapshotFile)

	v.SetDefault("chunk_size", 1000)
	v.SetDefault("chunk_overlap", 200)
	v.SetDefault("per_page", true)
	v.SetDefault("structured", true)

	v.SetDefault("top_k", 3)
	v.SetDefault("history_max_chars", 2000)
	v.SetDefault("embed_per_minute", 300)

	v.SetDefault("debug", false)
}

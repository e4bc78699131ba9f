package rag

import (
	"context"
	"fmt"

	"github.com/campuskit/advisor/internal/catalog"
	"github.com/campuskit/advisor/internal/chunk"
	"github.com/campuskit/advisor/internal/index"
	"github.com/campuskit/advisor/internal/log"
)

// Generator produces a model response for a fully composed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source loads the raw catalog documents to index.
type Source interface {
	Load() ([]catalog.Document, error)
}

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	Documents int
	Chunks    int
	Added     int
	Skipped   int
}

// Pipeline is the full question-answering flow over one shared index.
type Pipeline struct {
	source        Source
	chunkCfg      chunk.Config
	index         Index
	retriever     *Retriever
	generator     Generator
	historyBudget int
	logger        log.Logger
}

// Config wires a pipeline's collaborators.
type Config struct {
	Source        Source
	ChunkConfig   chunk.Config
	Index         Index
	Embed         EmbedFunc
	Generator     Generator
	TopK          int
	HistoryBudget int
	Logger        log.Logger
}

// New assembles a pipeline.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	return &Pipeline{
		source:        cfg.Source,
		chunkCfg:      cfg.ChunkConfig,
		index:         cfg.Index,
		retriever:     NewRetriever(cfg.Index, cfg.Embed, cfg.TopK),
		generator:     cfg.Generator,
		historyBudget: cfg.HistoryBudget,
		logger:        logger,
	}
}

// Ingest loads the catalog, chunks it and indexes every chunk whose id is not
// already present. Re-running over an unchanged catalog adds nothing.
func (p *Pipeline) Ingest(ctx context.Context) (IngestStats, error) {
	docs, err := p.source.Load()
	if err != nil {
		return IngestStats{}, fmt.Errorf("loading catalog: %w", err)
	}

	chunks := chunk.Documents(docs, p.chunkCfg)
	entries := make([]index.Entry, 0, len(chunks))
	for _, c := range chunks {
		entries = append(entries, index.Entry{
			ID:       c.ID,
			Content:  c.Content,
			Metadata: c.Metadata(),
		})
	}

	added, err := p.index.UpsertIfAbsent(ctx, entries)
	if err != nil {
		return IngestStats{}, fmt.Errorf("indexing chunks: %w", err)
	}

	stats := IngestStats{
		Documents: len(docs),
		Chunks:    len(chunks),
		Added:     added,
		Skipped:   len(chunks) - added,
	}
	p.logger.Info("ingestion complete",
		"documents", stats.Documents,
		"chunks", stats.Chunks,
		"added", stats.Added,
		"skipped", stats.Skipped)
	return stats, nil
}

// Answer runs the complete flow for one question within a session: ingest,
// retrieve, record the question, compose the prompt, generate, record the
// answer. Ingesting on every call keeps documents added to the catalog
// mid-session retrievable; skip-if-present upserts make the repeat cheap.
//
// Answer always returns displayable text. Ingestion and retrieval failures
// degrade to answering from whatever is already indexed; generation failures
// become an "Error: ..." answer. Either way the exchange is recorded so the
// conversation stays coherent.
func (p *Pipeline) Answer(ctx context.Context, session *Session, query string) string {
	if _, err := p.Ingest(ctx); err != nil {
		p.logger.Warn("ingestion failed, answering from the existing index",
			"session", session.ID, "error", err)
	}

	results, err := p.retriever.Retrieve(ctx, query)
	if err != nil {
		p.logger.Warn("retrieval failed, answering without context",
			"session", session.ID, "error", err)
		results = nil
	}

	session.History.Add(RoleUser, query)
	historyText := session.History.Serialize(p.historyBudget)

	prompt := Compose(query, results, historyText, true)

	answer, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		answer = "Error: " + err.Error()
	}

	session.History.Add(RoleAssistant, answer)
	return answer
}

package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/campuskit/advisor/internal/catalog"
	"github.com/campuskit/advisor/internal/chunk"
	"github.com/campuskit/advisor/internal/index"
	"github.com/campuskit/advisor/internal/log"
)

type mockIndex struct {
	seen     map[string]bool
	results  []index.Result
	queryErr error

	lastEmbedding []float32
	lastTopK      int
}

func newMockIndex() *mockIndex {
	return &mockIndex{seen: map[string]bool{}}
}

func (m *mockIndex) UpsertIfAbsent(_ context.Context, entries []index.Entry) (int, error) {
	added := 0
	for _, e := range entries {
		if m.seen[e.ID] {
			continue
		}
		m.seen[e.ID] = true
		added++
	}
	return added, nil
}

func (m *mockIndex) Query(_ context.Context, embedding []float32, topK int) ([]index.Result, error) {
	m.lastEmbedding = embedding
	m.lastTopK = topK
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.results, nil
}

func (m *mockIndex) Count() int { return len(m.seen) }

type mockGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

type mockSource struct {
	docs []catalog.Document
	err  error
}

func (m *mockSource) Load() ([]catalog.Document, error) { return m.docs, m.err }

func fakeEmbed(_ context.Context, text string) ([]float32, error) {
	return []float32{float32(len(text)), 1}, nil
}

func testPipeline(idx *mockIndex, gen *mockGenerator, src Source) *Pipeline {
	return New(Config{
		Source:        src,
		ChunkConfig:   chunk.Config{Size: 1000, Overlap: 100},
		Index:         idx,
		Embed:         fakeEmbed,
		Generator:     gen,
		TopK:          3,
		HistoryBudget: 2000,
		Logger:        log.NewNop(),
	})
}

func TestIngest(t *testing.T) {
	idx := newMockIndex()
	src := &mockSource{docs: []catalog.Document{
		{ID: "cs101", Title: "Intro to CS", Content: "programming basics"},
		{ID: "math100", Title: "Calculus", Content: "limits and derivatives"},
	}}
	p := testPipeline(idx, &mockGenerator{}, src)

	stats, err := p.Ingest(context.Background())
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if stats.Documents != 2 || stats.Chunks != 2 || stats.Added != 2 || stats.Skipped != 0 {
		t.Errorf("stats = %+v", stats)
	}

	// second run over the same catalog is a no-op
	stats, err = p.Ingest(context.Background())
	if err != nil {
		t.Fatalf("second Ingest() error = %v", err)
	}
	if stats.Added != 0 || stats.Skipped != 2 {
		t.Errorf("second run stats = %+v, want nothing added", stats)
	}
}

func TestIngestSourceError(t *testing.T) {
	src := &mockSource{err: errors.New("directory unreadable")}
	p := testPipeline(newMockIndex(), &mockGenerator{}, src)

	if _, err := p.Ingest(context.Background()); err == nil {
		t.Fatal("Ingest() returned nil error for failing source")
	}
}

func TestAnswerRecordsExchange(t *testing.T) {
	idx := newMockIndex()
	idx.results = []index.Result{
		{Content: "CS101 covers programming basics.", Metadata: map[string]string{"title": "Intro to CS"}},
	}
	gen := &mockGenerator{answer: "CS101 is the introductory course."}
	p := testPipeline(idx, gen, &mockSource{})

	session := NewSession()
	answer := p.Answer(context.Background(), session, "What is CS101?")

	if answer != "CS101 is the introductory course." {
		t.Errorf("answer = %q", answer)
	}
	turns := session.History.Turns()
	if len(turns) != 2 {
		t.Fatalf("history has %d turns, want 2", len(turns))
	}
	if turns[0].Role != RoleUser || turns[0].Content != "What is CS101?" {
		t.Errorf("turns[0] = %+v", turns[0])
	}
	if turns[1].Role != RoleAssistant || turns[1].Content != answer {
		t.Errorf("turns[1] = %+v", turns[1])
	}
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "Intro to CS") {
		t.Error("retrieved context missing from the composed prompt")
	}
}

func TestAnswerSecondTurnSeesFirst(t *testing.T) {
	gen := &mockGenerator{answer: "ok"}
	p := testPipeline(newMockIndex(), gen, &mockSource{})

	session := NewSession()
	p.Answer(context.Background(), session, "my name is Dana")
	p.Answer(context.Background(), session, "what is my name?")

	if len(gen.prompts) != 2 {
		t.Fatalf("generator called %d times, want 2", len(gen.prompts))
	}
	second := gen.prompts[1]
	if !strings.Contains(second, "user: my name is Dana") {
		t.Error("second prompt lacks the first user turn")
	}
	if !strings.Contains(second, "assistant: ok") {
		t.Error("second prompt lacks the first assistant turn")
	}
	if !strings.Contains(second, "prefer the chat history") {
		t.Error("second prompt lacks the history priority directive")
	}
}

func TestAnswerGenerationFailure(t *testing.T) {
	gen := &mockGenerator{err: errors.New("model unavailable")}
	p := testPipeline(newMockIndex(), gen, &mockSource{})

	session := NewSession()
	answer := p.Answer(context.Background(), session, "q")

	if answer != "Error: model unavailable" {
		t.Errorf("answer = %q", answer)
	}
	turns := session.History.Turns()
	if len(turns) != 2 || turns[1].Content != answer {
		t.Errorf("error answer not recorded in history: %+v", turns)
	}
}

func TestAnswerRetrievalFailureDegrades(t *testing.T) {
	idx := newMockIndex()
	idx.queryErr = errors.New("store offline")
	gen := &mockGenerator{answer: "best effort"}
	p := testPipeline(idx, gen, &mockSource{})

	answer := p.Answer(context.Background(), NewSession(), "q")
	if answer != "best effort" {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(gen.prompts[0], "(no retrieved documents)") {
		t.Error("prompt should carry the empty context placeholder after retrieval failure")
	}
}

func TestAnswerIndexesNewDocuments(t *testing.T) {
	idx := newMockIndex()
	gen := &mockGenerator{answer: "ok"}
	src := &mockSource{}
	p := testPipeline(idx, gen, src)

	session := NewSession()
	p.Answer(context.Background(), session, "anything new?")
	if idx.Count() != 0 {
		t.Fatalf("index count = %d before any documents exist", idx.Count())
	}

	// a document appears in the catalog mid-session
	src.docs = []catalog.Document{{ID: "late", Title: "Late Addition", Content: "newly added course"}}

	p.Answer(context.Background(), session, "anything new now?")
	if !idx.seen["late_chunk_0"] {
		t.Error("document added mid-session was not indexed by the next answer")
	}
}

func TestAnswerSourceFailureStillAnswers(t *testing.T) {
	gen := &mockGenerator{answer: "from what I have"}
	src := &mockSource{err: errors.New("catalog unreadable")}
	p := testPipeline(newMockIndex(), gen, src)

	answer := p.Answer(context.Background(), NewSession(), "q")
	if answer != "from what I have" {
		t.Errorf("answer = %q, want generation to proceed despite ingest failure", answer)
	}
}

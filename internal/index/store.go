// Package index persists chunk embeddings in an embedded vector store and
// answers nearest-neighbor queries by cosine similarity.
//
// The store is durable across process restarts and enforces id uniqueness:
// upserts skip ids that are already present, which makes bulk indexing
// idempotent but not update-aware — content changes under an unchanged id
// are not detected.
package index

import (
	"context"
	"fmt"
	"runtime"

	"github.com/gofrs/flock"
	chromem "github.com/philippgille/chromem-go"

	"github.com/campuskit/advisor/internal/log"
)

// Entry is one chunk to index: text plus provenance metadata, keyed by a
// deterministic chunk id. Embedding may be left nil; missing vectors are
// computed by the collection's embedding function on insert.
type Entry struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  map[string]string
}

// Result is a single search hit. Similarity is cosine similarity, i.e.
// 1 minus cosine distance, roughly in [-1, 1].
type Result struct {
	ID         string
	Content    string
	Metadata   map[string]string
	Similarity float32
}

// Store wraps a persistent chromem collection. The store directory is
// guarded by a file lock; skip-if-present upserts make duplicate ingestion
// within one process safe, but two processes racing on first-time inserts
// are not, so a second Open on the same path fails until Close.
type Store struct {
	db     *chromem.DB
	col    *chromem.Collection
	embed  chromem.EmbeddingFunc
	lock   *flock.Flock
	logger log.Logger
}

// Open opens (or creates) the persistent store at path and the named
// collection inside it. chromem computes cosine similarity over normalized
// vectors, matching the catalog's similarity contract.
func Open(path, collection string, embed chromem.EmbeddingFunc, logger log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking store at %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("store at %s is in use by another process", path)
	}

	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("opening vector store at %s: %w", path, err)
	}

	col, err := db.GetOrCreateCollection(collection, nil, embed)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("opening collection %q: %w", collection, err)
	}

	return &Store{db: db, col: col, embed: embed, lock: lock, logger: logger}, nil
}

// Close releases the store's file lock. The underlying data is already
// durable; chromem persists on every write.
func (s *Store) Close() error {
	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("releasing store lock: %w", err)
	}
	return nil
}

// UpsertIfAbsent inserts every entry whose id is not already present and
// leaves existing ids untouched — no update, no error. Returns the number of
// entries actually added.
func (s *Store) UpsertIfAbsent(ctx context.Context, entries []Entry) (int, error) {
	var docs []chromem.Document
	for _, e := range entries {
		if _, err := s.col.GetByID(ctx, e.ID); err == nil {
			continue // present: not re-embedded, not re-inserted
		}
		docs = append(docs, chromem.Document{
			ID:        e.ID,
			Content:   e.Content,
			Embedding: e.Embedding,
			Metadata:  e.Metadata,
		})
	}

	if len(docs) == 0 {
		return 0, nil
	}

	if err := s.col.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return 0, fmt.Errorf("adding %d entries: %w", len(docs), err)
	}

	s.logger.Debug("indexed entries",
		"added", len(docs), "skipped", len(entries)-len(docs))
	return len(docs), nil
}

// Query returns up to topK entries ordered by descending similarity to the
// given vector. Fewer results are returned when the collection holds fewer
// entries; an empty collection yields an empty result set.
func (s *Store) Query(ctx context.Context, embedding []float32, topK int) ([]Result, error) {
	count := s.col.Count()
	if count == 0 || topK <= 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	hits, err := s.col.QueryEmbedding(ctx, embedding, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		results = append(results, Result{
			ID:         h.ID,
			Content:    h.Content,
			Metadata:   h.Metadata,
			Similarity: h.Similarity,
		})
	}
	return results, nil
}

// Count returns the number of indexed entries.
func (s *Store) Count() int {
	return s.col.Count()
}

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Snapshot is the portable JSON image of the collection: parallel slices
// aligned by position, plus the entry count.
type Snapshot struct {
	Documents []string            `json:"documents"`
	IDs       []string            `json:"ids"`
	Metadatas []map[string]string `json:"metadatas"`
	Count     int                 `json:"count"`
}

// Export writes a point-in-time snapshot of the whole collection to path,
// sorted by id so repeated exports of the same state are byte-identical.
// The snapshot is advisory; the persistent store remains authoritative.
func (s *Store) Export(ctx context.Context, path string) error {
	snap := Snapshot{
		Documents: []string{},
		IDs:       []string{},
		Metadatas: []map[string]string{},
	}

	count := s.col.Count()
	if count > 0 {
		// chromem exposes no enumeration, so page everything out through a
		// single max-width similarity query against an arbitrary probe vector.
		probe, err := s.embed(ctx, "snapshot")
		if err != nil {
			return fmt.Errorf("computing probe embedding: %w", err)
		}
		hits, err := s.col.QueryEmbedding(ctx, probe, count, nil, nil)
		if err != nil {
			return fmt.Errorf("reading collection: %w", err)
		}

		sort.Slice(hits, func(i, j int) bool { return hits[i].ID < hits[j].ID })
		for _, h := range hits {
			snap.Documents = append(snap.Documents, h.Content)
			snap.IDs = append(snap.IDs, h.ID)
			snap.Metadatas = append(snap.Metadatas, h.Metadata)
		}
		snap.Count = len(hits)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot to %s: %w", path, err)
	}

	s.logger.Info("exported snapshot", "path", path, "count", snap.Count)
	return nil
}

package chunk

import (
	"fmt"
	"strconv"

	"github.com/campuskit/advisor/internal/catalog"
)

// Mode selects the chunking strategy for paginated documents.
type Mode int

const (
	// ModeWholeDocument splits the concatenated content without page
	// segmentation.
	ModeWholeDocument Mode = iota

	// ModePerPage chunks each page independently so retrieval can report
	// which page a fact came from.
	ModePerPage
)

// Config holds chunking parameters.
type Config struct {
	Size    int
	Overlap int
	Mode    Mode
}

// Chunk is one retrievable text segment derived from a document. Its ID is a
// pure function of the document id and the split position, so re-chunking
// unchanged input always produces identical ids.
type Chunk struct {
	ID        string
	Title     string
	Content   string
	Category  string
	SourceDoc string

	// PageIndex is the zero-based source page, or -1 when the chunk is not
	// page-scoped.
	PageIndex int

	// PageTables reports whether the source page carried tables.
	PageTables bool
}

// Metadata renders the chunk's provenance as index metadata.
func (c Chunk) Metadata() map[string]string {
	m := map[string]string{
		"title":    c.Title,
		"category": c.Category,
		"source":   c.SourceDoc,
	}
	if c.PageIndex >= 0 {
		m["page_index"] = strconv.Itoa(c.PageIndex)
	}
	if c.PageTables {
		m["has_page_tables"] = "true"
	}
	return m
}

// Documents chunks a batch of normalized documents.
//
// Table documents bypass splitting entirely: one table, one chunk, regardless
// of the configured size. Documents with pages are chunked page by page in
// ModePerPage. A document with no content and no pages yields zero chunks.
func Documents(docs []catalog.Document, cfg Config) []Chunk {
	var chunks []Chunk
	for _, doc := range docs {
		chunks = append(chunks, one(doc, cfg)...)
	}
	return chunks
}

func one(doc catalog.Document, cfg Config) []Chunk {
	if doc.Empty() {
		return nil
	}

	// Tables are atomic retrieval units; never split.
	if doc.IsTable() {
		return []Chunk{{
			ID:        doc.ID + "_chunk_0",
			Title:     doc.Title,
			Content:   doc.Content,
			Category:  doc.Category,
			SourceDoc: doc.SourceRef,
			PageIndex: -1,
		}}
	}

	if cfg.Mode == ModePerPage && len(doc.Pages) > 0 {
		return perPage(doc, cfg)
	}

	pieces := Split(doc.Content, cfg.Size, cfg.Overlap)
	chunks := make([]Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, Chunk{
			ID:        fmt.Sprintf("%s_chunk_%d", doc.ID, i),
			Title:     doc.Title,
			Content:   piece,
			Category:  doc.Category,
			SourceDoc: doc.ID,
			PageIndex: -1,
		})
	}
	return chunks
}

// perPage chunks each page independently; chunk ids embed the page index.
func perPage(doc catalog.Document, cfg Config) []Chunk {
	var chunks []Chunk
	for p, page := range doc.Pages {
		if page.Text == "" {
			continue
		}
		for i, piece := range Split(page.Text, cfg.Size, cfg.Overlap) {
			chunks = append(chunks, Chunk{
				ID:         fmt.Sprintf("%s_p%d_chunk_%d", doc.ID, p, i),
				Title:      doc.Title,
				Content:    piece,
				Category:   doc.Category,
				SourceDoc:  doc.ID,
				PageIndex:  p,
				PageTables: len(page.Tables) > 0,
			})
		}
	}
	return chunks
}

package chunk

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/campuskit/advisor/internal/catalog"
)

func TestDocumentsWholeDocument(t *testing.T) {
	docs := []catalog.Document{{
		ID:       "handbook",
		Title:    "Student Handbook",
		Category: "policies",
		Content:  strings.Repeat("enrollment rules and deadlines. ", 20),
	}}

	chunks := Documents(docs, Config{Size: 100, Overlap: 20, Mode: ModeWholeDocument})
	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want several", len(chunks))
	}
	for i, c := range chunks {
		wantID := fmt.Sprintf("handbook_chunk_%d", i)
		if c.ID != wantID {
			t.Errorf("chunks[%d].ID = %q, want %q", i, c.ID, wantID)
		}
		if c.SourceDoc != "handbook" || c.Title != "Student Handbook" || c.Category != "policies" {
			t.Errorf("chunks[%d] provenance = %+v", i, c)
		}
		if c.PageIndex != -1 {
			t.Errorf("chunks[%d].PageIndex = %d, want -1", i, c.PageIndex)
		}
	}
}

func TestDocumentsPerPage(t *testing.T) {
	docs := []catalog.Document{{
		ID:    "catalog2026",
		Title: "Course Catalog",
		Pages: []catalog.Page{
			{Text: "page one text about admissions"},
			{Text: ""},
			{Text: "page three text", Tables: []catalog.Table{{{"Course", "Credits"}, {"CS101", "4"}}}},
		},
	}}

	chunks := Documents(docs, Config{Size: 1000, Overlap: 0, Mode: ModePerPage})
	if len(chunks) != 2 {
		t.Fatalf("len(chunks) = %d, want 2 (empty page skipped)", len(chunks))
	}

	if chunks[0].ID != "catalog2026_p0_chunk_0" {
		t.Errorf("chunks[0].ID = %q", chunks[0].ID)
	}
	if chunks[0].PageIndex != 0 {
		t.Errorf("chunks[0].PageIndex = %d, want 0", chunks[0].PageIndex)
	}
	if chunks[1].ID != "catalog2026_p2_chunk_0" {
		t.Errorf("chunks[1].ID = %q", chunks[1].ID)
	}
	if !chunks[1].PageTables {
		t.Error("chunks[1].PageTables = false, want true")
	}

	meta := chunks[1].Metadata()
	if meta["page_index"] != "2" {
		t.Errorf("metadata page_index = %q, want %q", meta["page_index"], "2")
	}
	if meta["has_page_tables"] != "true" {
		t.Errorf("metadata has_page_tables = %q, want %q", meta["has_page_tables"], "true")
	}
}

func TestDocumentsTableDocAtomic(t *testing.T) {
	table := catalog.Table{{"Course", "Credits"}, {"CS101", "4"}}
	docs := []catalog.Document{{
		ID:        "handbook_table_0",
		Title:     "Student Handbook table 0",
		Content:   strings.Repeat(table.Markdown()+"\n", 50),
		SourceRef: "handbook",
	}}

	// size far smaller than content: table docs must stay one chunk
	chunks := Documents(docs, Config{Size: 64, Overlap: 16, Mode: ModeWholeDocument})
	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
	if chunks[0].ID != "handbook_table_0_chunk_0" {
		t.Errorf("ID = %q, want %q", chunks[0].ID, "handbook_table_0_chunk_0")
	}
	if chunks[0].SourceDoc != "handbook" {
		t.Errorf("SourceDoc = %q, want parent %q", chunks[0].SourceDoc, "handbook")
	}
}

func TestDocumentsSkipsEmpty(t *testing.T) {
	docs := []catalog.Document{
		{ID: "empty", Content: "   "},
		{ID: "real", Content: "some actual content"},
	}

	chunks := Documents(docs, Config{Size: 1000, Overlap: 0, Mode: ModeWholeDocument})
	if len(chunks) != 1 || chunks[0].SourceDoc != "real" {
		t.Fatalf("chunks = %+v, want only the non-empty document", chunks)
	}
}

func TestDocumentsDeterministic(t *testing.T) {
	docs := []catalog.Document{{
		ID:      "doc",
		Content: strings.Repeat("sentence about prerequisites. ", 30),
	}}
	cfg := Config{Size: 120, Overlap: 30, Mode: ModeWholeDocument}

	a := Documents(docs, cfg)
	b := Documents(docs, cfg)
	if !reflect.DeepEqual(a, b) {
		t.Error("chunking the same input twice produced different output")
	}
}

func TestMetadataOmitsPageFieldsForWholeDoc(t *testing.T) {
	c := Chunk{ID: "d_chunk_0", Title: "T", Category: "c", SourceDoc: "d", PageIndex: -1}
	meta := c.Metadata()
	if _, ok := meta["page_index"]; ok {
		t.Error("whole-document chunk metadata should not carry page_index")
	}
	if meta["source"] != "d" || meta["title"] != "T" || meta["category"] != "c" {
		t.Errorf("metadata = %v", meta)
	}
}

package catalog

import (
	"testing"

	"github.com/campuskit/advisor/internal/log"
)

func TestNormalizeRecords(t *testing.T) {
	tests := []struct {
		name        string
		raw         Raw
		wantID      string
		wantContent string
	}{
		{
			name:        "plain string source",
			raw:         Raw{Text: "Course X requires Math 101."},
			wantID:      "doc_0",
			wantContent: "Course X requires Math 101.",
		},
		{
			name:        "record with content field",
			raw:         Raw{Fields: map[string]any{"id": "cs101", "content": "Intro to CS"}},
			wantID:      "cs101",
			wantContent: "Intro to CS",
		},
		{
			name:        "record falls back to text field",
			raw:         Raw{Fields: map[string]any{"id": "cs102", "text": "Data structures"}},
			wantID:      "cs102",
			wantContent: "Data structures",
		},
		{
			name:        "record falls back to body field",
			raw:         Raw{Fields: map[string]any{"id": "cs103", "body": "Algorithms"}},
			wantID:      "cs103",
			wantContent: "Algorithms",
		},
		{
			name:        "content wins over text and body",
			raw:         Raw{Fields: map[string]any{"id": "cs104", "content": "a", "text": "b", "body": "c"}},
			wantID:      "cs104",
			wantContent: "a",
		},
		{
			name:        "missing id synthesized from ordinal",
			raw:         Raw{Fields: map[string]any{"content": "anonymous"}},
			wantID:      "doc_0",
			wantContent: "anonymous",
		},
		{
			name:        "numeric id stringified",
			raw:         Raw{Fields: map[string]any{"id": 42, "content": "numbered"}},
			wantID:      "42",
			wantContent: "numbered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := Normalize([]Raw{tt.raw}, log.NewNop())
			if len(docs) != 1 {
				t.Fatalf("got %d documents, want 1", len(docs))
			}
			if docs[0].ID != tt.wantID {
				t.Errorf("ID = %q, want %q", docs[0].ID, tt.wantID)
			}
			if docs[0].Content != tt.wantContent {
				t.Errorf("Content = %q, want %q", docs[0].Content, tt.wantContent)
			}
		})
	}
}

func TestNormalizeDropsEmptyDocuments(t *testing.T) {
	raws := []Raw{
		{Fields: map[string]any{"id": "empty"}},
		{Text: ""},
		{Fields: map[string]any{"id": "kept", "content": "something"}},
	}

	docs := Normalize(raws, log.NewNop())
	if len(docs) != 1 || docs[0].ID != "kept" {
		t.Fatalf("got %v, want only the non-empty document", docs)
	}
}

func TestNormalizeSynthesizesTableDocuments(t *testing.T) {
	parent := Document{
		ID:       "handbook",
		Title:    "Student Handbook",
		Content:  "General rules.",
		Category: "policies",
		Tables: []Table{
			{{"Course", "Credits"}, {"Math 101", "3"}},
			{{"Term", "Deadline"}, {"Fall", "Sep 1"}},
		},
	}

	docs := Normalize([]Raw{{Doc: &parent}}, log.NewNop())
	if len(docs) != 3 {
		t.Fatalf("got %d documents, want parent + 2 table docs", len(docs))
	}

	first := docs[1]
	if first.ID != "handbook_table_0" {
		t.Errorf("table doc id = %q, want handbook_table_0", first.ID)
	}
	if first.SourceRef != "handbook" {
		t.Errorf("SourceRef = %q, want handbook", first.SourceRef)
	}
	if !first.IsTable() {
		t.Error("table doc should report IsTable")
	}
	if first.Category != "policies" {
		t.Errorf("Category = %q, want inherited policies", first.Category)
	}
	if docs[2].ID != "handbook_table_1" {
		t.Errorf("second table doc id = %q, want handbook_table_1", docs[2].ID)
	}
}

func TestTableMarkdown(t *testing.T) {
	table := Table{
		{"Course", "Prerequisite"},
		{"Course X", "Math 101"},
		{"Course Y", "None"},
	}

	want := "| Course | Prerequisite |\n" +
		"| --- | --- |\n" +
		"| Course X | Math 101 |\n" +
		"| Course Y | None |"
	if got := table.Markdown(); got != want {
		t.Errorf("Markdown() =\n%s\nwant\n%s", got, want)
	}

	if got := (Table{}).Markdown(); got != "" {
		t.Errorf("empty table Markdown() = %q, want empty", got)
	}
}

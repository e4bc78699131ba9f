package catalog

import "strings"

// Document is the uniform representation every source is normalized into.
// ID must be stable across runs for the same logical source so re-indexing
// does not duplicate entries.
type Document struct {
	ID       string
	Title    string
	Content  string
	Category string

	// Pages carries per-page text and tables for paginated sources.
	// Ordering is meaningful: the page index is retrievable provenance.
	Pages []Page

	// Tables collects every table extracted from the document.
	Tables []Table

	// SourceRef names the parent document for synthetic table documents;
	// empty for regular documents.
	SourceRef string
}

// Page is one page of a paginated document.
type Page struct {
	Text   string
	Tables []Table
}

// Table is a rectangular grid of string cells. Tables are indexed as atomic
// units and never split by the chunker.
type Table [][]string

// Empty reports whether the document carries nothing indexable.
func (d Document) Empty() bool {
	return d.Content == "" && len(d.Pages) == 0 && len(d.Tables) == 0
}

// IsTable reports whether the document is a synthetic per-table document.
func (d Document) IsTable() bool {
	return d.SourceRef != ""
}

// Markdown renders the table in markdown form, first row as header.
// An empty table renders to the empty string.
func (t Table) Markdown() string {
	if len(t) == 0 {
		return ""
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |")
	}

	writeRow(t[0])
	b.WriteString("\n| ")
	b.WriteString(strings.Join(repeat("---", len(t[0])), " | "))
	b.WriteString(" |")
	for _, row := range t[1:] {
		b.WriteString("\n")
		writeRow(row)
	}
	return b.String()
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

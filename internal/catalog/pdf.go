package catalog

import (
	"fmt"
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/model"
)

// loadPDF extracts page text and tables from a PDF via tabula. The document
// keeps per-page structure so the chunker can preserve page provenance, and
// all tables are collected so the normalizer can emit per-table documents.
func (l *Loader) loadPDF(path string) ([]Raw, error) {
	extracted, warnings, err := tabula.Open(path).Document()
	if err != nil {
		return nil, fmt.Errorf("extracting PDF: %w", err)
	}
	if len(warnings) > 0 {
		l.logger.Debug("pdf extraction warnings", "path", path, "count", len(warnings))
	}

	var (
		pages     []Page
		tables    []Table
		pageTexts []string
	)
	for _, p := range extracted.Pages {
		page := Page{Text: strings.TrimSpace(p.ExtractText())}
		for _, t := range p.ExtractTables() {
			grid := cellGrid(t)
			page.Tables = append(page.Tables, grid)
			tables = append(tables, grid)
		}
		pages = append(pages, page)
		pageTexts = append(pageTexts, page.Text)
	}

	content := strings.TrimSpace(strings.Join(pageTexts, "\n"))
	if content == "" && len(tables) == 0 {
		return nil, nil
	}

	title := strings.TrimSpace(extracted.Metadata.Title)
	if title == "" {
		title = firstLineTitle(content)
	}

	doc := Document{
		ID:       stem(path),
		Title:    title,
		Content:  content,
		Category: category(path),
		Pages:    pages,
		Tables:   tables,
	}
	return []Raw{{Doc: &doc}}, nil
}

// cellGrid flattens a tabula table into a plain string grid.
func cellGrid(t *model.Table) Table {
	grid := make(Table, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, strings.TrimSpace(cell.Text))
		}
		grid = append(grid, cells)
	}
	return grid
}

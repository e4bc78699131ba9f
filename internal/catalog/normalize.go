package catalog

import (
	"fmt"

	"github.com/campuskit/advisor/internal/log"
)

// Raw is a single unnormalized source document. Exactly one of the fields is
// set; the union is resolved once here so downstream components only ever see
// Document values.
type Raw struct {
	// Text is a plain string source (whole document content).
	Text string

	// Fields is a structured record with loosely conventional field names.
	Fields map[string]any

	// Doc is an already-shaped document, e.g. produced by the PDF extractor.
	Doc *Document
}

// Normalize converts heterogeneous raw sources into uniform Documents.
//
// Resolution rules:
//   - content field order for records: "content", then "text", then "body"
//   - a missing id is synthesized as doc_<ordinal>
//   - every extracted table additionally becomes its own synthetic Document
//     (id "<parent>_table_<n>", SourceRef = parent id) so tables can be
//     retrieved independently of the surrounding prose
//   - documents with no content and no pages/tables are dropped
func Normalize(raws []Raw, logger log.Logger) []Document {
	docs := make([]Document, 0, len(raws))

	for i, raw := range raws {
		var doc Document
		switch {
		case raw.Doc != nil:
			doc = *raw.Doc
		case raw.Fields != nil:
			doc = fromRecord(raw.Fields, i)
		default:
			doc = Document{ID: fmt.Sprintf("doc_%d", i), Content: raw.Text}
		}

		if doc.ID == "" {
			doc.ID = fmt.Sprintf("doc_%d", i)
		}

		if doc.Empty() {
			logger.Debug("dropping empty document", "id", doc.ID)
			continue
		}

		docs = append(docs, doc)
		docs = append(docs, tableDocuments(doc)...)
	}

	return docs
}

// fromRecord maps a structured record onto a Document.
func fromRecord(fields map[string]any, ordinal int) Document {
	content := stringField(fields, "content")
	if content == "" {
		content = stringField(fields, "text")
	}
	if content == "" {
		content = stringField(fields, "body")
	}

	id := fmt.Sprintf("doc_%d", ordinal)
	if v, ok := fields["id"]; ok && v != nil {
		id = fmt.Sprint(v)
	}

	return Document{
		ID:       id,
		Title:    stringField(fields, "title"),
		Content:  content,
		Category: stringField(fields, "category"),
	}
}

// tableDocuments builds one synthetic document per extracted table.
func tableDocuments(parent Document) []Document {
	if len(parent.Tables) == 0 {
		return nil
	}

	out := make([]Document, 0, len(parent.Tables))
	for i, table := range parent.Tables {
		md := table.Markdown()
		if md == "" {
			continue
		}
		out = append(out, Document{
			ID:        fmt.Sprintf("%s_table_%d", parent.ID, i),
			Title:     fmt.Sprintf("%s table %d", parent.Title, i),
			Content:   md,
			Category:  parent.Category,
			SourceRef: parent.ID,
		})
	}
	return out
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

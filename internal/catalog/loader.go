package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/campuskit/advisor/internal/log"
)

// Loader scans a directory tree for source documents and normalizes them.
//
// Plain text (.txt), markdown (.md) and PDF (.pdf) files are always loaded.
// With structured mode enabled, JSON (.json), JSON lines (.jsonl, .ndjson)
// and YAML (.yml, .yaml) record files are loaded as well.
//
// Failure policy: a file that cannot be read or parsed logs a warning and is
// skipped; loading never aborts the batch because of one bad source.
type Loader struct {
	dir        string
	structured bool
	logger     log.Logger
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string, structured bool, logger log.Logger) *Loader {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Loader{dir: dir, structured: structured, logger: logger}
}

// Load reads every supported file under the root directory and returns the
// normalized documents. File order is sorted so synthesized ordinal ids stay
// stable across runs.
func (l *Loader) Load() ([]Document, error) {
	paths, err := l.collect()
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", l.dir, err)
	}

	var raws []Raw
	for _, path := range paths {
		fileRaws, err := l.loadFile(path)
		if err != nil {
			l.logger.Warn("skipping unreadable document", "path", path, "error", err)
			continue
		}
		raws = append(raws, fileRaws...)
	}

	docs := Normalize(raws, l.logger)
	l.logger.Debug("catalog loaded", "files", len(paths), "documents", len(docs))
	return docs, nil
}

// collect walks the directory tree and returns supported file paths, sorted.
func (l *Loader) collect() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if l.supported(strings.ToLower(filepath.Ext(path))) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func (l *Loader) supported(ext string) bool {
	switch ext {
	case ".txt", ".md", ".pdf":
		return true
	case ".json", ".jsonl", ".ndjson", ".yml", ".yaml":
		return l.structured
	}
	return false
}

// loadFile parses one file into raw documents.
func (l *Loader) loadFile(path string) ([]Raw, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return l.loadText(path)
	case ".pdf":
		return l.loadPDF(path)
	case ".json":
		return l.loadJSON(path)
	case ".jsonl", ".ndjson":
		return l.loadJSONL(path)
	case ".yml", ".yaml":
		return l.loadYAML(path)
	}
	return nil, fmt.Errorf("unsupported file type %s", path)
}

// loadText reads a plain text or markdown file into one document. The title
// is the first non-empty line, with markdown heading markers stripped.
func (l *Loader) loadText(path string) ([]Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, nil
	}

	doc := Document{
		ID:       stem(path),
		Title:    firstLineTitle(content),
		Content:  content,
		Category: category(path),
	}
	return []Raw{{Doc: &doc}}, nil
}

// loadJSON accepts either a single record object or an array of records.
func (l *Loader) loadJSON(path string) ([]Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return l.recordsFrom(path, value)
}

// loadJSONL parses one record per non-empty line. A malformed line is logged
// and skipped without failing the rest of the file.
func (l *Loader) loadJSONL(path string) ([]Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raws []Raw
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var fields map[string]any
		if err := json.Unmarshal([]byte(line), &fields); err != nil {
			l.logger.Warn("skipping malformed record line",
				"path", path, "line", i+1, "error", err)
			continue
		}
		raws = append(raws, Raw{Fields: fields})
	}
	return raws, nil
}

func (l *Loader) loadYAML(path string) ([]Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return l.recordsFrom(path, value)
}

// recordsFrom converts a decoded JSON/YAML value into raw records.
func (l *Loader) recordsFrom(path string, value any) ([]Raw, error) {
	switch v := value.(type) {
	case []any:
		var raws []Raw
		for _, item := range v {
			fields, ok := toFields(item)
			if !ok {
				l.logger.Warn("skipping non-record list item", "path", path)
				continue
			}
			raws = append(raws, Raw{Fields: fields})
		}
		return raws, nil
	default:
		fields, ok := toFields(value)
		if !ok {
			return nil, fmt.Errorf("expected a record or list of records")
		}
		return []Raw{{Fields: fields}}, nil
	}
}

// toFields normalizes decoded maps to string-keyed records. yaml.v3 already
// produces map[string]any for string-keyed mappings.
func toFields(value any) (map[string]any, bool) {
	fields, ok := value.(map[string]any)
	return fields, ok
}

// stem returns the file name without directory or extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// category derives the document category from the parent directory name.
func category(path string) string {
	return filepath.Base(filepath.Dir(path))
}

// firstLineTitle extracts the first non-empty line as the title.
func firstLineTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(line, "#"))
	}
	return ""
}

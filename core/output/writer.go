// Package output materializes normalized documents as Jekyll post files:
// YAML front-matter, a separator, then the Markdown content, written under
// a date-partitioned path.
package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sztupy/tumblr2ghpages/core"
)

// DefaultDir is where post files land unless configured otherwise.
const DefaultDir = "_posts/tumblr"

// Writer writes normalized documents to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory, creating it
// if missing. An empty outputDir falls back to DefaultDir.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		outputDir = DefaultDir
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Write serializes the document to {dir}/{date}/{date}-{id}-{slug}.md,
// overwriting any existing file at that path so re-running the import on
// the same post is idempotent.
func (w *Writer) Write(doc *core.NormalizedDocument) (string, error) {
	dir := filepath.Join(w.OutputDir, doc.Date)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	fm, err := yaml.Marshal(doc.FrontMatter)
	if err != nil {
		return "", fmt.Errorf("serializing front-matter for post %d: %w", doc.PostID, err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n")
	buf.WriteString(doc.Content)
	if !strings.HasSuffix(doc.Content, "\n") {
		buf.WriteByte('\n')
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%d-%s.md", doc.Date, doc.PostID, doc.Slug))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

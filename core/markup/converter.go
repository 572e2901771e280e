// Package markup implements the Converter interface.
// It turns the rendered HTML fragment of a post into Markdown, the format
// the generated Jekyll posts carry below their front-matter.
package markup

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// MarkdownConverter converts HTML to Markdown using html-to-markdown.
type MarkdownConverter struct{}

// New creates a MarkdownConverter.
func New() *MarkdownConverter {
	return &MarkdownConverter{}
}

// Convert turns an HTML fragment into Markdown.
func (c *MarkdownConverter) Convert(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}

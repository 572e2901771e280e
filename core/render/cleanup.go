package render

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Cleanup removes presentation-only style attributes and collapses any
// figure that wraps exactly one child (an image without a caption).
func Cleanup(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parsing fragment: %w", err)
	}

	doc.Find("*").RemoveAttr("style")

	doc.Find("figure").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() == 1 {
			if inner, err := s.Html(); err == nil {
				s.ReplaceWithHtml(inner)
			}
		}
	})

	return fragmentHTML(doc)
}

// StripTags returns the text content of an HTML fragment.
func StripTags(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return doc.Text()
}

// fragmentHTML serializes a parsed fragment back to HTML without the
// html/head/body scaffolding the parser adds.
func fragmentHTML(doc *goquery.Document) (string, error) {
	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing fragment: %w", err)
	}
	return out, nil
}

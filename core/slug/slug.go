// Package slug derives filesystem- and URL-safe post identifiers.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxLength bounds title-derived slugs.
const maxLength = 200

var disallowed = regexp.MustCompile(`[^a-z0-9-]`)

// Generate builds a slug for a post. Priority: the explicit slug when
// non-blank, then a normalized title, then the post id. The result is
// always transliterated to ASCII.
func Generate(explicit string, title string, id int64) string {
	s := strings.TrimSpace(explicit)
	if s == "" {
		s = fromTitle(title)
	}
	if s == "" {
		s = strconv.FormatInt(id, 10)
	}
	return Transliterate(s)
}

// fromTitle lowercases, hyphenates and strips the title, returning "" when
// nothing usable remains or the title is Tumblr's "no title" placeholder.
func fromTitle(title string) string {
	if title == "no title" {
		return ""
	}
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "-")
	s = disallowed.ReplaceAllString(s, "")
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	return s
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Transliterate maps non-ASCII characters to their closest ASCII
// equivalents by decomposing and dropping combining marks; anything still
// outside ASCII becomes a hyphen.
func Transliterate(s string) string {
	if decomposed, _, err := transform.String(stripMarks, s); err == nil {
		s = decomposed
	}
	var b strings.Builder
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

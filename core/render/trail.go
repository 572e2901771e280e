package render

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/sztupy/tumblr2ghpages/core"
)

// moreMarker is Tumblr's "content continues below" sentinel; it has no
// meaning outside the platform and is stripped from every fragment.
const moreMarker = "[[MORE]]"

// renderTrail renders the reblog chain oldest first. Every entry except a
// final one authored by the blog owner is wrapped in an attributed
// blockquote; the unwrapped entry's length is the post's own-text length.
func (r *Renderer) renderTrail(ctx context.Context, post *core.Post) (string, int) {
	var b strings.Builder
	ownLen := 0

	for i, entry := range post.Trail {
		quoted := i != len(post.Trail)-1 || entry.Blog.Name != r.blog

		cont := strings.ReplaceAll(entry.ContentRaw, moreMarker, "")
		if r.images != core.ImagesOff {
			cont = r.rewriteImages(ctx, cont, entry.Blog.Name)
		}
		if !quoted {
			ownLen = utf8.RuneCountInString(cont)
		}

		if quoted {
			fmt.Fprintf(&b, `<blockquote class="trail" data-id="%s" data-blog="%s">`, html.EscapeString(entry.Post.ID), html.EscapeString(entry.Blog.Name))
		}
		b.WriteString(cont)
		if quoted {
			b.WriteString("</blockquote>")
		}
	}

	return b.String(), ownLen
}

// rewriteImages points <img src> attributes at the asset cache, keyed by
// the trail entry's author. A failed fetch keeps the original URL.
func (r *Renderer) rewriteImages(ctx context.Context, fragment string, owner string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		slog.Warn("Failed to parse trail content", "error", err)
		return fragment
	}

	doc.Find("img").Each(func(_ int, el *goquery.Selection) {
		src, ok := el.Attr("src")
		if !ok || src == "" {
			return
		}
		resolved, err := r.resolver.Resolve(ctx, src, owner)
		if err != nil {
			slog.Warn("Failed to grab photo", "url", src, "error", err)
			return
		}
		el.SetAttr("src", resolved)
	})

	rewritten, err := fragmentHTML(doc)
	if err != nil {
		slog.Warn("Failed to serialize trail content", "error", err)
		return fragment
	}
	return rewritten
}

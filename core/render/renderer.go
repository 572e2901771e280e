// Package render builds the HTML fragment for a single post, dispatching
// on the post kind. Media references are rewritten through the asset
// resolver; the reblog trail is rendered as nested attributed blockquotes.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sztupy/tumblr2ghpages/core"
)

// Result holds the rendered fragment plus the values downstream stages need.
type Result struct {
	HTML string
	// Title overrides the normalizer's fallback title when non-empty.
	Title string
	// OwnTextLength is the length of the blog owner's own (non-reblogged)
	// content; it feeds the tag classifier.
	OwnTextLength int
}

// Renderer produces the HTML fragment of a post.
type Renderer struct {
	resolver core.AssetResolver
	blog     string
	images   core.ImageMode
}

// New creates a Renderer for the given blog.
func New(resolver core.AssetResolver, opts core.Options) *Renderer {
	return &Renderer{
		resolver: resolver,
		blog:     opts.Blog,
		images:   opts.Images,
	}
}

// Render builds the fragment for a post: the kind-specific content, then
// the reblog trail, then a cleanup pass over the combined result.
func (r *Renderer) Render(ctx context.Context, post *core.Post) (*Result, error) {
	res := &Result{}
	var b strings.Builder

	switch post.Type {
	case "text":
		// Body arrives through the trail; nothing kind-specific to emit.
	case "link":
		if post.Title != "" {
			res.Title = post.Title
		} else if post.URL != "" {
			res.Title = post.URL
		}
		title := res.Title
		if title == "" {
			title = post.URL
		}
		fmt.Fprintf(&b, `<p><a class="main_link" href="%s">%s</a></p>`, html.EscapeString(post.URL), html.EscapeString(title))
		if len(post.Photos) > 0 {
			gallery, err := r.gallery(ctx, post, false)
			if err != nil {
				return nil, err
			}
			b.WriteString(gallery)
		}
		if post.Excerpt != "" {
			fmt.Fprintf(&b, `<blockquote class="excerpt">%s</blockquote>`, post.Excerpt)
		}
	case "photo":
		gallery, err := r.gallery(ctx, post, true)
		if err != nil {
			return nil, err
		}
		b.WriteString(gallery)
	case "audio":
		if t := audioTitle(post); t != "" {
			res.Title = t
		}
		if post.AlbumArt != "" {
			fmt.Fprintf(&b, `<p class="album_art"><img src="%s"></p>`, html.EscapeString(post.AlbumArt))
		}
		b.WriteString(post.Embed)
	case "quote":
		fmt.Fprintf(&b, `<blockquote class="quote">%s</blockquote>%s`, post.Text, post.QuoteSource)
	case "chat":
		b.WriteString(`<p class="dialogue">`)
		for _, line := range post.Dialogue {
			fmt.Fprintf(&b, "<strong>%s</strong> %s<br/>", html.EscapeString(line.Label), html.EscapeString(line.Phrase))
		}
		b.WriteString("</p>")
	case "video":
		b.WriteString(r.videoPlayer(ctx, post))
	case "answer":
		res.Title = post.Question
	}

	trailHTML, ownLen := r.renderTrail(ctx, post)
	b.WriteString(trailHTML)
	res.OwnTextLength = ownLen

	cleaned, err := Cleanup(b.String())
	if err != nil {
		return nil, fmt.Errorf("cleaning up post %d: %w", post.ID, err)
	}
	res.HTML = cleaned
	return res, nil
}

// gallery renders every photo of a post. When required is set, a photo with
// no resolvable size variant aborts the run; otherwise it is skipped with a
// warning.
func (r *Renderer) gallery(ctx context.Context, post *core.Post, required bool) (string, error) {
	owner := ownerFor(post)
	var b strings.Builder
	for _, photo := range post.Photos {
		frag, err := r.renderPhoto(ctx, photo, owner)
		if err != nil {
			if required {
				return "", fmt.Errorf("post %d: %w", post.ID, err)
			}
			slog.Warn("Failed to grab photo, skipping", "post_id", post.ID, "error", err)
			continue
		}
		b.WriteString(frag)
	}
	return b.String(), nil
}

// renderPhoto tries each size variant, widest first, until one resolves.
// Only when every candidate fails does it return an error, carrying the
// photo's raw data so the offending post can be located.
func (r *Renderer) renderPhoto(ctx context.Context, photo core.Photo, owner string) (string, error) {
	sizes := photo.Sizes()
	sort.SliceStable(sizes, func(i, j int) bool { return sizes[i].Width > sizes[j].Width })

	for _, size := range sizes {
		if size.URL == "" {
			continue
		}
		src, err := r.resolver.Resolve(ctx, size.URL, owner)
		if err != nil {
			slog.Warn("Failed to grab photo", "url", size.URL, "error", err)
			continue
		}
		img := fmt.Sprintf(`<img alt="%s" src="%s"/>`, html.EscapeString(photo.Caption), html.EscapeString(src))
		if photo.Caption != "" {
			return fmt.Sprintf("<p><figure>%s<figcaption>%s</figcaption></figure></p>", img, photo.Caption), nil
		}
		return fmt.Sprintf("<p>%s</p>", img), nil
	}

	raw, _ := json.Marshal(photo)
	return "", fmt.Errorf("no viable size variant for photo %s", raw)
}

// videoPlayer picks the widest embed variant and, when images are cached,
// rewrites its <source src> and <video poster> attributes through the
// asset resolver. Fetch failures keep the original URL.
func (r *Renderer) videoPlayer(ctx context.Context, post *core.Post) string {
	players := append([]core.Player(nil), post.Player...)
	sort.SliceStable(players, func(i, j int) bool { return players[i].Width > players[j].Width })
	player := players[0].EmbedCode

	if r.images == core.ImagesOff {
		return player
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(player))
	if err != nil {
		slog.Warn("Failed to parse video player", "post_id", post.ID, "error", err)
		return player
	}

	owner := ownerFor(post)
	rewrite := func(sel *goquery.Selection, attr string) {
		sel.Each(func(_ int, el *goquery.Selection) {
			src, ok := el.Attr(attr)
			if !ok || src == "" {
				return
			}
			resolved, err := r.resolver.Resolve(ctx, src, owner)
			if err != nil {
				slog.Warn("Failed to grab video media", "url", src, "post_id", post.ID, "error", err)
				return
			}
			el.SetAttr(attr, resolved)
		})
	}
	rewrite(doc.Find("source"), "src")
	rewrite(doc.Find("video"), "poster")

	rewritten, err := fragmentHTML(doc)
	if err != nil {
		slog.Warn("Failed to serialize video player", "post_id", post.ID, "error", err)
		return player
	}
	return rewritten
}

// ownerFor picks the owning author for a post's media: the reblog root,
// falling back to the trail root, then the post's own blog.
func ownerFor(post *core.Post) string {
	if post.RebloggedRootName != "" {
		return post.RebloggedRootName
	}
	if len(post.Trail) > 0 && post.Trail[0].Blog.Name != "" {
		return post.Trail[0].Blog.Name
	}
	return post.BlogName
}

// audioTitle joins the present parts of "artist - track - album".
func audioTitle(post *core.Post) string {
	var parts []string
	for _, p := range []string{post.Artist, post.TrackName, post.Album} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}

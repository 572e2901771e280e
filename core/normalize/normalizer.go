// Package normalize orchestrates the per-post pipeline: render the
// content, classify tags, derive the slug, assemble front-matter, and
// convert the fragment to Markdown.
package normalize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sztupy/tumblr2ghpages/core"
	"github.com/sztupy/tumblr2ghpages/core/render"
	"github.com/sztupy/tumblr2ghpages/core/slug"
	"github.com/sztupy/tumblr2ghpages/core/tags"
)

const dateLayout = "2006-01-02"

// Normalizer turns one raw post into a NormalizedDocument.
type Normalizer struct {
	renderer   *render.Renderer
	classifier *tags.Classifier
	converter  core.Converter
}

// New creates a Normalizer from its pipeline stages.
func New(renderer *render.Renderer, classifier *tags.Classifier, converter core.Converter) *Normalizer {
	return &Normalizer{
		renderer:   renderer,
		classifier: classifier,
		converter:  converter,
	}
}

// Normalize validates the raw post, runs it through the pipeline stages and
// assembles the document the output writer persists.
func (n *Normalizer) Normalize(ctx context.Context, post *core.Post) (*core.NormalizedDocument, error) {
	if err := post.Validate(); err != nil {
		return nil, err
	}

	res, err := n.renderer.Render(ctx, post)
	if err != nil {
		return nil, err
	}

	title := res.Title
	if title == "" {
		title = Title(post)
	}
	title = strings.TrimSpace(render.StripTags(title))

	tagList := n.classifier.Classify(ctx, post, res.OwnTextLength)

	fm := core.NewFrontMatter()
	fm.Set("layout", "post")
	fm.Set("title", title)
	fm.Set("date", time.Unix(post.Timestamp, 0).UTC().Format(time.RFC3339))
	fm.Set("tags", tagList)
	fm.Set("tumblr_id", post.ID)
	fm.Set("tumblr_url", post.PostURL)
	fm.Set("tumblr_type", post.Type)
	fm.Set("source_title", post.SourceTitle)
	fm.Set("source_url", post.SourceURL)
	setNumber(fm, "reblogged_from_id", post.RebloggedFromID)
	fm.Set("reblogged_from_url", post.RebloggedFromURL)
	fm.Set("reblogged_from_name", post.RebloggedFromName)
	setNumber(fm, "reblogged_root_id", post.RebloggedRootID)
	fm.Set("reblogged_root_url", post.RebloggedRootURL)
	fm.Set("reblogged_root_name", post.RebloggedRootName)

	switch post.Type {
	case "link":
		fm.Set("source_author", post.LinkAuthor)
		fm.Set("source_publisher", post.Publisher)
	case "photo":
		fm.Set("photoset_layout", post.PhotosetLayout)
	case "audio":
		fm.Set("audio_provider", post.ProviderURL)
		fm.Set("audio_artist", post.Artist)
		fm.Set("audio_album", post.Album)
		fm.Set("audio_type", post.AudioType)
		fm.Set("audio_track", post.TrackName)
	case "answer":
		fm.Set("asking_name", post.AskingName)
		fm.Set("asking_url", post.AskingURL)
	}

	content, err := n.converter.Convert(res.HTML)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", post.ID, err)
	}

	return &core.NormalizedDocument{
		Slug:        slug.Generate(post.Slug, title, post.ID),
		PostID:      post.ID,
		Date:        postDate(post),
		FrontMatter: fm,
		Content:     content,
	}, nil
}

// Title computes the fallback title chain: explicit title, summary, source
// title, source URL, then "{Kind} {id}".
func Title(post *core.Post) string {
	for _, t := range []string{post.Title, post.Summary, post.SourceTitle, post.SourceURL} {
		if t != "" {
			return t
		}
	}
	return fmt.Sprintf("%s %d", capitalize(post.Type), post.ID)
}

// postDate derives the YYYY-MM-DD partition date from the post's date
// string, falling back to the numeric timestamp.
func postDate(post *core.Post) string {
	if t, err := time.Parse("2006-01-02 15:04:05 MST", post.Date); err == nil {
		return t.Format(dateLayout)
	}
	if len(post.Date) >= len(dateLayout) {
		if t, err := time.Parse(dateLayout, post.Date[:len(dateLayout)]); err == nil {
			return t.Format(dateLayout)
		}
	}
	return time.Unix(post.Timestamp, 0).UTC().Format(dateLayout)
}

// setNumber records a numeric provenance field, omitted when absent.
func setNumber(fm *core.FrontMatter, key string, n json.Number) {
	if n == "" {
		return
	}
	if v, err := n.Int64(); err == nil {
		fm.Set(key, v)
		return
	}
	fm.Set(key, n.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

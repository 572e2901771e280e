// Package tags derives additional classification tags from a post's
// content and provenance, optionally syncing new tags back to Tumblr.
package tags

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/sztupy/tumblr2ghpages/core"
)

// Classifier applies the configured auto-tag rules.
type Classifier struct {
	opts    *core.AutoTagOptions
	blog    string
	updater core.TagUpdater
}

// New creates a Classifier. A nil AutoTags configuration turns every rule off.
func New(opts core.Options, updater core.TagUpdater) *Classifier {
	return &Classifier{
		opts:    opts.AutoTags,
		blog:    opts.Blog,
		updater: updater,
	}
}

// Classify returns the post's final, duplicate-free tag list. Each enabled
// rule adds its tag at most once; when any tag was newly added and remote
// sync is enabled, the updated list is pushed through the tag updater. A
// failed push is reported and does not block local output.
func (c *Classifier) Classify(ctx context.Context, post *core.Post, ownTextLength int) []string {
	tags := dedupe(post.Tags)
	if c.opts == nil {
		return tags
	}

	modified := false
	add := func(tag string) {
		if tag != "" && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
			modified = true
		}
	}

	if c.opts.LongformTag != "" && c.opts.LongformMinLength > 0 && ownTextLength >= c.opts.LongformMinLength {
		add(c.opts.LongformTag)
	}

	if (c.opts.OwnTag != "" || c.opts.PostTag != "") && post.RebloggedRootName == "" && c.selfAuthored(post) {
		add(c.opts.PostTag)
		if isOriginalContent(post) {
			add(c.opts.OwnTag)
		}
	}

	if modified && c.opts.Sync && c.updater != nil {
		csv := strings.Join(tags, ",")
		slog.Info("Updating post tags", "post_id", post.ID, "tags", csv)
		if err := c.updater.UpdateTags(ctx, c.blog, post.ID, tags); err != nil {
			slog.Warn("Failed to update tags remotely", "post_id", post.ID, "error", err)
		}
	}

	return tags
}

// selfAuthored reports whether a post without a recorded reblog root can be
// attributed to the blog itself: an empty trail, or a single trail entry
// authored by the blog owner. Reblogged posts sometimes omit the root name,
// so the trail shape is the only remaining signal.
func (c *Classifier) selfAuthored(post *core.Post) bool {
	if len(post.Trail) == 0 {
		return true
	}
	return len(post.Trail) == 1 && post.Trail[0].Blog.Name == c.blog
}

// isOriginalContent estimates whether a self-authored post is original
// content rather than shared material: no external source, not a link
// post, and for videos only platform-native uploads count.
func isOriginalContent(post *core.Post) bool {
	return post.SourceURL == "" &&
		post.Type != "link" &&
		(post.Type != "video" || post.VideoType == "tumblr")
}

// dedupe returns a copy of tags with duplicates removed, keeping first
// occurrence order.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

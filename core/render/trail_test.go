package render

import (
	"strings"
	"testing"

	"github.com/sztupy/tumblr2ghpages/core"
)

func TestRenderTrail_OwnEntryUnwrapped(t *testing.T) {
	r := newRenderer(&fakeResolver{}, core.ImagesOff)
	post := &core.Post{
		ID:   1,
		Type: "text",
		Trail: []core.TrailEntry{
			{Blog: core.TrailBlog{Name: "other"}, Post: core.TrailPost{ID: "100"}, ContentRaw: "<p>their words</p>"},
			{Blog: core.TrailBlog{Name: "myblog"}, Post: core.TrailPost{ID: "200"}, ContentRaw: "<p>my words</p>"},
		},
	}

	res := render(t, r, post)
	if !strings.Contains(res.HTML, `<blockquote class="trail" data-id="100" data-blog="other"><p>their words</p></blockquote>`) {
		t.Errorf("Expected the foreign entry wrapped and attributed, got %q", res.HTML)
	}
	if strings.Contains(res.HTML, `data-blog="myblog"`) {
		t.Errorf("The owner's final entry must not be wrapped, got %q", res.HTML)
	}
	if !strings.Contains(res.HTML, "<p>my words</p>") {
		t.Errorf("Expected own content present, got %q", res.HTML)
	}
}

func TestRenderTrail_ForeignFinalEntryIsWrapped(t *testing.T) {
	r := newRenderer(&fakeResolver{}, core.ImagesOff)
	post := &core.Post{
		ID:   2,
		Type: "text",
		Trail: []core.TrailEntry{
			{Blog: core.TrailBlog{Name: "other"}, Post: core.TrailPost{ID: "100"}, ContentRaw: "<p>theirs</p>"},
		},
	}

	res := render(t, r, post)
	if !strings.Contains(res.HTML, `data-blog="other"`) {
		t.Errorf("A final entry by another blog must still be wrapped, got %q", res.HTML)
	}
	if res.OwnTextLength != 0 {
		t.Errorf("No own entry means zero own-text length, got %d", res.OwnTextLength)
	}
}

func TestRenderTrail_OwnTextLength(t *testing.T) {
	r := newRenderer(&fakeResolver{}, core.ImagesOff)
	own := strings.Repeat("a", 600)
	post := &core.Post{
		ID:   3,
		Type: "text",
		Trail: []core.TrailEntry{
			{Blog: core.TrailBlog{Name: "other"}, ContentRaw: strings.Repeat("b", 5000)},
			{Blog: core.TrailBlog{Name: "myblog"}, ContentRaw: own},
		},
	}

	res := render(t, r, post)
	if res.OwnTextLength != 600 {
		t.Errorf("Expected own-text length 600, got %d", res.OwnTextLength)
	}
}

func TestRenderTrail_StripsMoreMarker(t *testing.T) {
	r := newRenderer(&fakeResolver{}, core.ImagesOff)
	post := &core.Post{
		ID:   4,
		Type: "text",
		Trail: []core.TrailEntry{
			{Blog: core.TrailBlog{Name: "myblog"}, ContentRaw: "<p>above</p>[[MORE]]<p>below</p>"},
		},
	}

	res := render(t, r, post)
	if strings.Contains(res.HTML, "[[MORE]]") {
		t.Errorf("Sentinel marker must be stripped, got %q", res.HTML)
	}
	if !strings.Contains(res.HTML, "<p>above</p>") || !strings.Contains(res.HTML, "<p>below</p>") {
		t.Errorf("Content around the marker must survive, got %q", res.HTML)
	}
}

func TestRenderTrail_RewritesInlineImagesByEntryAuthor(t *testing.T) {
	resolver := &fakeResolver{}
	r := newRenderer(resolver, core.ImagesAll)
	post := &core.Post{
		ID:   5,
		Type: "text",
		Trail: []core.TrailEntry{
			{Blog: core.TrailBlog{Name: "other"}, ContentRaw: `<p><img src="http://media.tumblr.com/pic.jpg"/></p>`},
		},
	}

	res := render(t, r, post)
	if !strings.Contains(res.HTML, `src="/cached/pic.jpg"`) {
		t.Errorf("Expected rewritten trail image, got %q", res.HTML)
	}
	if resolver.owners["http://media.tumblr.com/pic.jpg"] != "other" {
		t.Errorf("Trail images must be keyed by the entry's author, got %q", resolver.owners["http://media.tumblr.com/pic.jpg"])
	}
}

func TestRenderTrail_ImageFetchFailureKeepsOriginal(t *testing.T) {
	resolver := &fakeResolver{failURLs: map[string]bool{"http://media.tumblr.com/pic.jpg": true}}
	r := newRenderer(resolver, core.ImagesAll)
	post := &core.Post{
		ID:   6,
		Type: "text",
		Trail: []core.TrailEntry{
			{Blog: core.TrailBlog{Name: "other"}, ContentRaw: `<p><img src="http://media.tumblr.com/pic.jpg"/></p>`},
		},
	}

	res := render(t, r, post)
	if !strings.Contains(res.HTML, `src="http://media.tumblr.com/pic.jpg"`) {
		t.Errorf("Failed trail image must keep the original URL, got %q", res.HTML)
	}
}

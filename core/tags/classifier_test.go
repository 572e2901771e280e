package tags

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/sztupy/tumblr2ghpages/core"
)

type fakeUpdater struct {
	calls int
	blog  string
	id    int64
	tags  []string
	fail  bool
}

func (u *fakeUpdater) UpdateTags(_ context.Context, blog string, postID int64, tags []string) error {
	u.calls++
	u.blog = blog
	u.id = postID
	u.tags = append([]string(nil), tags...)
	if u.fail {
		return fmt.Errorf("api down")
	}
	return nil
}

func newClassifier(auto *core.AutoTagOptions, updater core.TagUpdater) *Classifier {
	return New(core.Options{Blog: "myblog", AutoTags: auto}, updater)
}

func TestClassify_Disabled(t *testing.T) {
	c := newClassifier(nil, nil)
	post := &core.Post{ID: 1, Type: "text", Tags: []string{"a", "a", "b"}}

	got := c.Classify(context.Background(), post, 9999)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Expected deduplicated pass-through tags, got %v", got)
	}
}

func TestClassify_LongformThreshold(t *testing.T) {
	auto := &core.AutoTagOptions{LongformTag: "rant", LongformMinLength: 512}

	tests := []struct {
		name   string
		length int
		want   bool
	}{
		{"above threshold", 600, true},
		{"at threshold", 512, true},
		{"below threshold", 511, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClassifier(auto, nil)
			post := &core.Post{ID: 1, Type: "text", RebloggedRootName: "elsewhere"}
			got := c.Classify(context.Background(), post, tt.length)

			has := false
			for _, tag := range got {
				if tag == "rant" {
					has = true
				}
			}
			if has != tt.want {
				t.Errorf("longform tag present = %v, want %v (length %d)", has, tt.want, tt.length)
			}
		})
	}
}

func TestClassify_LongformHigherThresholdNotMet(t *testing.T) {
	auto := &core.AutoTagOptions{LongformTag: "rant", LongformMinLength: 700}
	c := newClassifier(auto, nil)
	post := &core.Post{ID: 1, Type: "text", RebloggedRootName: "elsewhere"}

	got := c.Classify(context.Background(), post, 600)
	for _, tag := range got {
		if tag == "rant" {
			t.Errorf("Tag must not be added below the threshold, got %v", got)
		}
	}
}

func TestClassify_IdempotentNoSync(t *testing.T) {
	updater := &fakeUpdater{}
	auto := &core.AutoTagOptions{LongformTag: "rant", LongformMinLength: 512, Sync: true}
	c := newClassifier(auto, updater)
	post := &core.Post{ID: 1, Type: "text", Tags: []string{"rant"}}

	got := c.Classify(context.Background(), post, 600)

	count := 0
	for _, tag := range got {
		if tag == "rant" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Tag must not be duplicated, got %v", got)
	}
	if updater.calls != 0 {
		t.Errorf("No sync call expected when nothing was added, got %d", updater.calls)
	}
}

func TestClassify_SelfAuthoredPostTag(t *testing.T) {
	tests := []struct {
		name string
		post core.Post
		want bool
	}{
		{"empty trail", core.Post{ID: 1, Type: "text"}, true},
		{"single own trail entry", core.Post{ID: 2, Type: "text",
			Trail: []core.TrailEntry{{Blog: core.TrailBlog{Name: "myblog"}}}}, true},
		{"single foreign trail entry", core.Post{ID: 3, Type: "text",
			Trail: []core.TrailEntry{{Blog: core.TrailBlog{Name: "other"}}}}, false},
		{"two trail entries", core.Post{ID: 4, Type: "text",
			Trail: []core.TrailEntry{{Blog: core.TrailBlog{Name: "other"}}, {Blog: core.TrailBlog{Name: "myblog"}}}}, false},
		{"recorded reblog root", core.Post{ID: 5, Type: "text", RebloggedRootName: "other"}, false},
	}
	auto := &core.AutoTagOptions{PostTag: "post"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClassifier(auto, nil)
			got := c.Classify(context.Background(), &tt.post, 0)

			has := false
			for _, tag := range got {
				if tag == "post" {
					has = true
				}
			}
			if has != tt.want {
				t.Errorf("post tag present = %v, want %v", has, tt.want)
			}
		})
	}
}

func TestClassify_OriginalContent(t *testing.T) {
	tests := []struct {
		name string
		post core.Post
		want bool
	}{
		{"plain text", core.Post{ID: 1, Type: "text"}, true},
		{"external source", core.Post{ID: 2, Type: "text", SourceURL: "http://example.com"}, false},
		{"link post", core.Post{ID: 3, Type: "link"}, false},
		{"native video", core.Post{ID: 4, Type: "video", VideoType: "tumblr", Player: []core.Player{{}}}, true},
		{"embedded video", core.Post{ID: 5, Type: "video", VideoType: "youtube", Player: []core.Player{{}}}, false},
	}
	auto := &core.AutoTagOptions{OwnTag: "own"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClassifier(auto, nil)
			got := c.Classify(context.Background(), &tt.post, 0)

			has := false
			for _, tag := range got {
				if tag == "own" {
					has = true
				}
			}
			if has != tt.want {
				t.Errorf("own tag present = %v, want %v", has, tt.want)
			}
		})
	}
}

func TestClassify_SyncPushesFullList(t *testing.T) {
	updater := &fakeUpdater{}
	auto := &core.AutoTagOptions{PostTag: "post", OwnTag: "own", Sync: true}
	c := newClassifier(auto, updater)
	post := &core.Post{ID: 42, Type: "text", Tags: []string{"existing"}}

	got := c.Classify(context.Background(), post, 0)

	if updater.calls != 1 {
		t.Fatalf("Expected one sync call, got %d", updater.calls)
	}
	if updater.blog != "myblog" || updater.id != 42 {
		t.Errorf("Sync call targeted %s/%d", updater.blog, updater.id)
	}
	want := []string{"existing", "post", "own"}
	if !reflect.DeepEqual(updater.tags, want) {
		t.Errorf("Expected synced tags %v, got %v", want, updater.tags)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected returned tags %v, got %v", want, got)
	}
}

func TestClassify_SyncFailureDoesNotBlock(t *testing.T) {
	updater := &fakeUpdater{fail: true}
	auto := &core.AutoTagOptions{PostTag: "post", Sync: true}
	c := newClassifier(auto, updater)
	post := &core.Post{ID: 1, Type: "text"}

	got := c.Classify(context.Background(), post, 0)
	if len(got) != 1 || got[0] != "post" {
		t.Errorf("Local tag list must survive a failed sync, got %v", got)
	}
}

func TestClassify_SyncDisabledNoCall(t *testing.T) {
	updater := &fakeUpdater{}
	auto := &core.AutoTagOptions{PostTag: "post"}
	c := newClassifier(auto, updater)
	post := &core.Post{ID: 1, Type: "text"}

	c.Classify(context.Background(), post, 0)
	if updater.calls != 0 {
		t.Errorf("Sync disabled must not call the updater, got %d calls", updater.calls)
	}
}

package core

import (
	"encoding/json"
	"fmt"
)

// Post is one raw post record as returned by the Tumblr v2 API.
// A single struct covers every kind; Type is the discriminant and
// Validate checks the per-kind required fields.
type Post struct {
	ID        int64    `json:"id"`
	PostURL   string   `json:"post_url"`
	Slug      string   `json:"slug"`
	Type      string   `json:"type"`
	Date      string   `json:"date"`
	Timestamp int64    `json:"timestamp"`
	Tags      []string `json:"tags"`
	Summary   string   `json:"summary"`
	BlogName  string   `json:"blog_name"`

	SourceURL   string `json:"source_url"`
	SourceTitle string `json:"source_title"`

	RebloggedFromID   json.Number `json:"reblogged_from_id"`
	RebloggedFromURL  string      `json:"reblogged_from_url"`
	RebloggedFromName string      `json:"reblogged_from_name"`
	RebloggedRootID   json.Number `json:"reblogged_root_id"`
	RebloggedRootURL  string      `json:"reblogged_root_url"`
	RebloggedRootName string      `json:"reblogged_root_name"`

	Trail []TrailEntry `json:"trail"`

	// text
	Title string `json:"title"`
	Body  string `json:"body"`

	// link
	URL        string `json:"url"`
	LinkAuthor string `json:"link_author"`
	Publisher  string `json:"publisher"`
	Excerpt    string `json:"excerpt"`

	// photo (also attached to link posts)
	Photos         []Photo `json:"photos"`
	PhotosetLayout string  `json:"photoset_layout"`

	// audio
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	TrackName   string `json:"track_name"`
	AlbumArt    string `json:"album_art"`
	Embed       string `json:"embed"`
	ProviderURL string `json:"provider_url"`
	AudioType   string `json:"audio_type"`

	// quote
	Text        string `json:"text"`
	QuoteSource string `json:"source"`

	// chat
	Dialogue []DialogueLine `json:"dialogue"`

	// video
	Player    []Player `json:"player"`
	VideoType string   `json:"video_type"`

	// answer
	AskingName string `json:"asking_name"`
	AskingURL  string `json:"asking_url"`
	Question   string `json:"question"`
}

// TrailEntry is one link of the reblog chain, oldest first.
type TrailEntry struct {
	Blog       TrailBlog `json:"blog"`
	Post       TrailPost `json:"post"`
	ContentRaw string    `json:"content_raw"`
}

// TrailBlog identifies the blog a trail entry came from.
type TrailBlog struct {
	Name string `json:"name"`
}

// TrailPost identifies the originating post of a trail entry.
// Trail post ids are strings in the API, unlike top-level ids.
type TrailPost struct {
	ID string `json:"id"`
}

// Photo is one attachment of a photo (or link) post.
type Photo struct {
	Caption      string      `json:"caption"`
	AltSizes     []PhotoSize `json:"alt_sizes"`
	OriginalSize *PhotoSize  `json:"original_size"`
}

// PhotoSize is one size variant of a photo.
type PhotoSize struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Sizes returns every size variant, alt sizes first, then the original.
func (p Photo) Sizes() []PhotoSize {
	sizes := make([]PhotoSize, 0, len(p.AltSizes)+1)
	sizes = append(sizes, p.AltSizes...)
	if p.OriginalSize != nil {
		sizes = append(sizes, *p.OriginalSize)
	}
	return sizes
}

// DialogueLine is one line of a chat post.
type DialogueLine struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Phrase string `json:"phrase"`
}

// Player is one embed variant of a video post.
type Player struct {
	Width     int    `json:"width"`
	EmbedCode string `json:"embed_code"`
}

// Validate checks the fields the pipeline needs for the post's kind.
func (p *Post) Validate() error {
	switch p.Type {
	case "text", "link", "quote", "audio":
	case "photo":
		if len(p.Photos) == 0 {
			return fmt.Errorf("photo post %d has no photos", p.ID)
		}
	case "chat":
		if len(p.Dialogue) == 0 {
			return fmt.Errorf("chat post %d has no dialogue", p.ID)
		}
	case "video":
		if len(p.Player) == 0 {
			return fmt.Errorf("video post %d has no player variants", p.ID)
		}
	case "answer":
		if p.Question == "" {
			return fmt.Errorf("answer post %d has no question", p.ID)
		}
	default:
		return fmt.Errorf("post %d has unknown type %q", p.ID, p.Type)
	}
	return nil
}

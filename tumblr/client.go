// Package tumblr is a minimal client for the Tumblr v2 API: paginated
// retrieval of a blog's posts and the authenticated tag-edit call.
package tumblr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sztupy/tumblr2ghpages/core"
)

const defaultBaseURL = "https://api.tumblr.com/v2"

// DefaultPageSize is the page size used by the import loop.
const DefaultPageSize = 50

// Client talks to the Tumblr API.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	token   string
}

// NewClient creates a Client. apiKey is required for reads; token is the
// OAuth bearer token required only for tag updates.
func NewClient(apiKey string, token string) *Client {
	return &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		token:   token,
	}
}

// Blog is the owning blog block of a posts response.
type Blog struct {
	Name string `json:"name"`
}

// Page is one page of raw posts plus the blog they belong to.
type Page struct {
	Blog       Blog
	Posts      []core.Post
	TotalPosts int
}

type envelope struct {
	Meta struct {
		Status int    `json:"status"`
		Msg    string `json:"msg"`
	} `json:"meta"`
	Response struct {
		Blog       Blog        `json:"blog"`
		Posts      []core.Post `json:"posts"`
		TotalPosts int         `json:"total_posts"`
	} `json:"response"`
}

// FetchPage retrieves one page of posts with reblog info attached.
// The import loop terminates when a page holds fewer posts than limit.
func (c *Client) FetchPage(ctx context.Context, blog string, offset int, limit int) (*Page, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("reblog_info", "true")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	endpoint := fmt.Sprintf("%s/blog/%s/posts?%s", c.baseURL, url.PathEscape(blog), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching posts for %s: %w", blog, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding posts response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("posts request for %s failed: %d %s", blog, resp.StatusCode, env.Meta.Msg)
	}

	return &Page{
		Blog:       env.Response.Blog,
		Posts:      env.Response.Posts,
		TotalPosts: env.Response.TotalPosts,
	}, nil
}

// UpdateTags replaces a post's tags with the given list.
func (c *Client) UpdateTags(ctx context.Context, blog string, postID int64, tags []string) error {
	if c.token == "" {
		return fmt.Errorf("updating tags requires an OAuth token")
	}

	form := url.Values{}
	form.Set("id", strconv.FormatInt(postID, 10))
	form.Set("tags", strings.Join(tags, ","))
	endpoint := fmt.Sprintf("%s/blog/%s/post/edit", c.baseURL, url.PathEscape(blog))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("editing post %d: %w", postID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return fmt.Errorf("edit request for post %d failed: %d %s", postID, resp.StatusCode, env.Meta.Msg)
	}
	return nil
}

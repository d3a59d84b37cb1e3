package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quocvuong92/osint-shell/internal/constants"
	"github.com/quocvuong92/osint-shell/internal/logging"
)

// maxPages bounds pagination against a backend that never stops returning
// cursors.
const maxPages = 1000

// ErrEmptyResponse is returned by Download when the body is empty.
var ErrEmptyResponse = errors.New("empty response body")

// Source is everything the investigator needs from the backend.
type Source interface {
	Profile(ctx context.Context, username string) (*Profile, error)
	UserByID(ctx context.Context, id string) (*User, error)
	Posts(ctx context.Context, userID string) ([]Post, error)
	Followers(ctx context.Context, userID string) ([]User, error)
	Followings(ctx context.Context, userID string) ([]User, error)
	Stories(ctx context.Context, userID string) ([]Story, error)
	TaggedIn(ctx context.Context, userID string) ([]Post, error)
	Comments(ctx context.Context, postID string) ([]Comment, error)
	Download(ctx context.Context, rawURL string) ([]byte, error)
}

// ResponseCache stores raw GET bodies keyed by URL.
type ResponseCache interface {
	Get(key string, ttl time.Duration) ([]byte, bool, error)
	Put(key string, body []byte) error
}

// Options configures a Client.
type Options struct {
	BaseURL  string
	Session  string
	Timeout  time.Duration
	CacheTTL time.Duration
	// Cache is optional; nil disables response caching.
	Cache  ResponseCache
	Logger *logging.Logger
	// Transport overrides the HTTP transport; tests point it at httptest.
	Transport http.RoundTripper
}

// Client is the HTTP implementation of Source.
type Client struct {
	baseURL    string
	session    string
	httpClient *http.Client
	cache      ResponseCache
	cacheTTL   time.Duration
	logger     *logging.Logger
	backoff    func(int) time.Duration
}

// Ensure Client implements Source
var _ Source = (*Client)(nil)

// NewClient creates a backend client.
func NewClient(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = constants.DefaultAPITimeout
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = constants.DefaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = logging.DefaultLogger
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		session: opts.Session,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: logging.NewTransport(opts.Transport, opts.Logger),
		},
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		logger:   opts.Logger,
		backoff:  CalculateBackoff,
	}
}

// Profile fetches the profile of username.
func (c *Client) Profile(ctx context.Context, username string) (*Profile, error) {
	var p Profile
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username), nil, &p); err != nil {
		return nil, fmt.Errorf("failed to get profile of %s: %w", username, err)
	}
	return &p, nil
}

// UserByID fetches user details, including public contact fields.
func (c *Client) UserByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.getJSON(ctx, "/users/id/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &u, nil
}

// Posts returns every post of userID, newest first.
func (c *Client) Posts(ctx context.Context, userID string) ([]Post, error) {
	return collect[Post](ctx, c, "/users/"+url.PathEscape(userID)+"/posts")
}

// Followers returns every follower of userID.
func (c *Client) Followers(ctx context.Context, userID string) ([]User, error) {
	return collect[User](ctx, c, "/users/"+url.PathEscape(userID)+"/followers")
}

// Followings returns every account userID follows.
func (c *Client) Followings(ctx context.Context, userID string) ([]User, error) {
	return collect[User](ctx, c, "/users/"+url.PathEscape(userID)+"/followings")
}

// Stories returns the current stories of userID.
func (c *Client) Stories(ctx context.Context, userID string) ([]Story, error) {
	return collect[Story](ctx, c, "/users/"+url.PathEscape(userID)+"/stories")
}

// TaggedIn returns posts by other accounts that tag userID.
func (c *Client) TaggedIn(ctx context.Context, userID string) ([]Post, error) {
	return collect[Post](ctx, c, "/users/"+url.PathEscape(userID)+"/tagged")
}

// Comments returns every comment on postID.
func (c *Client) Comments(ctx context.Context, postID string) ([]Comment, error) {
	return collect[Comment](ctx, c, "/posts/"+url.PathEscape(postID)+"/comments")
}

// Download fetches a media file. Downloads bypass the response cache.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := withRetry(ctx, c.backoff, func() ([]byte, error) {
		return c.do(ctx, rawURL)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", rawURL, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("failed to download %s: %w", rawURL, ErrEmptyResponse)
	}
	return body, nil
}

// collect walks every page of a list endpoint.
func collect[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var (
		items  []T
		cursor string
	)
	for i := 0; i < maxPages; i++ {
		var params url.Values
		if cursor != "" {
			params = url.Values{"cursor": {cursor}}
		}

		var p page[T]
		if err := c.getJSON(ctx, path, params, &p); err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", path, err)
		}
		items = append(items, p.Items...)

		if p.NextCursor == "" || p.NextCursor == cursor {
			return items, nil
		}
		cursor = p.NextCursor
	}
	c.logger.Warn("pagination limit reached", logging.Fields{"path": path, "pages": maxPages})
	return items, nil
}

// getJSON fetches path from the cache or the backend and decodes it into v.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	if c.cache != nil {
		body, ok, err := c.cache.Get(reqURL, c.cacheTTL)
		if err != nil {
			c.logger.Warn("cache read failed", logging.Fields{"key": reqURL, "error": err})
		} else if ok {
			c.logger.Debug("cache hit", logging.Fields{"key": reqURL})
			return decode(body, v)
		}
	}

	body, err := withRetry(ctx, c.backoff, func() ([]byte, error) {
		return c.do(ctx, reqURL)
	})
	if err != nil {
		return err
	}
	if err := decode(body, v); err != nil {
		return err
	}

	if c.cache != nil {
		if err := c.cache.Put(reqURL, body); err != nil {
			c.logger.Warn("cache write failed", logging.Fields{"key": reqURL, "error": err})
		}
	}
	return nil
}

// do performs a single GET and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", constants.AppName+"/"+constants.Version)
	req.Header.Set("X-Request-ID", uuid.NewString())
	// Media URLs may point at other hosts; they never see the session.
	if c.isBackend(req.URL) {
		req.Header.Set("Accept", "application/json")
		if c.session != "" {
			req.AddCookie(&http.Cookie{Name: "sessionid", Value: c.session})
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		return nil, newAPIError(resp.StatusCode, eb.Message)
	}
	return body, nil
}

// isBackend reports whether u addresses the configured backend host.
func (c *Client) isBackend(u *url.URL) bool {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, base.Scheme) && strings.EqualFold(u.Host, base.Host)
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

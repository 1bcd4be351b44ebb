package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fetcher is the remote contract the loaders depend on.
// It is implemented by *Client and by test fakes.
type Fetcher interface {
	ListAlbums(ctx context.Context) ([]Album, error)
	GetAlbum(ctx context.Context, id string) (AlbumDetail, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

const (
	// DefaultBaseURL is the public catalog the mobile app shipped with.
	DefaultBaseURL   = "https://music.juanfrausto.com/api/"
	defaultUserAgent = "crate/0.1"
	requestTimeout   = 15 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a Client rooted at baseURL. Both endpoint paths are
// resolved relative to it, so a path prefix such as /api/ is preserved.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised root both endpoints resolve against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListAlbums retrieves the full catalog. Order is preserved as sent.
func (c *Client) ListAlbums(ctx context.Context) ([]Album, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []wireAlbum
	if err := c.get(ctx, "albums", &payload); err != nil {
		return nil, err
	}
	albums := make([]Album, 0, len(payload))
	for i, w := range payload {
		album, err := w.album()
		if err != nil {
			return nil, &DecodeError{Path: "/albums", Err: fmt.Errorf("item %d: %w", i, err)}
		}
		albums = append(albums, album)
	}
	return albums, nil
}

// GetAlbum retrieves a single album. The id is path-escaped but otherwise
// passed through; an unknown id surfaces as ErrNotFound or a DecodeError.
func (c *Client) GetAlbum(ctx context.Context, id string) (AlbumDetail, error) {
	if c == nil {
		return AlbumDetail{}, fmt.Errorf("client is nil")
	}
	var payload AlbumDetail
	if err := c.get(ctx, "albums/"+url.PathEscape(id), &payload); err != nil {
		return AlbumDetail{}, err
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("build path %q: %w", path, err)
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("url", reqURL.String()), zap.Error(err))
		return &NetworkError{Op: "execute request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request settled",
		zap.String("url", reqURL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Path: "/" + path, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if ctx.Err() != nil {
			return &NetworkError{Op: "read response", Err: err}
		}
		return &DecodeError{Path: "/" + path, Err: err}
	}
	return nil
}

// wireAlbum decodes list entries with presence tracking so missing or null
// required fields are reported instead of silently zeroed.
type wireAlbum struct {
	ID          *string `json:"id"`
	Title       *string `json:"title"`
	Artist      *string `json:"artist"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

func (w wireAlbum) album() (Album, error) {
	fields := []struct {
		name string
		val  *string
	}{
		{"id", w.ID},
		{"title", w.Title},
		{"artist", w.Artist},
		{"description", w.Description},
		{"image", w.Image},
	}
	for _, f := range fields {
		if f.val == nil {
			return Album{}, fmt.Errorf("missing required field %q", f.name)
		}
	}
	return Album{
		ID:          *w.ID,
		Title:       *w.Title,
		Artist:      *w.Artist,
		Description: *w.Description,
		Image:       *w.Image,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base_url %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

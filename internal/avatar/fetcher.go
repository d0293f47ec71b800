package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"unicode"
)

// DefaultBaseURL is the DiceBear HTTP API root.
const DefaultBaseURL = "https://api.dicebear.com/8.x"

// HTTPDoer is the subset of *http.Client used by HTTPFetcher.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher downloads PNG avatars from the DiceBear API.
type HTTPFetcher struct {
	client  HTTPDoer
	baseURL string
	log     *slog.Logger
}

// NewHTTPFetcher creates a fetcher rooted at baseURL. A nil client falls back
// to http.DefaultClient; a nil logger falls back to slog.Default.
func NewHTTPFetcher(client HTTPDoer, baseURL string, logger *slog.Logger) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPFetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     logger.With("component", "avatar_fetcher"),
	}
}

// URL returns the request URL for a style and seed.
func (f *HTTPFetcher) URL(styleID, seed string) string {
	return fmt.Sprintf("%s/%s/png?seed=%s", f.baseURL, url.PathEscape(styleID), EscapeSeed(seed))
}

// EscapeSeed percent-encodes a seed for use as a query value. Spaces become
// %20 rather than '+'.
func EscapeSeed(seed string) string {
	return strings.ReplaceAll(url.QueryEscape(seed), "+", "%20")
}

// Fetch issues a single GET for the avatar. The caller owns the returned
// Image and must Close it on every path.
func (f *HTTPFetcher) Fetch(ctx context.Context, styleID, seed string) (*Image, error) {
	reqURL := f.URL(styleID, seed)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: Unknown, Err: fmt.Errorf("build request: %w", err)}
	}

	f.log.DebugContext(ctx, "Fetching avatar", "style", styleID, "url", reqURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: NetworkFailure, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		_ = resp.Body.Close()
		return nil, &FetchError{
			Kind:       NetworkFailure,
			StatusCode: resp.StatusCode,
			Err:        errors.New(resp.Status),
		}
	}

	return &Image{
		body:     resp.Body,
		Filename: imageFilename(seed),
		Style:    styleID,
		Seed:     seed,
	}, nil
}

// imageFilename derives the upload filename from a seed. Characters that
// would break a multipart header or a path are replaced with '_'.
func imageFilename(seed string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '/' || r == '\\' || r == '"' {
			return '_'
		}
		return r
	}, seed)
	if strings.TrimSpace(name) == "" {
		return "avatar.png"
	}
	return name + ".png"
}

// Image is a streamed avatar. It records the first read failure so callers
// can tell a broken stream apart from a failed upload.
type Image struct {
	body     io.ReadCloser
	Filename string
	Style    string
	Seed     string

	mu      sync.Mutex
	readErr error
	closed  bool
}

// NewImage wraps an arbitrary stream. It is used by alternative fetchers and tests.
func NewImage(body io.ReadCloser, styleID, seed string) *Image {
	return &Image{body: body, Filename: imageFilename(seed), Style: styleID, Seed: seed}
}

func (img *Image) Read(p []byte) (int, error) {
	n, err := img.body.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		img.mu.Lock()
		if img.readErr == nil {
			img.readErr = &FetchError{Kind: Unknown, Err: fmt.Errorf("read avatar stream: %w", err)}
		}
		img.mu.Unlock()
	}
	return n, err
}

// ReadErr returns the recorded stream failure, if any, as a *FetchError.
func (img *Image) ReadErr() error {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.readErr
}

// Close releases the underlying connection. It is safe to call more than once.
func (img *Image) Close() error {
	img.mu.Lock()
	defer img.mu.Unlock()
	if img.closed {
		return nil
	}
	img.closed = true
	return img.body.Close()
}

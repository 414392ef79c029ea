// Package fetch retrieves static documents (profile JSON, assets) over HTTP or from a local
// site directory. It is the transport underneath the profile loader.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CardAgent/1.0)"

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 2 << 20

// Result holds the body and metadata of a fetched document.
type Result struct {
	URL         string
	Body        []byte
	ContentType string
	StatusCode  int
}

// Error represents an error during fetching.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// SiteRoot enables file:// URLs, served from this directory. file:///data/x.json maps to
	// <SiteRoot>/data/x.json.
	SiteRoot string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client fetches documents. It is safe for concurrent use.
type Client struct {
	http *http.Client
	opts *Options
}

// NewClient creates a Client from opts; nil opts means DefaultOptions.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.SiteRoot != "" {
		transport.RegisterProtocol("file", http.NewFileTransport(http.Dir(opts.SiteRoot)))
	}

	return &Client{
		http: &http.Client{Timeout: opts.Timeout, Transport: transport},
		opts: opts,
	}
}

// Get retrieves urlStr. A non-200 status is reported as an *Error; the Result is still
// returned so callers can inspect the status.
func (c *Client) Get(ctx context.Context, urlStr string) (*Result, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || !c.supported(parsedURL) {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json, */*")
	for key, value := range c.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &Error{
			URL:        urlStr,
			Message:    "failed to read response body",
			StatusCode: resp.StatusCode,
			Cause:      err,
		}
	}

	result := &Result{
		URL:         urlStr,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	return result, nil
}

// Fetch implements the loader's fetcher contract: the body of a successful response.
func (c *Client) Fetch(ctx context.Context, urlStr string) ([]byte, error) {
	res, err := c.Get(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// URL retrieves urlStr with a one-off client.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	return NewClient(opts).Get(ctx, urlStr)
}

func (c *Client) supported(u *url.URL) bool {
	switch u.Scheme {
	case "http", "https":
		return u.Host != ""
	case "file":
		return c.opts.SiteRoot != ""
	default:
		return false
	}
}

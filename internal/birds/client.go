package birds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Fetcher retrieves the birds payload. *Client implements it; tests swap in
// their own.
type Fetcher interface {
	FetchBirds(ctx context.Context) (*Payload, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the birds HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// EndpointPath is the fixed resource the view loads.
	EndpointPath = "/api/birds"

	defaultAPIBase   = "127.0.0.1:5555"
	defaultUserAgent = "fledgling/0.1"
	maxErrorBody     = 64 << 10
)

type clientOptions struct {
	httpClient *http.Client
	cookies    map[string]string
	userAgent  string
	timeout    time.Duration
}

// Option customises a Client.
type Option func(*clientOptions)

// WithCookies seeds the client's cookie jar for the API host. These ride along
// on every request.
func WithCookies(cookies map[string]string) Option {
	return func(o *clientOptions) { o.cookies = cookies }
}

// WithHTTPClient replaces the underlying http.Client. The struct is copied.
// The caller's Jar is used as-is unless WithCookies is also given, in which
// case the client gets a fresh jar and the caller's jar is not written to.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// NewClient builds a Client for apiBase, a host:port pair or a URL.
func NewClient(apiBase string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}

	o := clientOptions{userAgent: defaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		dup := *o.httpClient
		hc = &dup
	}
	if o.timeout > 0 {
		hc.Timeout = o.timeout
	}
	if hc.Jar == nil || len(o.cookies) > 0 {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		hc.Jar = jar
	}
	if len(o.cookies) > 0 {
		hc.Jar.SetCookies(base, buildCookies(o.cookies))
	}

	ua := strings.TrimSpace(o.userAgent)
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Client{baseURL: base, http: hc, userAgent: ua}, nil
}

// Endpoint returns the absolute URL FetchBirds requests.
func (c *Client) Endpoint() string {
	if c == nil {
		return EndpointPath
	}
	return c.baseURL.ResolveReference(&url.URL{Path: EndpointPath}).String()
}

// FetchBirds performs GET /api/birds with the jar's cookies attached.
func (c *Client) FetchBirds(ctx context.Context) (*Payload, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "execute request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Best effort: a body that fails to read just leaves the status text.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &RequestError{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			Body:       string(body),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read body", Err: fmt.Errorf("read response: %w", err)}
	}
	payload, err := ParsePayload(data)
	if err != nil {
		return nil, &TransportError{Op: "decode", Err: fmt.Errorf("decode response: %w", err)}
	}
	return payload, nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func buildCookies(values map[string]string) []*http.Cookie {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	cookies := make([]*http.Cookie, 0, len(names))
	for _, name := range names {
		cookies = append(cookies, &http.Cookie{Name: name, Value: values[name], Path: "/"})
	}
	return cookies
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base %q: missing host", apiBase)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

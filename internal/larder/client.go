package larder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akhdanfadh/larderkeep/internal/logger"
)

// requestIDHeader carries a per-request ID so a failing call can be matched
// with the verbose log line that sent it.
const requestIDHeader = "X-Request-Id"

// Client is a Larder API client.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     logger.Logger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// NewClient creates a new Larder API client with the given config and options.
// Missing BaseURL and AuthScheme are filled with their defaults. The config is
// validated on each request, so a client built without a token fails with a
// ConfigurationError instead of sending anything.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = AuthToken
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") // ensure no trailing slash

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{}, // no overall deadline unless WithTimeout is given
		logger:     logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout of the HTTP client. Zero means no limit.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// endpoint resolves an API path against the base URL. Absolute URLs, such as
// the "next" links of paginated listings, are returned unchanged.
func (c *Client) endpoint(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.cfg.BaseURL + "/" + strings.TrimLeft(path, "/")
}

// doRequest performs a single HTTP request.
//
// Non-2xx responses are turned into RemoteError before handleResp is called,
// so handleResp only sees successful responses. A nil handleResp discards the body.
func (c *Client) doRequest(ctx context.Context, method, reqURL string, body []byte, handleResp func(*http.Response) error) error {
	if c.cfg.Token == "" {
		return &ConfigurationError{Op: method + " " + reqURL, Err: ErrMissingToken}
	}
	if err := c.cfg.Validate(); err != nil {
		return &ConfigurationError{Op: method + " " + reqURL, Err: err}
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", c.cfg.AuthScheme+" "+c.cfg.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)

	c.logger.Debug("[%s] %s %s", reqID, method, reqURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: method, URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // close error not actionable after body is read
	c.logger.Debug("[%s] %s %s -> %d", reqID, method, reqURL, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readRemoteError(resp)
	}
	if handleResp == nil {
		return nil
	}
	return handleResp(resp)
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	return c.doRequest(ctx, http.MethodGet, reqURL, nil, func(resp *http.Response) error {
		return decodeJSON(resp.Body, reqURL, out)
	})
}

// decodeJSON decodes a response body, tolerating unknown fields.
func decodeJSON(r io.Reader, source string, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return &DeserializationError{Source: source, Err: err}
	}
	return nil
}

// listAll fetches every page of a listing, following the "next" links
// the API hands back. Results keep server order.
func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	items := make([]T, 0)
	seen := make(map[string]bool)

	next := c.endpoint(path)
	for next != "" {
		if seen[next] {
			return nil, &DeserializationError{Source: next, Err: fmt.Errorf("pagination loops back to an already fetched page")}
		}
		seen[next] = true

		var p page[T]
		if err := c.getJSON(ctx, next, &p); err != nil {
			return nil, err
		}
		items = append(items, p.Results...)

		next = ""
		if p.Next != nil {
			next = c.endpoint(*p.Next)
			// the token goes out with every page, so never follow a link off the API host
			if err := c.checkSameOrigin(next); err != nil {
				return nil, &DeserializationError{Source: next, Err: err}
			}
		}
	}
	return items, nil
}

// checkSameOrigin reports an error unless rawURL has the scheme and host of the base URL.
func (c *Client) checkSameOrigin(rawURL string) error {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing base URL: %w", err)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing next link: %w", err)
	}
	if !strings.EqualFold(u.Scheme, base.Scheme) || !strings.EqualFold(u.Host, base.Host) {
		return fmt.Errorf("next link points to %s://%s, outside %s://%s", u.Scheme, u.Host, base.Scheme, base.Host)
	}
	return nil
}

// save creates (no ID) or edits (with ID) a record of the given kind and
// decodes the server's answer into out.
func (c *Client) save(ctx context.Context, kind, id string, body, out any) error {
	path := kind + "/add/"
	if id != "" {
		path = kind + "/" + id + "/edit/"
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	reqURL := c.endpoint(path)
	return c.doRequest(ctx, http.MethodPost, reqURL, data, func(resp *http.Response) error {
		return decodeJSON(resp.Body, reqURL, out)
	})
}

// remove deletes a record of the given kind by ID.
func (c *Client) remove(ctx context.Context, kind, id string) error {
	if id == "" {
		return &ConfigurationError{Op: "delete " + kind, Err: ErrMissingID}
	}
	return c.doRequest(ctx, http.MethodDelete, c.endpoint(kind+"/"+id+"/delete/"), nil, nil)
}

// CheckConnectivity verifies the token against the API with a single listing request.
func (c *Client) CheckConnectivity(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, c.endpoint(foldersPath+"/"), nil, nil)
}

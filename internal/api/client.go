package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/otafleet-io/fleetctl/internal/config"
	"github.com/otafleet-io/fleetctl/pkg/log"
)

// Client is the HTTP plumbing shared by the four backend facades. One client
// is built per invocation; every facade call issues exactly one request.
type Client struct {
	http *http.Client
	log  log.Logger
}

// NewClient creates a backend client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		log:  log.WithName("api"),
	}
}

// BackendError reports a non-2xx response from a backend service. The body is
// passed through untouched so the server's own message reaches the operator.
type BackendError struct {
	Op      string
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Message)
}

// do issues a single JSON request. A nil `in` sends no body; a nil `out`
// discards the response body.
func (c *Client) do(ctx context.Context, cfg *config.Config, op, method, rawURL string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(buf)
	}

	resp, err := c.roundTrip(ctx, cfg, op, method, rawURL, "application/json", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// upload issues a single request with a raw (non-JSON) body.
func (c *Client) upload(ctx context.Context, cfg *config.Config, op, method, rawURL string, body io.Reader) error {
	resp, err := c.roundTrip(ctx, cfg, op, method, rawURL, "application/octet-stream", body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// download issues a single GET and streams the response body to w.
func (c *Client) download(ctx context.Context, cfg *config.Config, op, rawURL string, w io.Writer) error {
	resp, err := c.roundTrip(ctx, cfg, op, http.MethodGet, rawURL, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, cfg *config.Config, op, method, rawURL, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	c.log.Debug("calling backend", "op", op, "method", method, "url", rawURL, "requestId", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &BackendError{Op: op, Status: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}
	return resp, nil
}

// endpoint joins a service base URL with a request path.
func endpoint(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

// listQuery renders ListOptions as a query string, empty when unset.
func listQuery(opts ListOptions) string {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

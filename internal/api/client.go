// Package api talks to the remote REST message service.
package api

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
	"github.com/rs/zerolog"

	"github.com/tOgg1/msgboard/internal/logging"
	"github.com/tOgg1/msgboard/internal/models"
)

const (
	defaultUserAgent = "msgboard"
	maxResponseBytes = 8 << 20

	// RequestIDHeader carries the per-request uuid.
	RequestIDHeader = "X-Request-ID"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the service root; the collection lives at BaseURL/messages.
	BaseURL string

	// Timeout bounds each request when HTTPClient is nil. Zero means no bound.
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client

	UserAgent string
}

// Client issues the four message operations.
// It is safe for concurrent use.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// New validates opts and returns a Client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("base url required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", raw)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		base:       base,
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logging.Component("api"),
	}, nil
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// List fetches the whole collection. Any non-2xx status is an error.
func (c *Client) List(ctx context.Context) ([]models.Message, error) {
	var out []models.Message
	err := c.do(ctx, OpList, http.MethodGet, c.messagesURL(""), nil, isSuccess, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Message{}
	}
	return out, nil
}

// Create posts a new message and returns the server record. A record
// without an id is rejected.
func (c *Client) Create(ctx context.Context, req models.CreateRequest) (models.Message, error) {
	var out models.Message
	accept := func(code int) bool { return code == http.StatusOK || code == http.StatusCreated }
	if err := c.do(ctx, OpCreate, http.MethodPost, c.messagesURL(""), req, accept, &out); err != nil {
		return models.Message{}, err
	}
	if err := out.Validate(); err != nil {
		return models.Message{}, &TransportError{Op: OpCreate, Err: fmt.Errorf("decode response: %w", err)}
	}
	return out, nil
}

// Update replaces the content of id and returns the server record.
func (c *Client) Update(ctx context.Context, id models.ID, req models.UpdateRequest) (models.Message, error) {
	if id.IsZero() {
		return models.Message{}, models.ErrInvalidID
	}
	var out models.Message
	accept := func(code int) bool { return code == http.StatusOK }
	if err := c.do(ctx, OpUpdate, http.MethodPut, c.messagesURL(id.String()), req, accept, &out); err != nil {
		return models.Message{}, err
	}
	if err := out.Validate(); err != nil {
		return models.Message{}, &TransportError{Op: OpUpdate, Err: fmt.Errorf("decode response: %w", err)}
	}
	return out, nil
}

// Delete removes id. Only 204 No Content counts as success.
func (c *Client) Delete(ctx context.Context, id models.ID) error {
	if id.IsZero() {
		return models.ErrInvalidID
	}
	accept := func(code int) bool { return code == http.StatusNoContent }
	return c.do(ctx, OpDelete, http.MethodDelete, c.messagesURL(id.String()), nil, accept, nil)
}

func (c *Client) messagesURL(id string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/messages"
	u.RawPath = ""
	if id != "" {
		u.Path += "/" + id
		u.RawPath = strings.TrimRight(c.base.EscapedPath(), "/") + "/messages/" + url.PathEscape(id)
	}
	return u.String()
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func (c *Client) do(ctx context.Context, op, method, target string, body any, accept func(int) bool, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := logging.WithRequest(c.logger, requestID)
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Str("method", method).Str("url", logging.RedactURL(target)).Msg("request failed")
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("method", method).
		Str("url", logging.RedactURL(target)).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("request done")

	if !accept(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// Package store is a thin REST client for the hierarchical document store
// backing the API. Every record is addressed by a slash-separated path and
// exchanged as JSON; the store reports an absent path as a JSON null.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Sentinel errors distinguishing failed reads from failed writes. Callers
// match with errors.Is to pick a response code.
var (
	ErrReadFailed  = errors.New("store: read failed")
	ErrWriteFailed = errors.New("store: write failed")
)

// Client talks to the document store over its REST surface.
type Client struct {
	baseURL string
	auth    string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a store client for the given base URL. auth may be empty;
// when set it is sent as the store's auth query credential on every call.
func New(baseURL, auth string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "store").Logger(),
	}
}

// Get reads the document at path into dest. Returns false (and leaves dest
// untouched) when the path holds nothing.
func (c *Client) Get(ctx context.Context, path string, dest interface{}) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrReadFailed, path, err)
	}

	if isNull(body) {
		return false, nil
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", ErrReadFailed, path, err)
	}
	return true, nil
}

// Exists reports whether any document is stored at path.
func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrReadFailed, path, err)
	}
	return !isNull(body), nil
}

// Set writes v at path, replacing whatever was stored there.
func (c *Client) Set(ctx context.Context, path string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrWriteFailed, path, err)
	}
	if _, err := c.do(ctx, http.MethodPut, path, payload); err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}

// Update merges partial into the document at path without touching
// unnamed children.
func (c *Client) Update(ctx context.Context, path string, partial map[string]interface{}) error {
	payload, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrWriteFailed, path, err)
	}
	if _, err := c.do(ctx, http.MethodPatch, path, payload); err != nil {
		return fmt.Errorf("%w: patch %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}

// Delete removes the document (or subtree) at path. Deleting an absent
// path succeeds; deletes are idempotent.
func (c *Client) Delete(ctx context.Context, path string) error {
	if _, err := c.do(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("Store request rejected")
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return data, nil
}

// endpoint builds the REST URL for a store path: the path is appended to the
// base URL with a .json suffix, plus the auth credential when configured.
func (c *Client) endpoint(path string) string {
	u := c.baseURL + "/" + strings.Trim(path, "/") + ".json"
	if c.auth != "" {
		u += "?auth=" + url.QueryEscape(c.auth)
	}
	return u
}

func isNull(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null"))
}

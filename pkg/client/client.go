package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Client talks to the campus API. One round trip per call, no retries and no
// caching.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     oauth2.TokenSource
}

func New(baseURL string, tokens oauth2.TokenSource) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Tokens:     tokens,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &ValidationError{Message: "encode request body: " + err.Error()}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &ValidationError{Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.Tokens != nil {
		tok, err := c.Tokens.Token()
		if err != nil {
			return &NetworkError{URL: endpoint, Err: err}
		}
		tok.SetAuthHeader(req)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// errorMessage pulls a human-readable message out of an error body. "detail"
// wins over "message"; an unreadable body falls back to the status text.
func errorMessage(raw []byte, status int) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		if s, ok := body["detail"].(string); ok && s != "" {
			return s
		}
		if s, ok := body["message"].(string); ok && s != "" {
			return s
		}
	}
	return http.StatusText(status)
}

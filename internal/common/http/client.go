package http

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"juriscontent-workers/internal/common/errors"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// ErrBodyTooLarge is returned by GetLimited once a response body passes the
// caller's limit.
var ErrBodyTooLarge = stderrors.New("response body exceeds limit")

type Client struct {
	httpClient *http.Client
	service    string
	headers    map[string]string
}

// NewClient returns a client whose failures are reported as coming from
// service.
func NewClient(service string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		service: service,
		headers: map[string]string{},
	}
}

// WithHeader returns a copy of c that sends key on every request.
func (c *Client) WithHeader(key, value string) *Client {
	headers := make(map[string]string, len(c.headers)+1)
	for k, v := range c.headers {
		headers[k] = v
	}
	headers[key] = value
	return &Client{httpClient: c.httpClient, service: c.service, headers: headers}
}

func (c *Client) Service() string { return c.service }

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.Do(req.WithContext(ctx))
}

// GetLimited fetches endpoint and returns the body of a 2xx response. A body
// larger than maxBytes fails with ErrBodyTooLarge without being read past
// maxBytes+1; maxBytes <= 0 means no cap.
func (c *Client) GetLimited(ctx context.Context, endpoint string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.sendLimited(req, maxBytes)
}

// PostJSON posts payload as JSON and decodes a 2xx response into out,
// which may be nil.
func (c *Client) PostJSON(ctx context.Context, endpoint string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.send(req)
	if err != nil {
		return err
	}
	return c.decode(respBody, out)
}

// PostForm posts form url-encoded and returns the raw 2xx body.
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(req)
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	return c.sendLimited(req, 0)
}

// sendLimited reads at most maxBytes of a 2xx body; maxBytes <= 0 means
// no cap.
func (c *Client) sendLimited(req *http.Request, maxBytes int64) ([]byte, error) {
	resp, err := c.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, errors.NewTimeoutError(c.service, ctxErr)
		}
		return nil, &errors.UpstreamError{Service: c.service, Message: err.Error()}
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reader = io.LimitReader(resp.Body, 64<<10)
	} else if maxBytes > 0 {
		if resp.ContentLength > maxBytes {
			return nil, fmt.Errorf("%s: %w (%d > %d)", c.service, ErrBodyTooLarge, resp.ContentLength, maxBytes)
		}
		reader = io.LimitReader(resp.Body, maxBytes+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &errors.UpstreamError{Service: c.service, Status: resp.StatusCode, Message: "read body: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.UpstreamError{
			Service: c.service,
			Status:  resp.StatusCode,
			Message: errorMessage(body),
		}
	}
	if maxBytes > 0 && int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("%s: %w (limit %d)", c.service, ErrBodyTooLarge, maxBytes)
	}
	return body, nil
}

func (c *Client) decode(body []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &errors.UpstreamError{
			Service: c.service,
			Status:  http.StatusBadGateway,
			Message: "invalid JSON response: " + err.Error(),
		}
	}
	return nil
}

// errorMessage prefers an "error" or "message" field from a JSON body.
func errorMessage(body []byte) string {
	var parsed struct {
		Error   interface{} `json:"error"`
		Message string      `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		switch e := parsed.Error.(type) {
		case string:
			if e != "" {
				return e
			}
		case map[string]interface{}:
			if msg, ok := e["message"].(string); ok && msg != "" {
				return msg
			}
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = truncateRunes(text, maxErrorBody)
	}
	if text == "" {
		return "empty response"
	}
	return text
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Package api is the typed HTTP client for the practice-management backend.
// It owns bearer-token injection and the one-shot token refresh on expiry;
// everything else is plain request/response plumbing. All validation,
// persistence and financial calculation happen server-side.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/meridianfirm/firmdesk/internal/common"
	"github.com/meridianfirm/firmdesk/internal/session"
)

const defaultTimeout = 30 * time.Second

// Client talks to the backend REST API rooted at <base>/api/.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	sessions   session.Store
	validate   *validator.Validate
	refresh    singleflight.Group
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a Client for the given base URL (for example
// "http://localhost:8000"). The /api/ root is appended when missing.
func New(base string, store session.Store, opts ...Option) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("%w: api.base_url is not set", common.ErrMissingConfig)
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if !strings.HasSuffix(base, "/api/") {
		base += "api/"
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		sessions:   store,
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// APIError is a non-2xx backend response. The raw payload is kept so the
// server's structured validation messages can be surfaced verbatim.
type APIError struct {
	StatusCode int
	Status     string
	Body       []byte
	RequestID  string
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("server rejected request (%s): %s", e.Status, msg)
	}
	if len(e.Body) > 0 {
		return fmt.Sprintf("server rejected request (%s): %s", e.Status, string(e.Body))
	}
	return fmt.Sprintf("server rejected request (%s)", e.Status)
}

// Message extracts the conventional "error" or "detail" field from the
// payload, or "" when the body is not shaped that way.
func (e *APIError) Message() string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(e.Body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Detail
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path += strings.TrimPrefix(path, "/")
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// get issues a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

// post marshals body (validating it first when it is a tagged struct) and
// issues a POST.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := c.encode(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, "application/json", payload, out)
}

// patch issues a partial update.
func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	payload, err := c.encode(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, nil, "application/json", payload, out)
}

// delete issues a DELETE, tolerating an empty response body.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil, nil)
}

// postMultipart issues a POST with a prebuilt multipart body.
func (c *Client) postMultipart(ctx context.Context, path, contentType string, body []byte, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, contentType, body, out)
}

func (c *Client) encode(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}

	// Client-side validation is fast feedback only; the backend remains
	// authoritative and its rejections are surfaced verbatim.
	v := reflect.ValueOf(body)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		if err := c.validate.Struct(v.Interface()); err != nil {
			return nil, common.NewUserError("invalid request", err)
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return payload, nil
}

// do sends the request, transparently refreshing the access token on a 401
// exactly once. The payload is kept as bytes so the replay can rebuild an
// identical request body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, payload []byte, out any) error {
	resp, body, err := c.send(ctx, method, path, query, contentType, payload, false)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if refreshErr := c.refreshAccessToken(ctx); refreshErr != nil {
			// A dead refresh token is terminal for the session.
			if clearErr := c.sessions.Clear(); clearErr != nil {
				slog.Warn("failed to clear session after refresh failure", "error", clearErr)
			}
			return fmt.Errorf("%w: %v", common.ErrSessionExpired, refreshErr)
		}

		resp, body, err = c.send(ctx, method, path, query, contentType, payload, true)
		if err != nil {
			return err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
			RequestID:  resp.Request.Header.Get("X-Request-ID"),
		}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// send performs one HTTP round trip. A request built with retried=true is
// never retried again, which is what prevents refresh loops.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, contentType string, payload []byte, retried bool) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.sessions.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slog.Debug("API request",
		"method", method,
		"path", path,
		"retried", retried,
		"request_id", req.Header.Get("X-Request-ID"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if retried && resp.StatusCode == http.StatusUnauthorized {
		// Treat as a hard failure rather than looping.
		return nil, nil, fmt.Errorf("%w: still unauthorized after token refresh", common.ErrSessionExpired)
	}

	return resp, body, nil
}

// postUnauthenticated issues a POST without bearer credentials and without
// the refresh-on-401 behavior. Used for the auth endpoints themselves, where
// a 401 means bad credentials, not an expired session.
func (c *Client) postUnauthenticated(ctx context.Context, path string, body, out any) error {
	payload, err := c.encode(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: respBody}
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// refreshAccessToken exchanges the refresh token for a new access token.
// Concurrent callers share one in-flight refresh.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		refreshToken := c.sessions.RefreshToken()
		if refreshToken == "" {
			return nil, common.ErrNotLoggedIn
		}

		payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
		if err != nil {
			return nil, fmt.Errorf("failed to encode refresh request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("token/refresh/", nil), bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create refresh request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("refresh request failed: %w", err)
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read refresh response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("refresh rejected: %s: %s", resp.Status, string(body))
		}

		var tokens struct {
			Access string `json:"access"`
		}
		if err := json.Unmarshal(body, &tokens); err != nil {
			return nil, fmt.Errorf("failed to decode refresh response: %w", err)
		}
		if tokens.Access == "" {
			return nil, fmt.Errorf("refresh response missing access token")
		}

		if err := c.sessions.SetAccessToken(tokens.Access); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}

		slog.Debug("access token refreshed")
		return nil, nil
	})
	return err
}

// ActionResult is the conventional {"status": "..."} payload returned by the
// backend's action endpoints.
type ActionResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

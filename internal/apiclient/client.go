package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/helper-labs/helper-portal/internal/logging"
	"github.com/helper-labs/helper-portal/internal/model"
	"go.uber.org/zap"
)

const (
	// AccessTokenCookie and RefreshTokenCookie are the cookie names the server sets on login.
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	// RefreshTokenHeader carries the refresh token on privileged requests.
	RefreshTokenHeader = "X-Refresh-Token"
	RequestIDHeader    = "X-Request-Id"
)

// Client is a thin wrapper over the portal's HTTP API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     http.CookieJar
	logger  *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithJar sets the cookie storage. The default is an in-memory jar.
func WithJar(jar http.CookieJar) Option {
	return func(c *Client) {
		if jar != nil {
			c.jar = jar
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logging.OrNop(logger)
	}
}

// WithHTTPClient replaces the transport client. Its Jar is overwritten.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates an API client. A zero timeout leaves the transport default in place.
func New(rawURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if parsed.Scheme == "" {
		return nil, fmt.Errorf("base url must include scheme")
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	c := &Client{
		baseURL: parsed,
		http:    &http.Client{Timeout: timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.jar = jar
	}
	c.http.Jar = c.jar
	return c, nil
}

// BaseURL returns the configured API URL without trailing slash.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.baseURL.String(), "/")
}

// Credentials re-reads the token cookies from the jar. Nothing is cached.
func (c *Client) Credentials() model.Credentials {
	var creds model.Credentials
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		switch cookie.Name {
		case AccessTokenCookie:
			creds.AccessToken = cookie.Value
		case RefreshTokenCookie:
			creds.RefreshToken = cookie.Value
		}
	}
	return creds
}

func (c *Client) get(ctx context.Context, p string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, p, query, nil)
}

func (c *Client) post(ctx context.Context, p string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, p, nil, body)
}

func (c *Client) do(ctx context.Context, method, p string, query url.Values, body any) ([]byte, error) {
	req, err := c.newRequest(ctx, method, p, query, body)
	if err != nil {
		return nil, &RequestError{Op: method + " " + p, Err: err}
	}
	requestID := req.Header.Get(RequestIDHeader)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", p),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, &TransportError{Op: method + " " + p, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: method + " " + p, Err: err}
	}
	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", p),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, payload)
	}
	return payload, nil
}

func (c *Client) newRequest(ctx context.Context, method, p string, query url.Values, body any) (*http.Request, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context")
	}
	target := c.resolve(p)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.decorate(req, p)
	return req, nil
}

func (c *Client) resolve(p string) string {
	u := *c.baseURL
	u.Path = path.Join(c.baseURL.Path, p)
	return u.String()
}

// decorate applies the single credential policy: cookies always travel
// through the jar, and privileged paths also carry the tokens as headers.
func (c *Client) decorate(req *http.Request, p string) {
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if !privileged(p) {
		return
	}
	creds := c.Credentials()
	if creds.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	}
	if creds.RefreshToken != "" {
		req.Header.Set(RefreshTokenHeader, creds.RefreshToken)
	}
}

func privileged(p string) bool {
	return strings.HasPrefix(p, "/member/") ||
		strings.HasPrefix(p, "/admin/") ||
		p == pathLogout
}

func decodeJSON[T any](payload []byte, p string) (T, error) {
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", p, err)
	}
	return out, nil
}

// text normalises a plain text body, unquoting it if the server sent a JSON string.
func text(payload []byte) string {
	s := strings.TrimSpace(string(payload))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var unquoted string
		if err := json.Unmarshal([]byte(s), &unquoted); err == nil {
			return unquoted
		}
	}
	return s
}

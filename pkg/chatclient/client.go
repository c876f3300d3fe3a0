package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultServerURL = "http://localhost:8000"
	DefaultBasePath  = "/api/v1/chatbot"
)

// Client is a stateless client for the analytics chatbot API. It performs no business
// logic: responses are decoded and returned as-is, and failures are classified into
// *AuthError and *NetworkError.
type Client struct {
	BaseURL    string
	BasePath   string
	HTTPClient *http.Client
	Tokens     TokenProvider
}

// Option is a functional option for configuring the client
type Option func(*Client)

// WithServerURL sets the server URL for the client
func WithServerURL(url string) Option {
	return func(c *Client) {
		c.BaseURL = strings.TrimSuffix(url, "/")
	}
}

// WithBasePath overrides the API prefix prepended to every endpoint.
func WithBasePath(path string) Option {
	return func(c *Client) {
		c.BasePath = "/" + strings.Trim(path, "/")
	}
}

// WithTokenProvider sets the source of bearer tokens for authenticated calls
func WithTokenProvider(tp TokenProvider) Option {
	return func(c *Client) {
		c.Tokens = tp
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = httpClient
	}
}

// New creates a new chatbot API client
func New(opts ...Option) *Client {
	client := &Client{
		BaseURL:  DefaultServerURL,
		BasePath: DefaultBasePath,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// authorize validates the token before any privileged call and returns the header value.
func (c *Client) authorize(ctx context.Context) (string, error) {
	if c.Tokens == nil {
		return "", &AuthError{Reason: "no token provider configured"}
	}
	if err := c.Tokens.EnsureValid(ctx); err != nil {
		return "", &AuthError{Reason: "token validation failed", Err: err}
	}
	token, err := c.Tokens.GetToken(ctx)
	if err != nil {
		return "", &AuthError{Reason: "could not obtain token", Err: err}
	}
	if token == "" {
		return "", &AuthError{Reason: "empty token"}
	}
	return "Bearer " + token, nil
}

// do performs a request against the API. body and result may be nil.
func (c *Client) do(ctx context.Context, endpoint, method, path string, authenticated bool, body, result interface{}) (err error) {
	start := time.Now()
	defer func() {
		observeRequest(endpoint, start, err)
	}()

	var authHeader string
	if authenticated {
		if authHeader, err = c.authorize(ctx); err != nil {
			return err
		}
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	url := c.BaseURL + c.BasePath + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	log.WithFields(log.Fields{"method": method, "url": url}).Debug("chatbot request")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		respBody, _ := io.ReadAll(resp.Body)
		return &AuthError{Reason: "server rejected token", StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &NetworkError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &NetworkError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	return nil
}

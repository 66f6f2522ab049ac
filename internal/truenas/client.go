// Package truenas provides the HTTP client for the TrueNAS v2.0 REST API.
package truenas

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	units "github.com/docker/go-units"
)

// Method is the request method for an API resource. The API only ever needs
// GET and POST, so this is a closed two-value type rather than a free string.
type Method int

const (
	MethodGet Method = iota
	MethodPost
)

func (m Method) String() string {
	if m == MethodPost {
		return http.MethodPost
	}
	return http.MethodGet
}

// RequestError is any failure to obtain a valid JSON response from the
// appliance: network errors, non-2xx statuses, and undecodable bodies.
// Callers map it uniformly to an UNKNOWN verdict.
type RequestError struct {
	URL    string
	Status string // HTTP status line, if a response was received
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("request to %s failed with status %s", e.URL, e.Status)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Config holds everything needed to construct a Client.
type Config struct {
	Host       string
	Username   string // empty means API-key (bearer) auth
	Secret     string // password or API key
	UseTLS     bool
	VerifyCert bool
	Timeout    time.Duration
	Logger     *slog.Logger
}

// Client issues authenticated requests against a single appliance.
type Client struct {
	baseURL    string
	auth       AuthMode
	httpClient *http.Client
	logger     *slog.Logger
}

// DefaultTimeout bounds a single request when the config leaves it unset.
const DefaultTimeout = 30 * time.Second

// NewClient creates a client for the appliance described by cfg.
func NewClient(cfg Config) *Client {
	scheme := "http"
	if cfg.UseTLS {
		scheme = "https"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	httpClient := &http.Client{Timeout: timeout}
	if !cfg.VerifyCert {
		// Skipping verification needs its own transport; the shared default
		// must not be mutated.
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	c := &Client{
		baseURL:    fmt.Sprintf("%s://%s/api/v2.0", scheme, cfg.Host),
		auth:       ResolveAuth(cfg.Username, cfg.Secret),
		httpClient: httpClient,
		logger:     logger,
	}

	logger.Debug("client configured",
		"base_url", c.baseURL,
		"verify_cert", cfg.VerifyCert,
		"timeout", timeout,
	)
	return c
}

// Do performs a single GET or POST against the named resource and returns the
// raw JSON body. One attempt only; there are no retries. The trailing slash
// on the request URL is required by the API.
func (c *Client) Do(ctx context.Context, method Method, resource string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/%s/", c.baseURL, resource)
	c.logger.Debug("sending request", "method", method.String(), "url", url)

	req, err := http.NewRequestWithContext(ctx, method.String(), url, nil)
	if err != nil {
		return nil, &RequestError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}

	switch c.auth.Kind {
	case AuthBasic:
		req.SetBasicAuth(c.auth.Username, c.auth.Secret)
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.auth.Secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{URL: url, Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{URL: url, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("response received",
		"status", resp.Status,
		"size", units.HumanSize(float64(len(body))),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{URL: url, Status: resp.Status, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if !json.Valid(body) {
		return nil, &RequestError{URL: url, Err: fmt.Errorf("response is not valid JSON")}
	}

	return json.RawMessage(body), nil
}

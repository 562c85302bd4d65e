// Package registryapi provides a thin client for the public Terraform
// registry HTTP API: module details lookup and module search.
package registryapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public Terraform registry.
const DefaultBaseURL = "https://registry.terraform.io"

// RegistryError reports a non-200 response from the registry. The raw body
// is preserved so callers can surface it verbatim.
type RegistryError struct {
	StatusCode int
	Body       string
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("registry returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Client talks to the Terraform registry API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the registry endpoint (no trailing slash).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a registry client with default settings.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: cleanhttp.DefaultPooledClient(),
		baseURL:    DefaultBaseURL,
		logger:     logrus.StandardLogger(),
	}
	c.httpClient.Timeout = 30 * time.Second

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ModuleDetails is the subset of the registry details payload the server
// consumes. Version may be empty when the registry omits it.
type ModuleDetails struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// ModuleSummary is one entry of a search result.
type ModuleSummary struct {
	Namespace   string `json:"namespace"`
	Name        string `json:"name"`
	Provider    string `json:"provider"`
	Description string `json:"description"`
	Downloads   int    `json:"downloads"`
	Version     string `json:"version"`
}

// SearchResult is the payload of the module search endpoint.
type SearchResult struct {
	Modules []ModuleSummary `json:"modules"`
}

// Details fetches the module details record for id. A non-200 status is a
// *RegistryError carrying the raw response body. A missing version field is
// not an error.
func (c *Client) Details(ctx context.Context, id ModuleID) (*ModuleDetails, error) {
	u := fmt.Sprintf("%s/v1/modules/%s/%s/%s", c.baseURL, id.Namespace, id.Name, id.Provider)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var details ModuleDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to decode module details: %w", err)
	}

	return &details, nil
}

// Search queries the registry module search endpoint. Provider narrows the
// results when non-empty.
func (c *Client) Search(ctx context.Context, query, provider string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	if provider != "" {
		params.Set("provider", provider)
	}
	u := fmt.Sprintf("%s/v1/modules/search?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	return &result, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	c.logger.WithField("url", u).Debug("registry request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RegistryError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

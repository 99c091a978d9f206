package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultAPIURL is the base URL of the GitHub REST API.
	DefaultAPIURL = "https://api.github.com"
	// DefaultBranch is used whenever the default branch cannot be resolved.
	DefaultBranch = "main"
	// RawContentURL is the base URL for raw file contents.
	RawContentURL = "https://raw.githubusercontent.com"

	defaultHTTPTimeout = 30 * time.Second
)

// Authenticator applies credentials to outgoing requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth sends requests unauthenticated.
type NoAuth struct{}

func (NoAuth) Apply(*http.Request) {}

// BearerAuth sends a bearer token.
type BearerAuth struct {
	Token string
}

func (a BearerAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// HostingClient talks to the hosting API and the plain HTTP endpoints the
// tool reads from.
type HostingClient struct {
	http    *http.Client
	auth    Authenticator
	baseURL string
}

// NewHostingClient creates a client for the API at baseURL. An empty token
// sends requests unauthenticated.
func NewHostingClient(baseURL, token string) *HostingClient {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	var auth Authenticator = NoAuth{}
	if token != "" {
		auth = BearerAuth{Token: token}
	}
	return &HostingClient{
		http:    &http.Client{Timeout: defaultHTTPTimeout},
		auth:    auth,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// get performs a GET request and returns the body of a 2xx response.
func (c *HostingClient) get(ctx context.Context, url string, auth Authenticator) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request GET %s: %w", url, err)
	}
	auth.Apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response GET %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Endpoint: url, StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return body, nil
}

// Fetch downloads url without API credentials.
func (c *HostingClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url, NoAuth{})
}

// DefaultBranch asks the hosting API for the default branch of owner/repo.
// It never fails: any problem is logged and DefaultBranch is returned.
func (c *HostingClient) DefaultBranch(ctx context.Context, owner, repo string) string {
	log := zerolog.Ctx(ctx)
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)

	body, err := c.get(ctx, url, c.auth)
	if err != nil {
		log.Warn().Err(err).Str("fallback", DefaultBranch).Msg("could not fetch default branch")
		return DefaultBranch
	}

	var meta struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := json.Unmarshal(body, &meta); err != nil || meta.DefaultBranch == "" {
		log.Warn().Err(err).Str("fallback", DefaultBranch).Msg("no default branch in API response")
		return DefaultBranch
	}
	return meta.DefaultBranch
}

// rawURL returns the raw content URL of path in owner/repo at branch.
func rawURL(owner, repo, branch, path string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", RawContentURL, owner, repo, branch, path)
}

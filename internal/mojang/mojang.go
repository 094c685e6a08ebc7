package mojang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultSessionURL = "https://sessionserver.mojang.com"
	defaultAccountURL = "https://api.mojang.com"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,16}$`)

// Profile is an account profile as returned by the session servers.
type Profile struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Properties []Property `json:"properties"`
}

// Property is a signed key/value attribute attached to a profile.
type Property struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature"`
}

// Client talks to the Mojang account and session APIs.
type Client struct {
	http       *http.Client
	sessionURL string
	accountURL string
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURLs overrides the session and account API endpoints. Used by
// tests to point the client at a local server.
func WithBaseURLs(sessionURL, accountURL string) Option {
	return func(c *Client) {
		c.sessionURL = strings.TrimRight(sessionURL, "/")
		c.accountURL = strings.TrimRight(accountURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient returns a Client with a 10s request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: 10 * time.Second},
		sessionURL: defaultSessionURL,
		accountURL: defaultAccountURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Profile fetches the signed profile for the given identifier. A nil
// profile with a nil error means the identifier does not belong to any
// account; transport and decoding failures are returned as errors.
func (c *Client) Profile(ctx context.Context, id string) (*Profile, error) {
	endpoint := fmt.Sprintf("%s/session/minecraft/profile/%s?unsigned=false", c.sessionURL, url.PathEscape(id))

	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent || status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("mojang: profile request returned status %d", status)
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("mojang: decode profile: %w", err)
	}
	return &profile, nil
}

// UUIDByName resolves a username to its account identifier. An empty
// string with a nil error means the name is unassigned.
func (c *Client) UUIDByName(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/users/profiles/minecraft/%s", c.accountURL, url.PathEscape(name))

	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return "", err
	}
	if status == http.StatusNoContent || status == http.StatusNotFound {
		return "", nil
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("mojang: uuid request returned status %d", status)
	}

	var result struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("mojang: decode uuid response: %w", err)
	}
	return result.ID, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("mojang: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, 0, fmt.Errorf("mojang: read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// IsUUID reports whether s is a well-formed account identifier. Both the
// dashed and the plain 32-hex forms are accepted.
func IsUUID(s string) bool {
	if len(s) != 32 && len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// NormalizeUUID strips dashes and lowercases so identifiers compare equal
// regardless of the submitted form.
func NormalizeUUID(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", ""))
}

// IsValidUsername reports whether s satisfies the account name syntax.
func IsValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

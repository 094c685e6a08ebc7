package api

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Permission grants recognised by the token registry.
type Permission string

const (
	PermAdmin             Permission = "SKINDB_ADMIN"
	PermAdvancedStats     Permission = "SKINDB_ADVANCED_STATISTICS"
	PermInternalUserAgent Permission = "INTERNAL_USER_AGENT"
)

// TokenRegistry maps caller tokens to their permission grants. The
// registry is immutable after loading.
type TokenRegistry struct {
	tokens map[string][]Permission
}

// NewTokenRegistry builds a registry from an in-memory mapping.
func NewTokenRegistry(tokens map[string][]Permission) *TokenRegistry {
	if tokens == nil {
		tokens = map[string][]Permission{}
	}
	return &TokenRegistry{tokens: tokens}
}

// LoadTokens reads a YAML file mapping tokens to permission lists. An
// empty path yields an empty registry, so running without tokens is valid.
func LoadTokens(path string) (*TokenRegistry, error) {
	if path == "" {
		return NewTokenRegistry(nil), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tokens file: %w", err)
	}

	var parsed map[string][]string
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse tokens file: %w", err)
	}

	tokens := make(map[string][]Permission, len(parsed))
	for token, perms := range parsed {
		list := make([]Permission, 0, len(perms))
		for _, p := range perms {
			list = append(list, Permission(p))
		}
		tokens[token] = list
	}
	return NewTokenRegistry(tokens), nil
}

// Permissions returns the grants for a token; unknown tokens have none.
func (r *TokenRegistry) Permissions(token string) []Permission {
	if token == "" {
		return nil
	}
	return r.tokens[token]
}

// Has reports whether the token carries the given permission.
func (r *TokenRegistry) Has(token string, perm Permission) bool {
	for _, p := range r.Permissions(token) {
		if p == perm {
			return true
		}
	}
	return false
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

package api

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTokens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.yaml")

	content := `
admin-token:
  - SKINDB_ADMIN
  - SKINDB_ADVANCED_STATISTICS
crawler-token:
  - INTERNAL_USER_AGENT
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write tokens file: %v", err)
	}

	registry, err := LoadTokens(path)
	if err != nil {
		t.Fatalf("LoadTokens() error = %v", err)
	}

	if !registry.Has("admin-token", PermAdmin) {
		t.Error("admin-token should carry SKINDB_ADMIN")
	}
	if !registry.Has("admin-token", PermAdvancedStats) {
		t.Error("admin-token should carry SKINDB_ADVANCED_STATISTICS")
	}
	if registry.Has("admin-token", PermInternalUserAgent) {
		t.Error("admin-token should not carry INTERNAL_USER_AGENT")
	}
	if !registry.Has("crawler-token", PermInternalUserAgent) {
		t.Error("crawler-token should carry INTERNAL_USER_AGENT")
	}
	if registry.Has("unknown-token", PermAdmin) {
		t.Error("unknown tokens must have no grants")
	}
	if registry.Has("", PermAdmin) {
		t.Error("the empty token must have no grants")
	}
}

func TestLoadTokensEmptyPath(t *testing.T) {
	registry, err := LoadTokens("")
	if err != nil {
		t.Fatalf("LoadTokens(\"\") error = %v", err)
	}
	if registry.Has("any", PermAdmin) {
		t.Error("empty registry granted a permission")
	}
}

func TestLoadTokensRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.yaml")
	if err := os.WriteFile(path, []byte("{{not yaml"), 0o600); err != nil {
		t.Fatalf("write tokens file: %v", err)
	}

	if _, err := LoadTokens(path); err == nil {
		t.Fatal("LoadTokens() accepted malformed yaml")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer token", header: "Bearer abc123", want: "abc123"},
		{name: "no header", header: "", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "bearer with padding", header: "Bearer   abc123", want: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/stats", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := bearerToken(r); got != tt.want {
				t.Fatalf("bearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name                 string
		env, file, def, want string
	}{
		{"env wins", "from-env", "from-file", "from-default", "from-env"},
		{"file beats default", "", "from-file", "from-default", "from-file"},
		{"default last", "", "", "from-default", "from-default"},
		{"all empty", "", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.env, tc.file, tc.def); got != tc.want {
				t.Errorf("Resolve(%q, %q, %q) = %q, want %q", tc.env, tc.file, tc.def, got, tc.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"bing": {"api_key": "bing-key", "endpoint": "http://bing.local"},
		"brave": {"api_key": "brave-key"},
		"searxng": {"endpoint": "http://searx.local:8888"}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	f := LoadFile(path)
	if f["bing"].APIKey != "bing-key" || f["bing"].Endpoint != "http://bing.local" {
		t.Errorf("unexpected bing config: %+v", f["bing"])
	}
	if f["brave"].APIKey != "brave-key" || f["brave"].Endpoint != "" {
		t.Errorf("unexpected brave config: %+v", f["brave"])
	}
	if f["searxng"].Endpoint != "http://searx.local:8888" {
		t.Errorf("unexpected searxng config: %+v", f["searxng"])
	}
}

func TestLoadFile_MissingIsEmpty(t *testing.T) {
	f := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if len(f) != 0 {
		t.Errorf("expected empty layer for missing file, got %+v", f)
	}
}

func TestLoadFile_MalformedIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	f := LoadFile(path)
	if len(f) != 0 {
		t.Errorf("expected empty layer for malformed file, got %+v", f)
	}
}

func TestResolveBackend_EnvPrecedence(t *testing.T) {
	t.Setenv("BING_API_KEY", "env-key")
	t.Setenv("BING_ENDPOINT", "")

	file := File{"bing": {APIKey: "file-key", Endpoint: "http://file.local"}}
	b := ResolveBackend("bing", file, DefaultBingEndpoint)

	if b.APIKey != "env-key" {
		t.Errorf("expected env key to win, got %q", b.APIKey)
	}
	if b.Endpoint != "http://file.local" {
		t.Errorf("expected file endpoint, got %q", b.Endpoint)
	}
}

func TestResolveBackend_Defaults(t *testing.T) {
	t.Setenv("BRAVE_API_KEY", "")
	t.Setenv("BRAVE_ENDPOINT", "")

	b := ResolveBackend("brave", File{}, DefaultBraveEndpoint)
	if b.APIKey != "" {
		t.Errorf("expected no default API key, got %q", b.APIKey)
	}
	if b.Endpoint != DefaultBraveEndpoint {
		t.Errorf("expected default endpoint, got %q", b.Endpoint)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("BING_API_KEY", "")
	t.Setenv("BING_ENDPOINT", "")
	t.Setenv("BRAVE_API_KEY", "")
	t.Setenv("BRAVE_ENDPOINT", "")
	t.Setenv("SEARXNG_API_KEY", "")
	t.Setenv("SEARXNG_ENDPOINT", "env-endpoint")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"bing": {"api_key": "k"}}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	s := Load(path)
	if s.Bing.APIKey != "k" || s.Bing.Endpoint != DefaultBingEndpoint {
		t.Errorf("unexpected bing settings: %+v", s.Bing)
	}
	if s.SearXNG.Endpoint != "env-endpoint" {
		t.Errorf("expected env endpoint for searxng, got %q", s.SearXNG.Endpoint)
	}
	if s.Brave.Endpoint != DefaultBraveEndpoint {
		t.Errorf("expected default brave endpoint, got %q", s.Brave.Endpoint)
	}
}

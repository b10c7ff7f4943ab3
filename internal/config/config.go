package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Hardcoded fallback endpoints. API keys have no fallback: a key-requiring
// backend with no key configured is a fatal configuration error.
const (
	DefaultBingEndpoint    = "https://api.bing.microsoft.com/v7.0/search"
	DefaultBraveEndpoint   = "https://api.search.brave.com/res/v1/web/search"
	DefaultSearXNGEndpoint = "http://localhost:8080"
)

// DefaultFile is the config file consulted when none is specified.
const DefaultFile = "config.json"

// Backend holds the credentials for one search backend.
type Backend struct {
	APIKey   string
	Endpoint string
}

// File is the config-file layer: per-backend sections keyed by backend name.
type File map[string]Backend

// backendNames are the sections read from the config file.
var backendNames = []string{"bing", "brave", "searxng"}

// LoadFile reads the JSON config file. A missing or malformed file yields an
// empty layer rather than an error; resolution then falls through to the
// hardcoded defaults.
func LoadFile(path string) File {
	if path == "" {
		path = DefaultFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return File{}
	}

	f := File{}
	for _, name := range backendNames {
		f[name] = Backend{
			APIKey:   v.GetString(name + ".api_key"),
			Endpoint: v.GetString(name + ".endpoint"),
		}
	}
	return f
}

// Resolve applies the precedence environment > config file > default for a
// single value. It is a pure function of its three layers so resolution can
// be tested without touching the environment or the filesystem.
func Resolve(envValue, fileValue, defaultValue string) string {
	if envValue != "" {
		return envValue
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// ResolveBackend resolves one backend's credentials against the current
// environment (<NAME>_API_KEY, <NAME>_ENDPOINT), the config-file layer, and
// the hardcoded default endpoint.
func ResolveBackend(name string, file File, defaultEndpoint string) Backend {
	upper := strings.ToUpper(name)
	return Backend{
		APIKey:   Resolve(os.Getenv(upper+"_API_KEY"), file[name].APIKey, ""),
		Endpoint: Resolve(os.Getenv(upper+"_ENDPOINT"), file[name].Endpoint, defaultEndpoint),
	}
}

// Settings aggregates the resolved configuration for every API backend.
type Settings struct {
	Bing    Backend
	Brave   Backend
	SearXNG Backend
}

// Load reads the config file at path and resolves every backend.
func Load(path string) Settings {
	file := LoadFile(path)
	return Settings{
		Bing:    ResolveBackend("bing", file, DefaultBingEndpoint),
		Brave:   ResolveBackend("brave", file, DefaultBraveEndpoint),
		SearXNG: ResolveBackend("searxng", file, DefaultSearXNGEndpoint),
	}
}

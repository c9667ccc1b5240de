// Package config resolves where the venus API lives.
//
// Resolution happens once at startup; the resulting Endpoints value is passed
// to the client and never changed. A different target means a new Endpoints
// value and a new client.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Mode selects the build-time defaults.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// DefaultDevRoot is the API root used in development when no override is set.
const DefaultDevRoot = "http://localhost:8085"

// Source holds the raw inputs to Resolve.
type Source struct {
	// Override replaces the API root when non-empty (VENUS_API_URL).
	Override string `envconfig:"API_URL" default:""`
	// Mode picks the fallback root when Override is empty (VENUS_MODE).
	Mode Mode `envconfig:"MODE" default:"development"`
}

// Endpoints is the resolved, immutable transport configuration.
type Endpoints struct {
	// BaseURL prefixes every API path, e.g. http://host:8085/api or /api.
	BaseURL string
	// ImageBaseURL is the bare root used to build direct image URLs.
	ImageBaseURL string
}

// Resolve derives Endpoints from src. It never fails: with no override and no
// development mode the result is same-origin relative ("/api").
func Resolve(src Source) Endpoints {
	root := strings.TrimRight(strings.TrimSpace(src.Override), "/")
	if root == "" && src.Mode == ModeDevelopment {
		root = DefaultDevRoot
	}
	return Endpoints{
		BaseURL:      root + "/api",
		ImageBaseURL: root,
	}
}

// IsRelative reports whether the endpoints carry no origin and therefore only
// work behind a transport that supplies one.
func (e Endpoints) IsRelative() bool {
	return e.ImageBaseURL == ""
}

// FromEnv reads Source from VENUS_-prefixed environment variables.
// Example: VENUS_API_URL=https://venus.example.com VENUS_MODE=production
func FromEnv() (Source, error) {
	var src Source
	if err := envconfig.Process("VENUS", &src); err != nil {
		return Source{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return src, nil
}

// ParseMode maps a user-supplied string onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dev", "development":
		return ModeDevelopment, nil
	case "prod", "production":
		return ModeProduction, nil
	default:
		return "", fmt.Errorf("unsupported mode: %q", s)
	}
}

// Package pagination provides offset-based pagination for list endpoints:
// query parameter parsing, offset arithmetic, and a generic response wrapper
// carrying page metadata.
package pagination

import "newsdesk/pkg/config"

// Config holds pagination settings.
type Config struct {
	DefaultPage  int // Default page number (1-based)
	DefaultLimit int // Default items per page
	MaxLimit     int // Maximum allowed items per page
}

// DefaultConfig returns the default pagination configuration:
// page=1, limit=20, max=100.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv loads pagination config from PAGINATION_DEFAULT_PAGE,
// PAGINATION_DEFAULT_LIMIT and PAGINATION_MAX_LIMIT, falling back to the
// defaults for anything unset.
func LoadFromEnv() Config {
	def := DefaultConfig()
	return Config{
		DefaultPage:  config.GetEnvInt("PAGINATION_DEFAULT_PAGE", def.DefaultPage),
		DefaultLimit: config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     config.GetEnvInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
}

package pathutil

import (
	"regexp"
	"strings"
)

// pathPattern pairs a route regex with its normalized template.
type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

// pathPatterns defines the dynamic routes of the API, most specific first.
// Pre-compiled at initialization so normalization stays cheap on the hot path.
var pathPatterns = []*pathPattern{
	{pattern: regexp.MustCompile(`^/articles/\d+$`), template: "/articles/:id"},
	{pattern: regexp.MustCompile(`^/articles/\d+/approve$`), template: "/articles/:id/approve"},

	{pattern: regexp.MustCompile(`^/newsletters/\d+$`), template: "/newsletters/:id"},
	{pattern: regexp.MustCompile(`^/newsletters/\d+/articles$`), template: "/newsletters/:id/articles"},

	{pattern: regexp.MustCompile(`^/publishers/\d+$`), template: "/publishers/:id"},
	{pattern: regexp.MustCompile(`^/publishers/\d+/editors$`), template: "/publishers/:id/editors"},
	{pattern: regexp.MustCompile(`^/publishers/\d+/journalists$`), template: "/publishers/:id/journalists"},

	{pattern: regexp.MustCompile(`^/subscriptions/journalists/\d+$`), template: "/subscriptions/journalists/:id"},
	{pattern: regexp.MustCompile(`^/subscriptions/newsletters/\d+$`), template: "/subscriptions/newsletters/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion. It converts paths with IDs (e.g. /articles/123) to
// template format (e.g. /articles/:id). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/articles/123")          // "/articles/:id"
//	NormalizePath("/articles/123/approve")  // "/articles/:id/approve"
//	NormalizePath("/healthz")               // "/healthz" (unchanged)
//	NormalizePath("/articles/123?full=1")   // "/articles/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}

	// No match: static paths like /healthz, /metrics, /auth/token pass
	// through unchanged.
	return path
}

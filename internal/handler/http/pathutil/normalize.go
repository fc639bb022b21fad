// Package pathutil normalises API request paths for metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns lists the dynamic routes, most specific first.
// Any segment is matched, not only digits, so malformed IDs collapse onto
// the same label as valid ones.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/articles/[^/]+/read$`), Template: "/api/articles/:id/read"},
}

// NormalizePath maps dynamic URL paths onto their route template so that
// metric labels stay bounded.
//
//	NormalizePath("/api/articles/123/read")  // "/api/articles/:id/read"
//	NormalizePath("/api/articles")           // "/api/articles" (unchanged)
//	NormalizePath("/api/articles/7/read/")   // "/api/articles/:id/read"
//	NormalizePath("/health?verbose=1")       // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}

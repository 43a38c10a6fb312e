package bridge

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vango-dev/pagefx/pkg/routepath"
)

// isGlob reports whether pattern uses glob syntax.
func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// MatchPath reports whether a request path matches a success path pattern.
// Plain patterns compare canonically, so "/config/" and "/config?x=1"
// match "/config". Glob patterns such as "/settings/**" are matched
// segment by segment against the canonical path.
func MatchPath(pattern, path string) bool {
	if !isGlob(pattern) {
		return routepath.Equal(pattern, path)
	}
	clean, err := routepath.Canonicalize(path)
	if err != nil {
		return false
	}
	ok, err := doublestar.Match(pattern, clean)
	return err == nil && ok
}

// CheckPattern reports why pattern cannot be used as a success path.
func CheckPattern(pattern string) error {
	if !isGlob(pattern) {
		_, err := routepath.Canonicalize(pattern)
		return err
	}
	if !strings.HasPrefix(pattern, "/") {
		return routepath.ErrRelative
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("malformed glob %q", pattern)
	}
	return nil
}

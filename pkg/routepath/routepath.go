// Package routepath normalizes URL paths so links, configured paths and
// request paths compare equal however they are spelled.
package routepath

import (
	"errors"
	"strings"
)

// Canonicalization errors.
var (
	ErrRelative    = errors.New("path must start with /")
	ErrBackslash   = errors.New("path contains backslash")
	ErrNullByte    = errors.New("path contains null byte")
	ErrBadEscape   = errors.New("invalid percent escape sequence")
	ErrEscapesRoot = errors.New("path escapes root via ..")
)

// Canonicalize returns the clean form of p: a single leading slash, no
// empty or "." segments, ".." resolved and no trailing slash except for
// the root. A query string or fragment is dropped.
func Canonicalize(p string) (string, error) {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch {
	case !strings.HasPrefix(p, "/"):
		return "", ErrRelative
	case strings.Contains(p, `\`):
		return "", ErrBackslash
	case strings.Contains(p, "\x00"), strings.Contains(strings.ToUpper(p), "%00"):
		return "", ErrNullByte
	}
	if err := checkEscapes(p); err != nil {
		return "", err
	}

	segments := make([]string, 0, strings.Count(p, "/"))
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return "", ErrEscapesRoot
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}
	return "/" + strings.Join(segments, "/"), nil
}

// Equal reports whether a and b canonicalize to the same path. Invalid
// paths equal nothing.
func Equal(a, b string) bool {
	ca, err := Canonicalize(a)
	if err != nil {
		return false
	}
	cb, err := Canonicalize(b)
	return err == nil && ca == cb
}

// Within reports whether p is prefix or lies below it, segment by
// segment: "/config/edit" is within "/config", "/configure" is not. The
// root prefix only contains the root itself.
func Within(p, prefix string) bool {
	cp, err := Canonicalize(p)
	if err != nil {
		return false
	}
	cprefix, err := Canonicalize(prefix)
	if err != nil {
		return false
	}
	if cp == cprefix {
		return true
	}
	return cprefix != "/" && strings.HasPrefix(cp, cprefix+"/")
}

func checkEscapes(p string) error {
	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			continue
		}
		if i+2 >= len(p) || !isHex(p[i+1]) || !isHex(p[i+2]) {
			return ErrBadEscape
		}
		i += 2
	}
	return nil
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

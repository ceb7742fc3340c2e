// Package media turns stored asset paths and video links into URLs the
// browser can load.
package media

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("segment is not valid UTF-8")

const upperhex = "0123456789ABCDEF"

// Resolve encodes each path segment independently so spaces and
// punctuation inside file names are escaped while the separators,
// including the leading slash of an absolute path, are kept.
// If a segment cannot be encoded the whole path is URI-encoded instead.
func Resolve(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		encoded, err := encodeComponent(part)
		if err != nil {
			return encodeURI(path)
		}
		parts[i] = encoded
	}
	return strings.Join(parts, "/")
}

// encodeComponent escapes everything except the URI-component unreserved set
func encodeComponent(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", errInvalidUTF8
	}
	return escape(s, isComponentSafe), nil
}

// encodeURI escapes a whole URI, leaving reserved delimiters intact.
// Invalid UTF-8 is escaped byte by byte.
func encodeURI(s string) string {
	return escape(s, isURISafe)
}

func escape(s string, safe func(byte) bool) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !safe(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if safe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func isComponentSafe(c byte) bool {
	if isAlnum(c) {
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

func isURISafe(c byte) bool {
	if isComponentSafe(c) {
		return true
	}
	switch c {
	case ';', ',', '/', '?', ':', '@', '&', '=', '+', '$', '#':
		return true
	}
	return false
}

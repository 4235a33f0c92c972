package util

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrInvalidFileName is returned for names that cannot name a file.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName flattens path separators into a single base name. Dots
// inside a name are kept; only empty, "." and ".." are rejected.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "\x00", "")
	s = filepath.Base(s)
	switch s {
	case "", ".", "..":
		return "", ErrInvalidFileName
	}
	return s, nil
}

// TruncateRunes returns at most n characters of s without splitting a UTF-8 sequence.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

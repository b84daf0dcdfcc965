// Package strings holds small string and slice helpers shared across packages
package strings

import std "strings"

// IfEmpty returns def when in is empty
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix normalises a route prefix to "/x" form and panics on an empty one
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), "/ ")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// MustString returns the trimmed s and panics naming what when it is blank
func MustString(s, what string) string {
	s = std.TrimSpace(s)
	if s == "" {
		panic(what + " is required")
	}
	return s
}

// Ptr returns a pointer to the trimmed s, or nil when s is blank
func Ptr(s string) *string {
	s = std.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns "" for nil, else *ps
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}

// SQLNullPtr returns nil for a nil or blank *string so the column is written as NULL
func SQLNullPtr(ps *string) any {
	if ps == nil || std.TrimSpace(*ps) == "" {
		return nil
	}
	return *ps
}

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
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

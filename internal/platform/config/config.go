// Package config reads namespaced settings from the environment
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"lawsearch/internal/platform/logger"
)

// Conf is a namespaced view over environment variables (e.g. "CORE_SEARCH_")
// New() is the root, Prefix narrows it for one module
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) raw(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// LoadDotenv populates the environment from dotenv files without overriding
// variables already set. Missing files are skipped
func LoadDotenv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logger.Get().Warn().Err(err).Str("file", f).Msg("dotenv load failed")
		}
	}
}

// may parses key with fn, returning def when unset and warning when malformed
func may[T any](c Conf, key string, def T, kind string, fn func(string) (T, error)) T {
	s := c.raw(key)
	if s == "" {
		return def
	}
	v, err := fn(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// must parses key with fn and panics when unset or malformed
func must[T any](c Conf, key, kind string, fn func(string) (T, error)) T {
	s := c.raw(key)
	if s == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	v, err := fn(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msgf("invalid %s value", kind)
	}
	return v
}

func parseString(s string) (string, error) { return s, nil }

// MustString panics if the given key is missing or empty
func (c Conf) MustString(key string) string { return must(c, key, "string", parseString) }

// MustInt panics if the given key is missing or not an int
func (c Conf) MustInt(key string) int { return must(c, key, "int", strconv.Atoi) }

// MustDuration panics if the given key is missing or not a duration (250ms, 2s, 1h)
func (c Conf) MustDuration(key string) time.Duration {
	return must(c, key, "duration", time.ParseDuration)
}

// MustPort returns a net/http addr like ":4000" after validating 1..65535
func (c Conf) MustPort(key string) string {
	p := must(c, key, "port", strconv.Atoi)
	if p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.key(key)).Int("value", p).Msg("invalid TCP port; expected 1..65535")
	}
	return ":" + strconv.Itoa(p)
}

// Require panics unless every key is present
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if c.raw(k) == "" {
			logger.Get().Panic().Str("key", c.key(k)).Msg("missing required env")
		}
	}
}

// MayString returns the value or def if missing
func (c Conf) MayString(key, def string) string { return may(c, key, def, "string", parseString) }

// MayInt returns the value or def if missing or invalid
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, "int", strconv.Atoi) }

// MayPositiveInt is MayInt that also rejects values below 1
func (c Conf) MayPositiveInt(key string, def int) int {
	return may(c, key, def, "positive int", func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err == nil && n < 1 {
			err = strconv.ErrRange
		}
		return n, err
	})
}

// MayBool returns the value or def if missing or invalid
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, "bool", strconv.ParseBool) }

// MayDuration returns the value or def if missing or invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayCSV returns the trimmed, non-empty items of a comma separated value, or def
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.raw(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value if it is one of allowed (case-insensitive), def if missing, and panics otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(v)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

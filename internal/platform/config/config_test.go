package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kit "lawsearch/internal/platform/testkit"
)

func TestPrefixNesting(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("SEARCH_")
	if got := c.key("INDEX"); got != "CORE_SEARCH_INDEX" {
		t.Fatalf("key() = %q", got)
	}
}

func TestMustFamily(t *testing.T) {
	c := New().Prefix("CORE_SEARCH_")
	t.Setenv("CORE_SEARCH_INDEX", "  law ")
	t.Setenv("CORE_SEARCH_BATCH_SIZE", "500")
	t.Setenv("CORE_SEARCH_ENGINE_TIMEOUT", "3s")
	t.Setenv("CORE_SEARCH_BAD", "soon")

	if got := c.MustString("INDEX"); got != "law" {
		t.Fatalf("MustString = %q", got)
	}
	if got := c.MustInt("BATCH_SIZE"); got != 500 {
		t.Fatalf("MustInt = %d", got)
	}
	if got := c.MustDuration("ENGINE_TIMEOUT"); got != 3*time.Second {
		t.Fatalf("MustDuration = %v", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
	kit.MustPanic(t, func() { _ = c.MustDuration("BAD") })
	kit.MustPanic(t, func() { c.Require("INDEX", "MISSING") })
}

func TestMustPort(t *testing.T) {
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_PORT", "4000")
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q", got)
	}
	t.Setenv("CORE_API_PORT", "70000")
	kit.MustPanic(t, func() { _ = c.MustPort("PORT") })
}

func TestMayFamilyDefaults(t *testing.T) {
	c := New().Prefix("Q_")
	t.Setenv("Q_SIZE", "nope")
	t.Setenv("Q_ZERO", "0")
	t.Setenv("Q_ON", "false")
	t.Setenv("Q_WAIT", "250ms")

	if got := c.MayString("MISSING", "law"); got != "law" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayInt("SIZE", 1000); got != 1000 {
		t.Fatalf("MayInt invalid = %d", got)
	}
	if got := c.MayPositiveInt("ZERO", 100); got != 100 {
		t.Fatalf("MayPositiveInt zero = %d", got)
	}
	if c.MayBool("ON", true) {
		t.Fatalf("MayBool should read false")
	}
	if got := c.MayDuration("WAIT", time.Second); got != 250*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
}

func TestMayCSVAndEnum(t *testing.T) {
	c := New().Prefix("X_")
	t.Setenv("X_ORIGINS", " a, ,b ")
	t.Setenv("X_BLANK", " , ")
	t.Setenv("X_LEVEL", "DEBUG")
	t.Setenv("X_WRONG", "loud")

	if got := c.MayCSV("ORIGINS", nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("MayCSV = %#v", got)
	}
	if got := c.MayCSV("BLANK", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV blank = %#v", got)
	}
	if got := c.MayEnum("LEVEL", "info", "debug", "info"); got != "debug" {
		t.Fatalf("MayEnum = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MayEnum("WRONG", "info", "debug", "info") })
}

func TestLoadDotenvKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, ".env")
	if err := os.WriteFile(f, []byte("LAWSEARCH_T_A=fromfile\nLAWSEARCH_T_B=fromfile\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LAWSEARCH_T_A", "fromenv")
	t.Setenv("LAWSEARCH_T_B", "")
	os.Unsetenv("LAWSEARCH_T_B")
	t.Cleanup(func() { os.Unsetenv("LAWSEARCH_T_B") })

	LoadDotenv(f, filepath.Join(dir, "missing.env"))

	if got := os.Getenv("LAWSEARCH_T_A"); got != "fromenv" {
		t.Fatalf("existing var overridden: %q", got)
	}
	if got := os.Getenv("LAWSEARCH_T_B"); got != "fromfile" {
		t.Fatalf("dotenv value not loaded: %q", got)
	}
}

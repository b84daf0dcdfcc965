// Package textclean turns stored ruling text and incoming queries into clean NFC plain text
// Pipeline order
// 1 drop invalid UTF-8 bytes
// 2 drop control and format runes (tab and line breaks survive)
// 3 Unicode NFC composition so decomposed Hangul jamo become syllables
// 4 markup: <br> variants become line breaks, every other tag is removed, entities are decoded
// 5 horizontal whitespace runs collapse to one space, lines are right trimmed, edges trimmed
package textclean

import (
	"html"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reBreak = regexp.MustCompile(`(?i)<\s*br\s*/?\s*>`)
	reTag   = regexp.MustCompile(`<[^<>]*>`)
	reHoriz = regexp.MustCompile(`[ \t\x{00A0}\x{3000}]+`)
)

// junk runes: controls other than tab/newline, and format chars such as ZWSP and BOM
var junk = runes.Predicate(func(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	}
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
})

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(runes.Remove(junk), norm.NFC)
	},
}

// Normalize applies steps 1 to 3 and trims the edges. Queries go through here
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// transform only fails on malformed input which ToValidUTF8 already removed
		out = norm.NFC.String(s)
	}
	return strings.TrimSpace(out)
}

// StripMarkup converts the markup found in ruling bodies to plain text
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	s = reBreak.ReplaceAllString(s, "\n")
	s = reTag.ReplaceAllString(s, "")
	return html.UnescapeString(s)
}

// Clean runs the full pipeline used before a ruling is stored
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = StripMarkup(Normalize(s))
	// entities may decode to nbsp or decomposed text
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRightFunc(reHoriz.ReplaceAllString(ln, " "), unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// CleanPtr is Clean for optional columns. Blank results become nil
func CleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	c := Clean(*s)
	if c == "" {
		return nil
	}
	return &c
}

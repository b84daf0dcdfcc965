package searchidx

import (
	"fmt"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/token/ngram"
	"github.com/blevesearch/bleve/v2/registry"
)

// GramFilterType is the registry type of the n-gram filter that keeps the source token
// tokens whose rune length is outside [min,max] are emitted as is next to their grams
// so whole-word and phrase queries still find them
const GramFilterType = "gram_keep"

func init() {
	registry.RegisterTokenFilter(GramFilterType, gramFilterConstructor)
}

// GramFilter wraps bleve's ngram filter
type GramFilter struct {
	min, max int
	grams    *ngram.NgramFilter
}

// NewGramFilter builds a filter emitting min..max rune grams
func NewGramFilter(minLen, maxLen int) *GramFilter {
	return &GramFilter{min: minLen, max: maxLen, grams: ngram.NewNgramFilter(minLen, maxLen)}
}

// Filter implements analysis.TokenFilter
func (f *GramFilter) Filter(in analysis.TokenStream) analysis.TokenStream {
	out := make(analysis.TokenStream, 0, len(in)*4)
	for _, tok := range in {
		n := utf8.RuneCount(tok.Term)
		if n < f.min || n > f.max {
			out = append(out, tok)
		}
		if n >= f.min {
			out = append(out, f.grams.Filter(analysis.TokenStream{tok})...)
		}
	}
	return out
}

func gramFilterConstructor(config map[string]interface{}, _ *registry.Cache) (analysis.TokenFilter, error) {
	minLen, err := intParam(config, "min")
	if err != nil {
		return nil, err
	}
	maxLen, err := intParam(config, "max")
	if err != nil {
		return nil, err
	}
	if minLen < 1 || maxLen < minLen {
		return nil, fmt.Errorf("gram filter: invalid range %d..%d", minLen, maxLen)
	}
	return NewGramFilter(minLen, maxLen), nil
}

// mapping configs round trip through JSON so numbers may arrive as float64
func intParam(config map[string]interface{}, key string) (int, error) {
	switch v := config[key].(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("gram filter: %s must be a number", key)
	}
}

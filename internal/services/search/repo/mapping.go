package repo

import (
	"lawsearch/internal/platform/searchidx"
	"lawsearch/internal/services/search/domain"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
)

// analyzer names registered on the index mapping
const (
	// IndexAnalyzer breaks text into 2..3 rune grams and keeps whole words
	IndexAnalyzer = "korean_ngram"
	// QueryAnalyzer is set on every match and phrase clause
	// lower cased unicode words with no stop list, so "a" or "on" still match
	QueryAnalyzer = "lower_words"

	gramFilter = "korean_gram"
)

// fullText fields get the gram analyzer at index time
var fullText = []string{
	domain.FieldCaseName,
	domain.FieldCaseResultDecision,
	domain.FieldCaseResultSummary,
	domain.FieldCasePrecedent,
}

var exact = []string{
	domain.FieldID,
	domain.FieldCaseNumber,
	domain.FieldCaseResult,
	domain.FieldCaseCourt,
	domain.FieldCaseType,
	domain.FieldCaseResultType,
}

// BuildMapping returns the mapping of a ruling index
// unknown fields are ignored, every mapped field is stored so hits project without a store read
func BuildMapping() (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()
	if err := im.AddCustomTokenFilter(gramFilter, map[string]interface{}{
		"type": searchidx.GramFilterType,
		"min":  2.0,
		"max":  3.0,
	}); err != nil {
		return nil, err
	}
	if err := im.AddCustomAnalyzer(IndexAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name, gramFilter},
	}); err != nil {
		return nil, err
	}
	if err := im.AddCustomAnalyzer(QueryAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	}); err != nil {
		return nil, err
	}

	doc := bleve.NewDocumentStaticMapping()
	for _, f := range fullText {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = IndexAnalyzer
		fm.IncludeInAll = false
		doc.AddFieldMappingsAt(f, fm)
	}
	for _, f := range []string{domain.FieldReference, domain.FieldReferenceCase} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = QueryAnalyzer
		fm.IncludeInAll = false
		doc.AddFieldMappingsAt(f, fm)
	}
	for _, f := range exact {
		fm := bleve.NewKeywordFieldMapping()
		fm.IncludeInAll = false
		doc.AddFieldMappingsAt(f, fm)
	}
	date := bleve.NewDateTimeFieldMapping()
	date.IncludeInAll = false
	doc.AddFieldMappingsAt(domain.FieldCaseDate, date)
	for _, f := range []string{domain.FieldCaseCourtCode, domain.FieldCaseTypeCode} {
		fm := bleve.NewNumericFieldMapping()
		fm.IncludeInAll = false
		doc.AddFieldMappingsAt(f, fm)
	}

	im.DefaultMapping = doc
	im.DefaultAnalyzer = QueryAnalyzer
	return im, nil
}

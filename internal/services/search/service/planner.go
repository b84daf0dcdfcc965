package service

import (
	"regexp"

	"lawsearch/internal/core/textclean"
	"lawsearch/internal/services/search/domain"
)

// keyword is a run of two or more hangul syllables, latin letters or digits
var keyword = regexp.MustCompile(`[가-힣a-zA-Z0-9]{2,}`)

// ExtractKeywords pulls search terms out of a natural language question
// order is kept and repeats dropped, a question with no keyword yields itself
func ExtractKeywords(raw string) []string {
	found := keyword.FindAllString(raw, -1)
	if len(found) == 0 {
		if raw == "" {
			return nil
		}
		return []string{raw}
	}
	seen := make(map[string]struct{}, len(found))
	out := found[:0]
	for _, k := range found {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// field weights, case name dominates
var (
	keywordFields = []domain.FieldBoost{
		{Field: domain.FieldCaseName, Boost: 3},
		{Field: domain.FieldCaseResultDecision, Boost: 2},
		{Field: domain.FieldCaseResultSummary, Boost: 1.5},
		{Field: domain.FieldCasePrecedent, Boost: 1},
	}
	questionFields = []domain.FieldBoost{
		{Field: domain.FieldCaseName, Boost: 2},
		{Field: domain.FieldCaseResultDecision, Boost: 1.5},
		{Field: domain.FieldCaseResultSummary, Boost: 1},
		{Field: domain.FieldCasePrecedent, Boost: 1},
	}
	namePhrase     = []domain.FieldBoost{{Field: domain.FieldCaseName, Boost: 2}}
	decisionPhrase = []domain.FieldBoost{{Field: domain.FieldCaseResultDecision, Boost: 1.5}}
)

// BuildPlan turns a query into should clauses:
// per keyword a weighted match plus phrase matches on name and decision,
// then one weighted match over the whole question
func BuildPlan(raw string) domain.Plan {
	raw = textclean.Normalize(raw)
	p := domain.Plan{Raw: raw, Tokens: ExtractKeywords(raw)}
	if raw == "" {
		return p
	}
	p.Clauses = make([]domain.Clause, 0, len(p.Tokens)*3+1)
	for _, k := range p.Tokens {
		p.Clauses = append(p.Clauses,
			domain.Clause{Kind: domain.ClauseMatch, Text: k, Fields: keywordFields},
			domain.Clause{Kind: domain.ClausePhrase, Text: k, Fields: namePhrase},
			domain.Clause{Kind: domain.ClausePhrase, Text: k, Fields: decisionPhrase},
		)
	}
	p.Clauses = append(p.Clauses, domain.Clause{Kind: domain.ClauseMatch, Text: raw, Fields: questionFields})
	return p
}

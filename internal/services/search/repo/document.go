package repo

import (
	"fmt"

	ptime "lawsearch/internal/platform/time"
	"lawsearch/internal/services/search/domain"
)

// body is the map bleve indexes, nil fields are left out
func body(d domain.Document) map[string]any {
	m := map[string]any{
		domain.FieldID:         d.ID,
		domain.FieldCaseNumber: d.CaseNumber,
		domain.FieldCaseName:   d.CaseName,
	}
	if d.CaseDate != "" {
		m[domain.FieldCaseDate] = d.CaseDate
	}
	put := func(k string, v *string) {
		if v != nil {
			m[k] = *v
		}
	}
	put(domain.FieldCaseResult, d.CaseResult)
	put(domain.FieldCaseCourt, d.CaseCourt)
	put(domain.FieldCaseType, d.CaseType)
	put(domain.FieldCaseResultType, d.CaseResultType)
	put(domain.FieldCaseResultDecision, d.CaseResultDecision)
	put(domain.FieldCaseResultSummary, d.CaseResultSummary)
	put(domain.FieldReference, d.Reference)
	put(domain.FieldReferenceCase, d.ReferenceCase)
	put(domain.FieldCasePrecedent, d.CasePrecedent)
	if d.CaseCourtCode != nil {
		m[domain.FieldCaseCourtCode] = float64(*d.CaseCourtCode)
	}
	if d.CaseTypeCode != nil {
		m[domain.FieldCaseTypeCode] = float64(*d.CaseTypeCode)
	}
	return m
}

// toHit projects stored fields back into a Document
func toHit(id string, score float64, f map[string]any) domain.Hit {
	h := domain.Hit{Score: &score}
	h.ID = id
	h.CaseNumber = text(f, domain.FieldCaseNumber)
	h.CaseName = text(f, domain.FieldCaseName)
	h.CaseDate = day(text(f, domain.FieldCaseDate))
	h.CaseResult = textPtr(f, domain.FieldCaseResult)
	h.CaseCourt = textPtr(f, domain.FieldCaseCourt)
	h.CaseCourtCode = intPtr(f, domain.FieldCaseCourtCode)
	h.CaseType = textPtr(f, domain.FieldCaseType)
	h.CaseTypeCode = intPtr(f, domain.FieldCaseTypeCode)
	h.CaseResultType = textPtr(f, domain.FieldCaseResultType)
	h.CaseResultDecision = textPtr(f, domain.FieldCaseResultDecision)
	h.CaseResultSummary = textPtr(f, domain.FieldCaseResultSummary)
	h.Reference = textPtr(f, domain.FieldReference)
	h.ReferenceCase = textPtr(f, domain.FieldReferenceCase)
	h.CasePrecedent = textPtr(f, domain.FieldCasePrecedent)
	return h
}

// stored fields come back as a scalar or, for repeated values, a slice
func first(f map[string]any, k string) (any, bool) {
	v, ok := f[k]
	if !ok || v == nil {
		return nil, false
	}
	if vs, ok := v.([]any); ok {
		if len(vs) == 0 {
			return nil, false
		}
		return vs[0], true
	}
	return v, true
}

func text(f map[string]any, k string) string {
	v, ok := first(f, k)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func textPtr(f map[string]any, k string) *string {
	if _, ok := first(f, k); !ok {
		return nil
	}
	s := text(f, k)
	return &s
}

func intPtr(f map[string]any, k string) *int {
	v, ok := first(f, k)
	if !ok {
		return nil
	}
	var n int
	switch x := v.(type) {
	case float64:
		n = int(x)
	case int:
		n = x
	default:
		return nil
	}
	return &n
}

// datetime fields come back formatted by the engine, keep the calendar day
func day(s string) string {
	if len(s) < len(ptime.DayLayout) {
		return s
	}
	if t, err := ptime.ParseDay(s[:len(ptime.DayLayout)]); err == nil {
		return ptime.FormatDay(t)
	}
	return s
}

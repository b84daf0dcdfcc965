package service

import (
	ptime "lawsearch/internal/platform/time"
	rdomain "lawsearch/internal/services/rulings/domain"
	"lawsearch/internal/services/search/domain"
)

// FromRuling projects a stored ruling into its index document
func FromRuling(r rdomain.Ruling) domain.Document {
	return domain.Document{
		ID:                 r.ID,
		CaseNumber:         r.CaseNumber,
		CaseDate:           ptime.FormatDay(r.CaseDate),
		CaseName:           r.CaseName,
		CaseResult:         r.CaseResult,
		CaseCourt:          r.CaseCourt,
		CaseCourtCode:      r.CaseCourtCode,
		CaseType:           r.CaseType,
		CaseTypeCode:       r.CaseTypeCode,
		CaseResultType:     r.CaseResultType,
		CaseResultDecision: r.CaseResultDecision,
		CaseResultSummary:  r.CaseResultSummary,
		Reference:          r.Reference,
		ReferenceCase:      r.ReferenceCase,
		CasePrecedent:      r.CasePrecedent,
	}
}

func fromRulings(rs []rdomain.Ruling) []domain.Document {
	out := make([]domain.Document, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromRuling(r))
	}
	return out
}

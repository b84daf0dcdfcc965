// Package domain holds the ruling record and the contracts around it
package domain

import "time"

// Ruling is one court ruling row, the source of truth for the search index
type Ruling struct {
	ID         string    `json:"id"`
	CaseNumber string    `json:"case_number"`
	CaseDate   time.Time `json:"case_date"`
	CaseName   string    `json:"case_name"`

	CaseResult         *string `json:"case_result,omitempty"`
	CaseCourt          *string `json:"case_court,omitempty"`
	CaseCourtCode      *int    `json:"case_court_code,omitempty"`
	CaseType           *string `json:"case_type,omitempty"`
	CaseTypeCode       *int    `json:"case_type_code,omitempty"`
	CaseResultType     *string `json:"case_result_type,omitempty"`
	CaseResultDecision *string `json:"case_result_decision,omitempty"`

	CaseResultSummary *string `json:"case_result_summary,omitempty"`
	Reference         *string `json:"reference,omitempty"`
	ReferenceCase     *string `json:"reference_case,omitempty"`
	CasePrecedent     *string `json:"case_precedent,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cursor is a keyset position in created_at order, id breaks ties
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// IsZero reports whether the cursor is the start of the table
func (c Cursor) IsZero() bool { return c.CreatedAt.IsZero() && c.ID == "" }

// Next returns the cursor positioned after r
func Next(r Ruling) Cursor { return Cursor{CreatedAt: r.CreatedAt, ID: r.ID} }

// UpsertInput is one ruling keyed by (case_number, case_date)
// case_date is YYYY-MM-DD, dots and slashes are accepted
type UpsertInput struct {
	CaseNumber string `json:"case_number" validate:"nonblank,max=100" example:"2020다12345"`
	CaseDate   string `json:"case_date"   validate:"nonblank"         example:"2021-03-04"`
	CaseName   string `json:"case_name"   validate:"nonblank,cleanmax=255" example:"손해배상(기)"`

	CaseResult         *string `json:"case_result,omitempty"          validate:"omitempty,max=100"`
	CaseCourt          *string `json:"case_court,omitempty"           validate:"omitempty,max=100" example:"대법원"`
	CaseCourtCode      *int    `json:"case_court_code,omitempty"      validate:"omitempty,min=0"   example:"400201"`
	CaseType           *string `json:"case_type,omitempty"            validate:"omitempty,max=100" example:"민사"`
	CaseTypeCode       *int    `json:"case_type_code,omitempty"       validate:"omitempty,min=0"   example:"400101"`
	CaseResultType     *string `json:"case_result_type,omitempty"     validate:"omitempty,max=100" example:"판결"`
	CaseResultDecision *string `json:"case_result_decision,omitempty" validate:"omitempty,cleanmax=255"`

	CaseResultSummary *string `json:"case_result_summary,omitempty"`
	Reference         *string `json:"reference,omitempty"`
	ReferenceCase     *string `json:"reference_case,omitempty"`
	CasePrecedent     *string `json:"case_precedent,omitempty"`
}

// UpsertResult reports which row the upsert landed on
type UpsertResult struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
}

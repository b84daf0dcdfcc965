// Package domain holds the search index document, the query plan and the result shapes
package domain

import "time"

// index field names
const (
	FieldID                 = "id"
	FieldCaseNumber         = "case_number"
	FieldCaseDate           = "case_date"
	FieldCaseName           = "case_name"
	FieldCaseResult         = "case_result"
	FieldCaseCourt          = "case_court"
	FieldCaseCourtCode      = "case_court_code"
	FieldCaseType           = "case_type"
	FieldCaseTypeCode       = "case_type_code"
	FieldCaseResultType     = "case_result_type"
	FieldCaseResultDecision = "case_result_decision"
	FieldCaseResultSummary  = "case_result_summary"
	FieldReference          = "reference"
	FieldReferenceCase      = "reference_case"
	FieldCasePrecedent      = "case_precedent"
)

// Document is the indexed projection of a ruling, timestamps left out
type Document struct {
	ID                 string  `json:"id"`
	CaseNumber         string  `json:"case_number"`
	CaseDate           string  `json:"case_date"`
	CaseName           string  `json:"case_name"`
	CaseResult         *string `json:"case_result"`
	CaseCourt          *string `json:"case_court"`
	CaseCourtCode      *int    `json:"case_court_code"`
	CaseType           *string `json:"case_type"`
	CaseTypeCode       *int    `json:"case_type_code"`
	CaseResultType     *string `json:"case_result_type"`
	CaseResultDecision *string `json:"case_result_decision"`
	CaseResultSummary  *string `json:"case_result_summary"`
	Reference          *string `json:"reference"`
	ReferenceCase      *string `json:"reference_case"`
	CasePrecedent      *string `json:"case_precedent"`
}

// Hit is one ranked document
type Hit struct {
	Document
	Score *float64 `json:"score"`
}

// Query is one search request, paging is checked before the index is touched
type Query struct {
	Q      string `json:"q"      example:"손해배상 판결"`
	Limit  int    `json:"limit"  validate:"min=1,max=100" example:"10"`
	Offset int    `json:"offset" validate:"min=0,max=10000" example:"0"`
}

const (
	// DefaultLimit applies when a caller leaves limit unset
	DefaultLimit = 10

	// MaxOffset is the deepest page start a query may ask for
	MaxOffset = 10000
)

// SearchBody is the JSON form of a Query, absent paging fields take their defaults
type SearchBody struct {
	Q      string `json:"q"      example:"손해배상 판결"`
	Limit  *int   `json:"limit"  validate:"omitempty,min=1,max=100" example:"10"`
	Offset *int   `json:"offset" validate:"omitempty,min=0,max=10000" example:"0"`
}

// Query resolves the body into a Query
func (b SearchBody) Query() Query {
	q := Query{Q: b.Q, Limit: DefaultLimit}
	if b.Limit != nil {
		q.Limit = *b.Limit
	}
	if b.Offset != nil {
		q.Offset = *b.Offset
	}
	return q
}

// Result is the paginated answer to a Query
type Result struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Total  uint64 `json:"total"`
	Items  []Hit  `json:"items"`
}

// Page is what the index returns for a plan
type Page struct {
	Total uint64
	Hits  []Hit
}

// Failure is one document the index rejected
type Failure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult reports one bulk upsert
type BulkResult struct {
	Indexed  int
	Failures []Failure
}

// ReindexResult reports a full reindex run
// Failures is capped, Failed is the real count
type ReindexResult struct {
	Indexed  int           `json:"indexed"`
	Failed   int           `json:"failed"`
	Index    string        `json:"index"`
	Failures []Failure     `json:"failures,omitempty"`
	Batches  int           `json:"batches"`
	Took     time.Duration `json:"-"`
}

// IndexOneResult reports a single document upsert
type IndexOneResult struct {
	Indexed int    `json:"indexed"`
	ID      string `json:"id,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// detail values for IndexOneResult
const (
	DetailNotFound = "not_found"
	DetailRejected = "rejected"
)

// CountResult reports the index size
type CountResult struct {
	Index string `json:"index"`
	Count uint64 `json:"count"`
}

// QueryEvent describes one executed search for observers
type QueryEvent struct {
	At        time.Time
	Query     string
	Tokens    []string
	Limit     int
	Offset    int
	Total     uint64
	Reindexed bool
	Took      time.Duration
	Err       error
	RequestID string
}

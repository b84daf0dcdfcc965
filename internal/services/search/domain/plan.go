package domain

// ClauseKind separates term matches from exact phrase matches
type ClauseKind uint8

const (
	// ClauseMatch ORs the analyzed terms of Text within each field
	ClauseMatch ClauseKind = iota
	// ClausePhrase requires Text as a phrase in each field
	ClausePhrase
)

// FieldBoost weights one field inside a clause
type FieldBoost struct {
	Field string
	Boost float64
}

// Clause is one OR branch of a Plan
type Clause struct {
	Kind   ClauseKind
	Text   string
	Fields []FieldBoost
}

// Plan is a boolean should query: at least one clause must match
type Plan struct {
	Raw     string
	Tokens  []string
	Clauses []Clause
}

// MinShould is the number of clauses a document must match
func (Plan) MinShould() int { return 1 }

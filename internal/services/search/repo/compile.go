package repo

import (
	"lawsearch/internal/services/search/domain"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Compile turns a plan into a bleve disjunction
// a multi field clause becomes an inner disjunction of per field queries
func Compile(p domain.Plan) query.Query {
	if len(p.Clauses) == 0 {
		return bleve.NewMatchNoneQuery()
	}
	outer := make([]query.Query, 0, len(p.Clauses))
	for _, c := range p.Clauses {
		per := make([]query.Query, 0, len(c.Fields))
		for _, f := range c.Fields {
			per = append(per, fieldQuery(c.Kind, c.Text, f))
		}
		if len(per) == 1 {
			outer = append(outer, per[0])
			continue
		}
		outer = append(outer, bleve.NewDisjunctionQuery(per...))
	}
	d := bleve.NewDisjunctionQuery(outer...)
	d.SetMin(float64(p.MinShould()))
	return d
}

func fieldQuery(kind domain.ClauseKind, text string, f domain.FieldBoost) query.Query {
	if kind == domain.ClausePhrase {
		q := bleve.NewMatchPhraseQuery(text)
		q.SetField(f.Field)
		q.Analyzer = QueryAnalyzer
		q.SetBoost(f.Boost)
		return q
	}
	q := bleve.NewMatchQuery(text)
	q.SetField(f.Field)
	q.Analyzer = QueryAnalyzer
	q.SetOperator(query.MatchQueryOperatorOr)
	q.SetBoost(f.Boost)
	return q
}

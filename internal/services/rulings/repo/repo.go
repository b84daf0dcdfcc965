// Package repo provides postgres access for rulings
package repo

import (
	"context"

	"lawsearch/internal/modkit/repokit"
	perr "lawsearch/internal/platform/errors"
	"lawsearch/internal/platform/store"
	"lawsearch/internal/services/rulings/domain"
)

// Repo is the persistence surface for the judgements table
type Repo interface {
	ByID(ctx context.Context, id string) (domain.Ruling, error)
	ByCaseNumber(ctx context.Context, caseNumber string) (domain.Ruling, error)
	ListAfter(ctx context.Context, after domain.Cursor, limit int) ([]domain.Ruling, error)
	Count(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, row domain.Row) (domain.UpsertResult, error)
}

type (
	// PG binds the repo to a pool or a tx
	PG struct{}
	// queries implements Repo
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the postgres repo
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const columns = `id, case_number, case_date, case_name,
case_result, case_court, case_court_code, case_type, case_type_code,
case_result_type, case_result_decision, case_result_summary,
reference, reference_case, case_precedent, created_at, updated_at`

func scanRuling(r store.Row) (domain.Ruling, error) {
	var x domain.Ruling
	err := r.Scan(
		&x.ID, &x.CaseNumber, &x.CaseDate, &x.CaseName,
		&x.CaseResult, &x.CaseCourt, &x.CaseCourtCode, &x.CaseType, &x.CaseTypeCode,
		&x.CaseResultType, &x.CaseResultDecision, &x.CaseResultSummary,
		&x.Reference, &x.ReferenceCase, &x.CasePrecedent, &x.CreatedAt, &x.UpdatedAt,
	)
	return x, err
}

func (r *queries) ByID(ctx context.Context, id string) (domain.Ruling, error) {
	out, err := store.One(ctx, r.q, scanRuling, `select `+columns+` from judgements where id = $1`, id)
	if err != nil {
		return out, notFoundOr(err, "ruling %s not found", id)
	}
	return out, nil
}

// ByCaseNumber returns the newest ruling for a case number
// one case number can carry several decision dates
func (r *queries) ByCaseNumber(ctx context.Context, caseNumber string) (domain.Ruling, error) {
	const sql = `select ` + columns + ` from judgements
where case_number = $1
order by case_date desc, created_at desc
limit 1`
	out, err := store.One(ctx, r.q, scanRuling, sql, caseNumber)
	if err != nil {
		return out, notFoundOr(err, "ruling %s not found", caseNumber)
	}
	return out, nil
}

// ListAfter pages the table in (created_at, id) order
func (r *queries) ListAfter(ctx context.Context, after domain.Cursor, limit int) ([]domain.Ruling, error) {
	const sql = `select ` + columns + ` from judgements
where $1::timestamptz is null or (created_at, id) > ($1::timestamptz, $2::text)
order by created_at asc, id asc
limit $3`
	var at any
	if !after.IsZero() {
		at = after.CreatedAt
	}
	out, err := store.Many(ctx, r.q, scanRuling, sql, at, after.ID, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list rulings")
	}
	return out, nil
}

func (r *queries) Count(ctx context.Context) (int64, error) {
	n, err := store.Scalar[int64](ctx, r.q, `select count(*) from judgements`)
	if err != nil {
		return 0, perr.FromPostgres(err, "count rulings")
	}
	return n, nil
}

// Upsert writes by the natural key (case_number, case_date)
// xmax is zero only on a freshly inserted tuple
func (r *queries) Upsert(ctx context.Context, row domain.Row) (domain.UpsertResult, error) {
	const sql = `
insert into judgements (` + columns + `)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())
on conflict on constraint uq_case_num_date do update set
  case_name            = excluded.case_name,
  case_result          = excluded.case_result,
  case_court           = excluded.case_court,
  case_court_code      = excluded.case_court_code,
  case_type            = excluded.case_type,
  case_type_code       = excluded.case_type_code,
  case_result_type     = excluded.case_result_type,
  case_result_decision = excluded.case_result_decision,
  case_result_summary  = excluded.case_result_summary,
  reference            = excluded.reference,
  reference_case       = excluded.reference_case,
  case_precedent       = excluded.case_precedent,
  updated_at           = now()
returning id, (xmax = 0) as inserted`

	var out domain.UpsertResult
	err := r.q.QueryRow(ctx, sql,
		row.ID, row.CaseNumber, row.CaseDate, row.CaseName,
		row.CaseResult, row.CaseCourt, row.CaseCourtCode, row.CaseType, row.CaseTypeCode,
		row.CaseResultType, row.CaseResultDecision, row.CaseResultSummary,
		row.Reference, row.ReferenceCase, row.CasePrecedent,
	).Scan(&out.ID, &out.Created)
	if err != nil {
		return out, perr.FromPostgresWithField(err, "upsert ruling")
	}
	return out, nil
}

func notFoundOr(err error, format string, a ...any) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf(format, a...)
	}
	return perr.FromPostgres(err, "read ruling")
}

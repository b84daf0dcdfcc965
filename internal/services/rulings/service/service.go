// Package service contains ruling store workflows
package service

import (
	"context"
	"strings"
	"time"

	"lawsearch/internal/core/textclean"
	"lawsearch/internal/modkit/repokit"
	perr "lawsearch/internal/platform/errors"
	"lawsearch/internal/platform/logger"
	"lawsearch/internal/platform/net/http/bind"
	pstrings "lawsearch/internal/platform/strings"
	ptime "lawsearch/internal/platform/time"
	"lawsearch/internal/services/rulings/domain"
	"lawsearch/internal/services/rulings/repo"

	"github.com/google/uuid"
)

// Service defines the rulings service contract
type Service interface {
	domain.ServicePort
}

// Options tune the service
type Options struct {
	// StoreTimeout bounds each store call, zero means 10s
	StoreTimeout time.Duration
	// MaxPage caps ListAfter, zero means 10000
	MaxPage int
}

// Svc implements the rulings service
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	opts     Options
	notifier domain.ChangeNotifier
	newID    func() string
}

// New constructs a rulings service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts Options) *Svc {
	if db == nil {
		panic("rulings.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("rulings.Service requires a non nil Repo binder")
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 10 * time.Second
	}
	if opts.MaxPage <= 0 {
		opts.MaxPage = 10000
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		opts:   opts,
		newID:  func() string { return uuid.NewString() },
	}
}

// SetNotifier installs the change hook, call it before serving traffic
func (s *Svc) SetNotifier(n domain.ChangeNotifier) { s.notifier = n }

func (s *Svc) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.StoreTimeout)
}

// ByID returns one ruling by its id
func (s *Svc) ByID(ctx context.Context, id string) (domain.Ruling, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Ruling{}, perr.WithField(perr.InvalidArgf("id is required"), "id")
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.Repo.ByID(ctx, id)
}

// ByCaseNumber returns the newest ruling for a case number
func (s *Svc) ByCaseNumber(ctx context.Context, caseNumber string) (domain.Ruling, error) {
	caseNumber = textclean.Normalize(caseNumber)
	if caseNumber == "" {
		return domain.Ruling{}, perr.WithField(perr.InvalidArgf("case_number is required"), "case_number")
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.Repo.ByCaseNumber(ctx, caseNumber)
}

// ListAfter returns up to limit rulings after the cursor in created_at order
func (s *Svc) ListAfter(ctx context.Context, after domain.Cursor, limit int) ([]domain.Ruling, error) {
	if limit <= 0 {
		return nil, perr.WithField(perr.InvalidArgf("limit must be positive"), "limit")
	}
	if limit > s.opts.MaxPage {
		limit = s.opts.MaxPage
	}
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.Repo.ListAfter(ctx, after, limit)
}

// Count returns the number of stored rulings
func (s *Svc) Count(ctx context.Context) (int64, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.Repo.Count(ctx)
}

// Upsert validates, cleans and writes one ruling keyed by (case_number, case_date)
// the change hook runs after commit and never fails the write
func (s *Svc) Upsert(ctx context.Context, in domain.UpsertInput) (domain.UpsertResult, error) {
	row, err := s.normalize(in)
	if err != nil {
		return domain.UpsertResult{}, err
	}

	var out domain.UpsertResult
	wctx, cancel := s.bounded(ctx)
	err = repokit.WithTx(wctx, s.db, func(q repokit.Queryer) error {
		res, err := s.binder.Bind(q).Upsert(wctx, row)
		out = res
		return err
	})
	cancel()
	if err != nil {
		return domain.UpsertResult{}, err
	}

	logger.C(ctx).Debug().Str("id", out.ID).Str("case_number", row.CaseNumber).Bool("created", out.Created).Msg("ruling upserted")
	if s.notifier != nil {
		s.notifier.RulingChanged(ctx, out.ID)
	}
	return out, nil
}

// normalize turns input into the stored form: NFC text, markup stripped from bodies, blanks as NULL
func (s *Svc) normalize(in domain.UpsertInput) (domain.Row, error) {
	in.CaseNumber = textclean.Normalize(in.CaseNumber)
	in.CaseName = textclean.Clean(in.CaseName)
	in.CaseResultDecision = textclean.CleanPtr(in.CaseResultDecision)
	if err := bind.Validate(in); err != nil {
		return domain.Row{}, err
	}
	day, err := ptime.ParseDay(in.CaseDate)
	if err != nil {
		return domain.Row{}, perr.WithField(perr.Validationf("case_date must be YYYY-MM-DD"), "case_date")
	}
	return domain.Row{
		ID:                 s.newID(),
		CaseNumber:         in.CaseNumber,
		CaseDate:           day,
		CaseName:           in.CaseName,
		CaseResult:         short(in.CaseResult),
		CaseCourt:          short(in.CaseCourt),
		CaseCourtCode:      in.CaseCourtCode,
		CaseType:           short(in.CaseType),
		CaseTypeCode:       in.CaseTypeCode,
		CaseResultType:     short(in.CaseResultType),
		CaseResultDecision: in.CaseResultDecision,
		CaseResultSummary:  textclean.CleanPtr(in.CaseResultSummary),
		Reference:          textclean.CleanPtr(in.Reference),
		ReferenceCase:      textclean.CleanPtr(in.ReferenceCase),
		CasePrecedent:      textclean.CleanPtr(in.CasePrecedent),
	}, nil
}

// categorical columns are normalized but keep their markup free shape
func short(p *string) *string {
	if p == nil {
		return nil
	}
	return pstrings.Ptr(textclean.Normalize(*p))
}

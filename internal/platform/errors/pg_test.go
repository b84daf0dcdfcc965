package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func pgErr(code, col, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ColumnName: col, ConstraintName: constraint}
}

func TestDBErrorCodeMappings(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"unique", pgErr(pgErrUniqueViolation, "", ""), ErrorCodeDuplicateKey},
		{"not null", pgErr(pgErrNotNullViolation, "case_name", ""), ErrorCodeValidation},
		{"truncation", pgErr(pgErrStringDataRightTruncation, "", ""), ErrorCodeInvalidArgument},
		{"bad date", pgErr(pgErrInvalidDatetimeFormat, "", ""), ErrorCodeInvalidArgument},
		{"statement timeout", pgErr(pgErrQueryCanceled, "", ""), ErrorCodeUnavailable},
		{"starting up", pgErr(pgErrCannotConnectNow, "", ""), ErrorCodeUnavailable},
		{"deadlock", pgErr(pgErrDeadlockDetected, "", ""), ErrorCodeDB},
		{"no rows", pgx.ErrNoRows, ErrorCodeNotFound},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), ErrorCodeUnavailable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := DBErrorCode(c.err)
			if !ok || got != c.want {
				t.Fatalf("DBErrorCode = %v,%v want %v,true", got, ok, c.want)
			}
		})
	}

	if _, ok := DBErrorCode(stderrs.New("plain")); ok {
		t.Fatalf("plain error should not classify")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil must stay nil")
	}
	err := FromPostgresf(pgErr(pgErrUniqueViolation, "", "uq_case_num_date"), "upsert %s", "2020다1234")
	if CodeOf(err) != ErrorCodeDuplicateKey {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if !IsDuplicateKey(err) {
		t.Fatalf("IsDuplicateKey should see through the wrap")
	}
	if CodeOf(FromPostgres(stderrs.New("driver"), "x")) != ErrorCodeDB {
		t.Fatalf("unclassified should default to DB")
	}
}

func TestFromPostgresWithField(t *testing.T) {
	e, _ := As(FromPostgresWithField(pgErr(pgErrNotNullViolation, "case_name", ""), "insert"))
	if e.Field() != "case_name" {
		t.Fatalf("field = %q", e.Field())
	}
	e, _ = As(FromPostgresWithField(pgErr(pgErrUniqueViolation, "", "uq_case_num_date"), "insert"))
	if e.Field() != "case_number" {
		t.Fatalf("constraint field = %q", e.Field())
	}
	e, _ = As(FromPostgresWithField(stderrs.New("plain"), "insert"))
	if e.Field() != "" {
		t.Fatalf("unexpected field %q", e.Field())
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{pgErr(pgErrSerializationFailure, "", ""), true},
		{pgErr(pgErrDeadlockDetected, "", ""), true},
		{pgErr(pgErrUniqueViolation, "", ""), false},
		{stderrs.New("commit unexpectedly resulted in rollback"), true},
		{stderrs.New("syntax"), false},
	}
	for i, c := range cases {
		if got := IsRetryable(c.err); got != c.want {
			t.Fatalf("case %d: IsRetryable(%v) = %v", i, c.err, got)
		}
	}
}

func TestIsUnreachable(t *testing.T) {
	if !IsUnreachable(&pgconn.ConnectError{}) {
		t.Fatalf("connect error should be unreachable")
	}
	if IsUnreachable(pgErr(pgErrUniqueViolation, "", "")) {
		t.Fatalf("constraint violation is not unreachable")
	}
}

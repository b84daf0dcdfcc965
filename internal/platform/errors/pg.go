package errors

// postgres helpers: classify pgx failures into ErrorCode and answer retry questions

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the ruling store cares about
const (
	pgErrUniqueViolation           = "23505"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"
	pgErrInvalidDatetimeFormat     = "22007"

	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
	pgErrLockNotAvailable     = "55P03"
	pgErrQueryCanceled        = "57014" // statement_timeout
	pgErrAdminShutdown        = "57P01"
	pgErrCannotConnectNow     = "57P03"
	pgErrTooManyConnections   = "53300"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports whether the error is a unique constraint violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgErrUniqueViolation) }

// IsUnreachable reports whether err means the database could not be reached or did not answer in time
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if stderrs.As(err, &connErr) {
		return true
	}
	switch {
	case IsSQLState(err, pgErrCannotConnectNow),
		IsSQLState(err, pgErrAdminShutdown),
		IsSQLState(err, pgErrTooManyConnections),
		IsSQLState(err, pgErrQueryCanceled):
		return true
	}
	return false
}

// DBErrorCode maps a database error to an ErrorCode
// !ok means err carried nothing postgres specific
func DBErrorCode(err error) (ErrorCode, bool) {
	if stderrs.Is(err, pgx.ErrNoRows) {
		return ErrorCodeNotFound, true
	}
	if IsUnreachable(err) {
		return ErrorCodeUnavailable, true
	}
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErrNotNullViolation, pgErrCheckViolation:
		return ErrorCodeValidation, true
	case pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation, pgErrInvalidDatetimeFormat:
		return ErrorCodeInvalidArgument, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a pg error with a mapped ErrorCode and message. nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// FromPostgresf is the formatted variant of FromPostgres
func FromPostgresf(err error, format string, a ...any) error {
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// FromPostgresWithField is FromPostgres plus the offending column when postgres names one
func FromPostgresWithField(err error, msg string) error {
	out := FromPostgres(err, msg)
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return out
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(out, col)
	}
	if pgErr.ConstraintName == "uq_case_num_date" {
		return WithField(out, "case_number")
	}
	return out
}

// IsRetryable reports whether a database error is transient contention worth retrying
// local cancellation is never retryable, the caller gave up
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) {
		return false
	}
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrLockNotAvailable:
			return true
		}
		return false
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "commit unexpectedly resulted in rollback") ||
		strings.Contains(s, "deadlock detected") ||
		strings.Contains(s, "could not serialize access")
}

package infra

import (
	"errors"
	"log/slog"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr wraps err with a kind. Without an explicit kind the kind is
// derived from the PostgreSQL error code, falling back to DB_FAILURE.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindOf(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	if k != KindNotFound {
		slog.Error("Repository error: "+msg,
			slog.String("kind", string(k)),
			slog.Any("error", err))
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: k, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	return KindOf(err) == kind
}

// KindOf classifies err, looking first for a RepositoryError and then for a
// PostgreSQL error anywhere in the chain. Commit-time failures only carry the latter.
func KindOf(err error) RepositoryErrorKind {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return KindUniqueViolation
		case pgErrExclusionViolation:
			return KindExclusionViolation
		case pgErrForeignKeyViolation:
			return KindForeignKeyViolated
		case pgErrCheckViolation:
			return KindCheckViolation
		}
	}
	return KindDBFailure
}

// ConstraintName returns the violated constraint, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

const (
	pgErrUniqueViolation     = "23505"
	pgErrExclusionViolation  = "23P01"
	pgErrForeignKeyViolation = "23503"
	pgErrCheckViolation      = "23514"
)

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindUniqueViolation    RepositoryErrorKind = "UNIQUE_VIOLATION"
	KindExclusionViolation RepositoryErrorKind = "EXCLUSION_VIOLATION"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindCheckViolation     RepositoryErrorKind = "CHECK_VIOLATION"
)

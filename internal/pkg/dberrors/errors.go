package dberrors

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes inspected by the store layer
const (
	uniqueViolation = "23505"
	checkViolation  = "23514"
	queryCanceled   = "57014"
)

// Kind is a coarse classification of a store failure, used for log fields
type Kind string

const (
	KindUnknown    Kind = "unknown"
	KindUnique     Kind = "unique_violation"
	KindCheck      Kind = "check_violation"
	KindConnection Kind = "connection"
	KindTimeout    Kind = "timeout"
)

// IsDuplicateConstraintError reports a unique violation on the named constraint
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraintName
}

// Classify maps err onto a Kind
func Classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return KindTimeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolation:
			return KindUnique
		case pgErr.Code == checkViolation:
			return KindCheck
		case pgErr.Code == queryCanceled:
			return KindTimeout
		case len(pgErr.Code) == 5 && pgErr.Code[:2] == "08":
			return KindConnection
		}
		return KindUnknown
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return KindConnection
	}
	return KindUnknown
}

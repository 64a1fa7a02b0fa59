package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/collegepredictor/internal/pkg/apperrors"
	"github.com/yigit/collegepredictor/internal/pkg/dberrors"
	"github.com/yigit/collegepredictor/internal/pkg/logger"
)

// defaultQueryTimeout applies when a repository is built without an explicit timeout
const defaultQueryTimeout = 5 * time.Second

// psql builds PostgreSQL statements with $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// withTimeout bounds a single store query
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeError logs the store detail and wraps it so callers only see a generic failure
func storeError(op string, err error) error {
	logger.Error().Err(err).Str("op", op).Str("kind", string(dberrors.Classify(err))).Msg("Store query failed")
	return apperrors.NewStoreError(op, err)
}

// collectStrings reads single text column rows into a non-nil slice
func collectStrings(rows pgx.Rows) ([]string, error) {
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

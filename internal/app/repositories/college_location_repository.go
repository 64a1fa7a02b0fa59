package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/collegepredictor/internal/app/models"
)

const locationsTable = "college_location"

// CollegeLocationRepository handles database operations for college location metadata
type CollegeLocationRepository struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewCollegeLocationRepository creates a new CollegeLocationRepository
func NewCollegeLocationRepository(db *pgxpool.Pool, timeout time.Duration) *CollegeLocationRepository {
	return &CollegeLocationRepository{db: db, timeout: timeout}
}

// ListAll returns every college location row ordered by id
func (r *CollegeLocationRepository) ListAll(ctx context.Context) ([]models.CollegeLocation, error) {
	sql, args, err := psql.Select("id", "code", "college_name", "college_district").
		From(locationsTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list locations query: %w", err)
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("list locations", err)
	}
	defer rows.Close()

	locations := []models.CollegeLocation{}
	for rows.Next() {
		var l models.CollegeLocation
		if err := rows.Scan(&l.ID, &l.Code, &l.CollegeName, &l.CollegeDistrict); err != nil {
			return nil, storeError("scan location row", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate location rows", err)
	}

	return locations, nil
}

// ListDistricts returns every distinct location district
func (r *CollegeLocationRepository) ListDistricts(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "list location districts", "college_district")
}

// ListCodes returns every distinct institution code
func (r *CollegeLocationRepository) ListCodes(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "list college codes", "code")
}

func (r *CollegeLocationRepository) distinct(ctx context.Context, op, column string) ([]string, error) {
	sql, args, err := psql.Select(column).Distinct().From(locationsTable).OrderBy(column + " ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError(op, err)
	}

	values, err := collectStrings(rows)
	if err != nil {
		return nil, storeError(op, err)
	}
	return values, nil
}

// BulkInsert copies location rows into the store within tx
func (r *CollegeLocationRepository) BulkInsert(ctx context.Context, tx pgx.Tx, locations []models.CollegeLocation) (int64, error) {
	src := pgx.CopyFromSlice(len(locations), func(i int) ([]interface{}, error) {
		l := locations[i]
		return []interface{}{l.Code, l.CollegeName, l.CollegeDistrict}, nil
	})

	n, err := tx.CopyFrom(ctx, pgx.Identifier{locationsTable}, []string{"code", "college_name", "college_district"}, src)
	if err != nil {
		return 0, storeError("copy locations", err)
	}
	return n, nil
}

// Truncate removes every location row within tx
func (r *CollegeLocationRepository) Truncate(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+locationsTable+" RESTART IDENTITY"); err != nil {
		return storeError("truncate locations", err)
	}
	return nil
}

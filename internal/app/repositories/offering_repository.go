package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/collegepredictor/internal/app/models"
)

const offeringsTable = "colleges"

var offeringColumns = []string{
	"college_name", "branch_name", "branch_code", "college_code", "community", "district", "average_cutoff",
}

// EligibilityFilter selects offerings by cutoff range and exact categorical matches
type EligibilityFilter struct {
	MinCutoff float64
	MaxCutoff float64
	Category  string
	Branch    string
	District  string
}

// OfferingRepository handles database operations for admission-cutoff offerings
type OfferingRepository struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewOfferingRepository creates a new OfferingRepository
func NewOfferingRepository(db *pgxpool.Pool, timeout time.Duration) *OfferingRepository {
	return &OfferingRepository{db: db, timeout: timeout}
}

// distinctColumns identify one offering in a lookup result; college_code is not part of it
var distinctColumns = []string{
	"college_name", "branch_name", "branch_code", "community", "district", "average_cutoff",
}

// buildEligibleQuery renders the eligibility lookup.
// Rows collapse on distinctColumns, keeping the lowest college_code, and are
// ordered by cutoff descending, then name and codes.
func buildEligibleQuery(f EligibilityFilter) (string, []interface{}, error) {
	distinctOn := strings.Join(distinctColumns, ", ")

	matches := psql.Select(offeringColumns...).
		Options("DISTINCT ON (" + distinctOn + ")").
		From(offeringsTable).
		Where(squirrel.Expr("average_cutoff BETWEEN ? AND ?", f.MinCutoff, f.MaxCutoff)).
		Where(squirrel.Eq{
			"community":   f.Category,
			"branch_name": f.Branch,
			"district":    f.District,
		}).
		OrderBy(distinctOn, "college_code ASC")

	return psql.Select(offeringColumns...).
		FromSelect(matches, "matches").
		OrderBy("average_cutoff DESC", "college_name ASC", "branch_code ASC", "college_code ASC").
		ToSql()
}

// FindEligible returns every distinct offering matching the filter
func (r *OfferingRepository) FindEligible(ctx context.Context, f EligibilityFilter) ([]models.Offering, error) {
	sql, args, err := buildEligibleQuery(f)
	if err != nil {
		return nil, fmt.Errorf("failed to build eligibility query: %w", err)
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("find eligible offerings", err)
	}
	defer rows.Close()

	offerings := []models.Offering{}
	for rows.Next() {
		var (
			o          models.Offering
			branchName *string
		)
		if err := rows.Scan(
			&o.CollegeName,
			&branchName,
			&o.BranchCode,
			&o.CollegeCode,
			&o.Community,
			&o.District,
			&o.AverageCutoff,
		); err != nil {
			return nil, storeError("scan offering row", err)
		}
		if branchName != nil {
			o.BranchName = *branchName
		}
		offerings = append(offerings, o)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("iterate offering rows", err)
	}

	return offerings, nil
}

// ListCategories returns every distinct community
func (r *OfferingRepository) ListCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "list categories", psql.Select("community").Distinct().From(offeringsTable).OrderBy("community ASC"))
}

// ListDistricts returns every distinct offering district
func (r *OfferingRepository) ListDistricts(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "list offering districts", psql.Select("district").Distinct().From(offeringsTable).OrderBy("district ASC"))
}

// ListBranches returns every distinct non-null branch name
func (r *OfferingRepository) ListBranches(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "list branches", psql.Select("branch_name").Distinct().
		From(offeringsTable).
		Where(squirrel.NotEq{"branch_name": nil}).
		OrderBy("branch_name ASC"))
}

func (r *OfferingRepository) distinct(ctx context.Context, op string, q squirrel.SelectBuilder) ([]string, error) {
	sql, args, err := q.ToSql()
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

// Count returns the number of stored offerings
func (r *OfferingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var n int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+offeringsTable).Scan(&n); err != nil {
		return 0, storeError("count offerings", err)
	}
	return n, nil
}

// BulkInsert copies offerings into the store within tx
func (r *OfferingRepository) BulkInsert(ctx context.Context, tx pgx.Tx, offerings []models.Offering) (int64, error) {
	src := pgx.CopyFromSlice(len(offerings), func(i int) ([]interface{}, error) {
		o := offerings[i]
		var branchName interface{}
		if o.BranchName != "" {
			branchName = o.BranchName
		}
		district := o.District
		if district == "" {
			district = models.UnknownDistrict
		}
		return []interface{}{o.CollegeName, branchName, o.BranchCode, o.CollegeCode, o.Community, district, o.AverageCutoff}, nil
	})

	n, err := tx.CopyFrom(ctx, pgx.Identifier{offeringsTable}, offeringColumns, src)
	if err != nil {
		return 0, storeError("copy offerings", err)
	}
	return n, nil
}

// Truncate removes every offering within tx
func (r *OfferingRepository) Truncate(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+offeringsTable+" RESTART IDENTITY"); err != nil {
		return storeError("truncate offerings", err)
	}
	return nil
}

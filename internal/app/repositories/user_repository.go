package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/collegepredictor/internal/app/models"
	"github.com/yigit/collegepredictor/internal/pkg/apperrors"
	"github.com/yigit/collegepredictor/internal/pkg/dberrors"
)

// usersEmailKey is the unique constraint on users.email
const usersEmailKey = "users_email_key"

// UserRepository handles database operations for registered students
type UserRepository struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool, timeout time.Duration) *UserRepository {
	return &UserRepository{db: db, timeout: timeout}
}

// Create inserts a user and fills in its ID and CreatedAt
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := psql.Insert("users").
		Columns("name", "age", "gender", "school", "dob", "mobile", "email").
		Values(user.Name, user.Age, user.Gender, user.School, user.DOB, user.Mobile, user.Email).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, usersEmailKey) {
			return apperrors.ErrEmailAlreadyExists
		}
		return storeError("create user", err)
	}

	return nil
}

package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/collegepredictor/internal/app/models"
	"github.com/yigit/collegepredictor/internal/app/repositories"
	"github.com/yigit/collegepredictor/internal/db"
)

// OfferingStore is the read side of the offerings table
type OfferingStore interface {
	FindEligible(ctx context.Context, f repositories.EligibilityFilter) ([]models.Offering, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListDistricts(ctx context.Context) ([]string, error)
	ListBranches(ctx context.Context) ([]string, error)
}

// LocationStore is the read side of the college location table
type LocationStore interface {
	ListAll(ctx context.Context) ([]models.CollegeLocation, error)
	ListDistricts(ctx context.Context) ([]string, error)
	ListCodes(ctx context.Context) ([]string, error)
}

// UserStore persists registrations
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
}

// OfferingWriter bulk loads offerings inside a transaction
type OfferingWriter interface {
	BulkInsert(ctx context.Context, tx pgx.Tx, offerings []models.Offering) (int64, error)
	Truncate(ctx context.Context, tx pgx.Tx) error
}

// LocationWriter bulk loads college locations inside a transaction
type LocationWriter interface {
	BulkInsert(ctx context.Context, tx pgx.Tx, locations []models.CollegeLocation) (int64, error)
	Truncate(ctx context.Context, tx pgx.Tx) error
}

// TxRunner runs fn inside one store transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// Services holds every service the HTTP layer depends on
type Services struct {
	EligibilityService  EligibilityService
	CatalogService      CatalogService
	RegistrationService RegistrationService
	ReportService       ReportService
}

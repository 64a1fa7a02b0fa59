package services

import (
	"context"
	"math"
	"strings"

	"github.com/yigit/collegepredictor/internal/app/models"
	"github.com/yigit/collegepredictor/internal/app/repositories"
	"github.com/yigit/collegepredictor/internal/pkg/apperrors"
	"github.com/yigit/collegepredictor/internal/pkg/logger"
)

// EligibilityQuery is a score range plus exact-match filters.
// Nil cutoffs mean the field was absent from the request.
type EligibilityQuery struct {
	MinCutoff *float64
	MaxCutoff *float64
	Category  string
	Branch    string
	District  string
}

// EligibilityService defines the interface for eligibility lookups
type EligibilityService interface {
	FindEligible(ctx context.Context, query EligibilityQuery) ([]models.Offering, error)
}

type eligibilityServiceImpl struct {
	offerings OfferingStore
}

// NewEligibilityService creates a new eligibility service instance
func NewEligibilityService(offerings OfferingStore) EligibilityService {
	return &eligibilityServiceImpl{offerings: offerings}
}

// validateQuery checks presence of the required fields
func validateQuery(q EligibilityQuery) error {
	var missing []string
	if q.MinCutoff == nil {
		missing = append(missing, "min_cutoff")
	}
	if q.MaxCutoff == nil {
		missing = append(missing, "max_cutoff")
	}
	if q.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError(strings.Join(missing, ", "), "Missing required fields")
	}

	if !isFinite(*q.MinCutoff) {
		return apperrors.NewValidationError("min_cutoff", "must be a finite number")
	}
	if !isFinite(*q.MaxCutoff) {
		return apperrors.NewValidationError("max_cutoff", "must be a finite number")
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FindEligible returns every distinct offering whose cutoff lies in [min, max]
// and whose community, branch and district equal the query values.
// A reversed range returns an empty list without touching the store.
func (s *eligibilityServiceImpl) FindEligible(ctx context.Context, q EligibilityQuery) ([]models.Offering, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	if *q.MinCutoff > *q.MaxCutoff {
		logger.Debug().
			Float64("min", *q.MinCutoff).
			Float64("max", *q.MaxCutoff).
			Msg("Reversed cutoff range, returning no offerings")
		return []models.Offering{}, nil
	}

	offerings, err := s.offerings.FindEligible(ctx, repositories.EligibilityFilter{
		MinCutoff: *q.MinCutoff,
		MaxCutoff: *q.MaxCutoff,
		Category:  q.Category,
		Branch:    q.Branch,
		District:  q.District,
	})
	if err != nil {
		return nil, err
	}
	return offerings, nil
}

package services

import (
	"context"

	"github.com/yigit/collegepredictor/internal/app/models"
	"github.com/yigit/collegepredictor/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Facet names reported by ResolveFilters
const (
	FacetDistricts    = "districts"
	FacetCollegeCodes = "college_codes"
)

// FacetError records one facet that could not be resolved
type FacetError struct {
	Facet string
	Err   error
}

// FilterFacets is the combined location filter result.
// A failed facet is an empty list with a matching entry in Errors.
type FilterFacets struct {
	Districts    []string
	CollegeCodes []string
	Errors       []FacetError
}

// AllFailed reports whether no facet resolved
func (f FilterFacets) AllFailed() bool {
	return len(f.Errors) == 2
}

// CatalogService defines the interface for reference data lookups
type CatalogService interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListDistricts(ctx context.Context) ([]string, error)
	ListBranches(ctx context.Context) ([]string, error)
	ListLocations(ctx context.Context) ([]models.CollegeLocation, error)
	ListLocationDistricts(ctx context.Context) ([]string, error)
	ListCollegeCodes(ctx context.Context) ([]string, error)
	ResolveFilters(ctx context.Context) FilterFacets
}

type catalogServiceImpl struct {
	offerings OfferingStore
	locations LocationStore
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(offerings OfferingStore, locations LocationStore) CatalogService {
	return &catalogServiceImpl{offerings: offerings, locations: locations}
}

// ListCategories returns every distinct community
func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]string, error) {
	return nonNil(s.offerings.ListCategories(ctx))
}

// ListDistricts returns every distinct offering district
func (s *catalogServiceImpl) ListDistricts(ctx context.Context) ([]string, error) {
	return nonNil(s.offerings.ListDistricts(ctx))
}

// ListBranches returns every distinct non-null branch name
func (s *catalogServiceImpl) ListBranches(ctx context.Context) ([]string, error) {
	return nonNil(s.offerings.ListBranches(ctx))
}

// ListLocations returns every college location row
func (s *catalogServiceImpl) ListLocations(ctx context.Context) ([]models.CollegeLocation, error) {
	locations, err := s.locations.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []models.CollegeLocation{}
	}
	return locations, nil
}

// ListLocationDistricts returns every distinct district of the location table
func (s *catalogServiceImpl) ListLocationDistricts(ctx context.Context) ([]string, error) {
	return nonNil(s.locations.ListDistricts(ctx))
}

// ListCollegeCodes returns every distinct institution code
func (s *catalogServiceImpl) ListCollegeCodes(ctx context.Context) ([]string, error) {
	return nonNil(s.locations.ListCodes(ctx))
}

// ResolveFilters loads both location facets concurrently.
// Neither facet's failure cancels the other.
func (s *catalogServiceImpl) ResolveFilters(ctx context.Context) FilterFacets {
	var districts, codes []string
	var districtErr, codeErr error

	var g errgroup.Group
	g.Go(func() error {
		districts, districtErr = s.ListLocationDistricts(ctx)
		return nil
	})
	g.Go(func() error {
		codes, codeErr = s.ListCollegeCodes(ctx)
		return nil
	})
	_ = g.Wait()

	result := FilterFacets{Districts: []string{}, CollegeCodes: []string{}}
	if districtErr != nil {
		logger.Warn().Err(districtErr).Str("facet", FacetDistricts).Msg("Filter facet failed")
		result.Errors = append(result.Errors, FacetError{Facet: FacetDistricts, Err: districtErr})
	} else {
		result.Districts = districts
	}
	if codeErr != nil {
		logger.Warn().Err(codeErr).Str("facet", FacetCollegeCodes).Msg("Filter facet failed")
		result.Errors = append(result.Errors, FacetError{Facet: FacetCollegeCodes, Err: codeErr})
	} else {
		result.CollegeCodes = codes
	}
	return result
}

func nonNil(values []string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

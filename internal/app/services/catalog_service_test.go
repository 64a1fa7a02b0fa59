package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/collegepredictor/internal/pkg/apperrors"
)

func TestCatalog_EmptyTablesAreEmptySets(t *testing.T) {
	svc := NewCatalogService(&fakeOfferingStore{}, &fakeLocationStore{})
	ctx := context.Background()

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)

	branches, err := svc.ListBranches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, branches)

	locations, err := svc.ListLocations(ctx)
	require.NoError(t, err)
	assert.NotNil(t, locations)
}

func TestCatalog_OfferingAndLocationDistrictsAreDistinct(t *testing.T) {
	svc := NewCatalogService(
		&fakeOfferingStore{districts: []string{"Chennai", "Unknown"}},
		&fakeLocationStore{districts: []string{"Madurai"}},
	)

	offeringDistricts, err := svc.ListDistricts(context.Background())
	require.NoError(t, err)
	locationDistricts, err := svc.ListLocationDistricts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Chennai", "Unknown"}, offeringDistricts)
	assert.Equal(t, []string{"Madurai"}, locationDistricts)
}

func TestCatalog_StoreError(t *testing.T) {
	svc := NewCatalogService(&fakeOfferingStore{err: apperrors.NewStoreError("list categories", errors.New("boom"))}, &fakeLocationStore{})

	_, err := svc.ListCategories(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStore)
}

func TestResolveFilters(t *testing.T) {
	storeErr := apperrors.NewStoreError("list", errors.New("boom"))

	t.Run("both succeed", func(t *testing.T) {
		svc := NewCatalogService(&fakeOfferingStore{}, &fakeLocationStore{districts: []string{"Chennai"}, codes: []string{"1"}})

		f := svc.ResolveFilters(context.Background())
		assert.Equal(t, []string{"Chennai"}, f.Districts)
		assert.Equal(t, []string{"1"}, f.CollegeCodes)
		assert.Empty(t, f.Errors)
		assert.False(t, f.AllFailed())
	})

	t.Run("codes fail", func(t *testing.T) {
		svc := NewCatalogService(&fakeOfferingStore{}, &fakeLocationStore{districts: []string{"Chennai"}, codeErr: storeErr})

		f := svc.ResolveFilters(context.Background())
		assert.Equal(t, []string{"Chennai"}, f.Districts)
		assert.Equal(t, []string{}, f.CollegeCodes)
		require.Len(t, f.Errors, 1)
		assert.Equal(t, FacetCollegeCodes, f.Errors[0].Facet)
		assert.False(t, f.AllFailed())
	})

	t.Run("districts failure leaves codes query running", func(t *testing.T) {
		locations := &fakeLocationStore{
			codes:         []string{"1", "2"},
			districtErr:   storeErr,
			districtsDone: make(chan struct{}),
		}
		svc := NewCatalogService(&fakeOfferingStore{}, locations)

		f := svc.ResolveFilters(context.Background())
		assert.NoError(t, locations.codesCtxErr)
		assert.Equal(t, []string{"1", "2"}, f.CollegeCodes)
		assert.Equal(t, []string{}, f.Districts)
		require.Len(t, f.Errors, 1)
		assert.Equal(t, FacetDistricts, f.Errors[0].Facet)
	})

	t.Run("both fail", func(t *testing.T) {
		svc := NewCatalogService(&fakeOfferingStore{}, &fakeLocationStore{districtErr: storeErr, codeErr: storeErr})

		f := svc.ResolveFilters(context.Background())
		assert.Equal(t, []string{}, f.Districts)
		assert.Equal(t, []string{}, f.CollegeCodes)
		assert.True(t, f.AllFailed())
	})
}

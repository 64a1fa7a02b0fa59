package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/collegepredictor/internal/app/models"
	"github.com/yigit/collegepredictor/internal/app/repositories"
	"github.com/yigit/collegepredictor/internal/pkg/apperrors"
)

func TestFindEligible_PassesFilterThrough(t *testing.T) {
	want := []models.Offering{{CollegeName: "X College", BranchName: "CSE", BranchCode: "CS01", Community: "OC", District: "Chennai", AverageCutoff: 150.5}}
	store := &fakeOfferingStore{offerings: want}
	svc := NewEligibilityService(store)

	got, err := svc.FindEligible(context.Background(), EligibilityQuery{
		MinCutoff: float(140), MaxCutoff: float(160), Category: "OC", Branch: "CSE", District: "Chennai",
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, repositories.EligibilityFilter{MinCutoff: 140, MaxCutoff: 160, Category: "OC", Branch: "CSE", District: "Chennai"}, store.lastArg)
}

func TestFindEligible_ReversedRangeIsEmpty(t *testing.T) {
	store := &fakeOfferingStore{err: errors.New("must not be called")}
	svc := NewEligibilityService(store)

	for _, r := range [][2]float64{{160, 140}, {0.5, 0}, {200, -1}} {
		got, err := svc.FindEligible(context.Background(), EligibilityQuery{
			MinCutoff: float(r[0]), MaxCutoff: float(r[1]), Category: "OC",
		})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Zero(t, store.calls)
}

func TestFindEligible_EqualBoundsQueries(t *testing.T) {
	store := &fakeOfferingStore{}
	svc := NewEligibilityService(store)

	_, err := svc.FindEligible(context.Background(), EligibilityQuery{MinCutoff: float(150), MaxCutoff: float(150), Category: "BC"})
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
}

func TestFindEligible_Validation(t *testing.T) {
	tests := []struct {
		name  string
		query EligibilityQuery
		field string
	}{
		{"missing category", EligibilityQuery{MinCutoff: float(1), MaxCutoff: float(2)}, "category"},
		{"missing category with filters", EligibilityQuery{MinCutoff: float(1), MaxCutoff: float(2), Branch: "CSE", District: "Chennai"}, "category"},
		{"missing min", EligibilityQuery{MaxCutoff: float(2), Category: "OC"}, "min_cutoff"},
		{"missing everything", EligibilityQuery{}, "min_cutoff, max_cutoff, category"},
		{"nan", EligibilityQuery{MinCutoff: float(math.NaN()), MaxCutoff: float(2), Category: "OC"}, "min_cutoff"},
		{"inf", EligibilityQuery{MinCutoff: float(1), MaxCutoff: float(math.Inf(1)), Category: "OC"}, "max_cutoff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeOfferingStore{}
			svc := NewEligibilityService(store)

			_, err := svc.FindEligible(context.Background(), tt.query)
			require.ErrorIs(t, err, apperrors.ErrValidationFailed)

			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Zero(t, store.calls)
		})
	}
}

func TestFindEligible_StoreErrorPropagates(t *testing.T) {
	storeErr := apperrors.NewStoreError("find eligible offerings", errors.New("connection refused"))
	svc := NewEligibilityService(&fakeOfferingStore{err: storeErr})

	got, err := svc.FindEligible(context.Background(), EligibilityQuery{MinCutoff: float(1), MaxCutoff: float(2), Category: "OC"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrStore)
}

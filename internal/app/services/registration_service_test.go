package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/collegepredictor/internal/pkg/apperrors"
)

func validRegistration() RegisterInput {
	return RegisterInput{
		Name:   "Priya",
		Age:    17,
		Gender: "F",
		School: "GHSS Adyar",
		DOB:    "2008-05-14",
		Mobile: "9876543210",
		Email:  "Priya@Example.com ",
	}
}

func TestRegister_Success(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewRegistrationService(store)

	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "priya@example.com", user.Email)
	assert.Equal(t, 2008, user.DOB.Year())
	require.Len(t, store.created, 1)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
		field  string
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "  " }, "name"},
		{"missing age", func(in *RegisterInput) { in.Age = 0 }, "age"},
		{"age too high", func(in *RegisterInput) { in.Age = 150 }, "age"},
		{"bad email", func(in *RegisterInput) { in.Email = "priya.example.com" }, "email"},
		{"bad mobile", func(in *RegisterInput) { in.Mobile = "98765-4321" }, "mobile"},
		{"bad dob", func(in *RegisterInput) { in.DOB = "14/05/2008" }, "dob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{}
			in := validRegistration()
			tt.mutate(&in)

			_, err := NewRegistrationService(store).Register(context.Background(), in)
			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Empty(t, store.created)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewRegistrationService(&fakeUserStore{err: apperrors.ErrEmailAlreadyExists})

	_, err := svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

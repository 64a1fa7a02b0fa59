package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/collegepredictor/internal/app/models"
	"github.com/yigit/collegepredictor/internal/pkg/apperrors"
	"github.com/yigit/collegepredictor/internal/pkg/logger"
	"github.com/yigit/collegepredictor/internal/pkg/validation"
)

// RegisterInput is the raw registration form
type RegisterInput struct {
	Name   string
	Age    int
	Gender string
	School string
	DOB    string
	Mobile string
	Email  string
}

// RegistrationService defines the interface for student registration
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
}

type registrationServiceImpl struct {
	users UserStore
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(users UserStore) RegistrationService {
	return &registrationServiceImpl{users: users}
}

// buildUser validates input and converts it into a User
func buildUser(in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Gender = strings.TrimSpace(in.Gender)
	in.School = strings.TrimSpace(in.School)
	in.DOB = strings.TrimSpace(in.DOB)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"gender", in.Gender},
		{"school", in.School},
		{"dob", in.DOB},
		{"mobile", in.Mobile},
		{"email", in.Email},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if in.Age == 0 {
		missing = append(missing, "age")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError(strings.Join(missing, ", "), "Missing required fields")
	}

	if !validation.NewStringValidation(in.Name).WithMaxLength(validation.NameMaxLength).Validate() {
		return nil, apperrors.NewValidationError("name", fmt.Sprintf("must be at most %d characters", validation.NameMaxLength))
	}
	if !validation.NewNumericValidation(in.Age).WithMin(validation.AgeMin).WithMax(validation.AgeMax).Validate() {
		return nil, apperrors.NewValidationError("age", fmt.Sprintf("must be between %d and %d", validation.AgeMin, validation.AgeMax))
	}
	if !validation.NewStringValidation(in.Email).WithPattern(validation.CompiledPatterns.Email).Validate() {
		return nil, apperrors.NewValidationError("email", "must be a valid email address")
	}
	if !validation.NewStringValidation(in.Mobile).WithPattern(validation.CompiledPatterns.Mobile).Validate() {
		return nil, apperrors.NewValidationError("mobile", "must be a 10 digit number")
	}
	dob, ok := validation.ParseDate(in.DOB)
	if !ok {
		return nil, apperrors.NewValidationError("dob", "must be a date formatted as YYYY-MM-DD")
	}

	return &models.User{
		Name:   in.Name,
		Age:    in.Age,
		Gender: in.Gender,
		School: in.School,
		DOB:    dob,
		Mobile: in.Mobile,
		Email:  in.Email,
	}, nil
}

// Register validates and stores a student registration
func (s *registrationServiceImpl) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	user, err := buildUser(input)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError(apperrors.ErrEmailAlreadyExists.Error())
		}
		return nil, err
	}

	logger.Info().Int64("userID", user.ID).Msg("User registered")
	return user, nil
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/collegepredictor/internal/app/models/dto"
	"github.com/yigit/collegepredictor/internal/pkg/apperrors"
	"github.com/yigit/collegepredictor/internal/pkg/logger"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	var (
		validationErr *apperrors.ValidationError
		customErr     *apperrors.CustomError
	)

	switch {
	case errors.As(err, &validationErr):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, validationErr.Message).WithField(validationErr.Field)
		abortWithError(c, http.StatusBadRequest, detail)
	case errors.Is(err, apperrors.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed"))
	case errors.Is(err, apperrors.ErrConflict):
		message := "Resource already exists"
		if errors.As(err, &customErr) && customErr.Message != "" {
			message = customErr.Message
		}
		abortWithError(c, http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		message := "Resource not found"
		if errors.As(err, &customErr) && customErr.Message != "" {
			message = customErr.Message
		}
		abortWithError(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message))
	case errors.Is(err, apperrors.ErrStore):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Store failure while handling request")
		abortWithError(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Failed to fetch data"))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error while handling request")
		abortWithError(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

// HandleBindingError responds 400 with one entry per failing request field
func HandleBindingError(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, dto.HandleValidationError(err))
}

func abortWithError(c *gin.Context, status int, detail *dto.ErrorDetail) {
	if status < http.StatusInternalServerError {
		detail.WithSeverity(dto.ErrorSeverityWarning)
	}
	_ = c.Error(errors.New(detail.Message))
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

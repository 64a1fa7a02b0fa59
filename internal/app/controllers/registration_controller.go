package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/collegepredictor/internal/app/models/dto"
	"github.com/yigit/collegepredictor/internal/app/services"
	"github.com/yigit/collegepredictor/internal/middleware"
)

// RegistrationController handles student registration
type RegistrationController struct {
	registrationService services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService services.RegistrationService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
	}
}

// Register stores a student registration
// @Summary Register a student
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Student details"
// @Success 201 {object} dto.RegisterResponse "User registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed fields"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /register [post]
func (c *RegistrationController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.registrationService.Register(ctx.Request.Context(), services.RegisterInput{
		Name:   req.Name,
		Age:    req.Age,
		Gender: req.Gender,
		School: req.School,
		DOB:    req.DOB,
		Mobile: req.Mobile,
		Email:  req.Email,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully",
		ID:      user.ID,
	})
}

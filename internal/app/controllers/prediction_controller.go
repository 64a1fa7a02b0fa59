package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/collegepredictor/internal/app/models/dto"
	"github.com/yigit/collegepredictor/internal/app/services"
	"github.com/yigit/collegepredictor/internal/middleware"
)

// PredictionController handles eligibility lookups
type PredictionController struct {
	eligibilityService services.EligibilityService
}

// NewPredictionController creates a new PredictionController
func NewPredictionController(eligibilityService services.EligibilityService) *PredictionController {
	return &PredictionController{
		eligibilityService: eligibilityService,
	}
}

// toQuery maps the request body onto the service input
func toQuery(req dto.PredictRequest) services.EligibilityQuery {
	return services.EligibilityQuery{
		MinCutoff: req.MinCutoff,
		MaxCutoff: req.MaxCutoff,
		Category:  req.Category,
		Branch:    req.Branch,
		District:  req.District,
	}
}

// Predict returns the colleges a student is eligible for
// @Summary Find eligible colleges
// @Description Returns every distinct offering whose cutoff lies in [min_cutoff, max_cutoff] and whose category, branch and district match exactly
// @Tags prediction
// @Accept json
// @Produce json
// @Param request body dto.PredictRequest true "Score range and filters"
// @Success 200 {object} dto.PredictResponse "Matching offerings"
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed fields"
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch data"
// @Router /predict [post]
func (c *PredictionController) Predict(ctx *gin.Context) {
	var req dto.PredictRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	offerings, err := c.eligibilityService.FindEligible(ctx.Request.Context(), toQuery(req))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PredictResponse{PredictedColleges: offerings})
}

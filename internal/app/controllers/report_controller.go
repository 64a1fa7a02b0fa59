package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/collegepredictor/internal/app/models"
	"github.com/yigit/collegepredictor/internal/app/models/dto"
	"github.com/yigit/collegepredictor/internal/app/services"
	"github.com/yigit/collegepredictor/internal/middleware"
)

// ReportController handles PDF report generation
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// GenerateReport renders an eligibility lookup as a PDF and optionally delivers it
// @Summary Generate a prediction report
// @Description Runs the eligibility lookup, stores the result as a PDF under /uploads and sends it over the requested channels. Delivery failures are reported per channel.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.GenerateReportRequest true "Student, lookup and delivery options"
// @Success 201 {object} models.Report "Report generated"
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed fields"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [post]
func (c *ReportController) GenerateReport(ctx *gin.Context) {
	var req dto.GenerateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	report, err := c.reportService.Generate(ctx.Request.Context(), services.ReportRequest{
		Student: models.Recipient{
			Name:   req.Student.Name,
			Mobile: req.Student.Mobile,
			Email:  req.Student.Email,
		},
		School:   req.Student.School,
		Query:    toQuery(req.Query),
		WhatsApp: req.Deliver.WhatsApp,
		Email:    req.Deliver.Email,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, report)
}

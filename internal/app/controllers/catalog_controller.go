package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/collegepredictor/internal/app/models/dto"
	"github.com/yigit/collegepredictor/internal/app/services"
	"github.com/yigit/collegepredictor/internal/middleware"
)

// CatalogController serves the reference data used to build filter choices
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// GetCategories lists distinct categories
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch data"
// @Router /categories [get]
func (c *CatalogController) GetCategories(ctx *gin.Context) {
	categories, err := c.catalogService.ListCategories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CategoriesResponse{Categories: categories})
}

// GetDistricts lists distinct offering districts
// @Summary List districts
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.DistrictsResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch data"
// @Router /districts [get]
func (c *CatalogController) GetDistricts(ctx *gin.Context) {
	districts, err := c.catalogService.ListDistricts(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DistrictsResponse{Districts: districts})
}

// GetBranches lists distinct branch names
// @Summary List branches
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.BranchesResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch data"
// @Router /branches [get]
func (c *CatalogController) GetBranches(ctx *gin.Context) {
	branches, err := c.catalogService.ListBranches(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BranchesResponse{Branches: branches})
}

// GetAllColleges lists every college location row
// @Summary List college locations
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CollegesResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch data"
// @Router /all-colleges [get]
func (c *CatalogController) GetAllColleges(ctx *gin.Context) {
	colleges, err := c.catalogService.ListLocations(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CollegesResponse{Colleges: colleges})
}

// GetFilters returns location districts and college codes.
// A failed facet is returned empty with the error annotated; only a total failure is a 500.
// @Summary Combined filter facets
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.FiltersResponse "Facets, possibly with an error for a failed facet"
// @Failure 500 {object} dto.FiltersResponse "No facet could be resolved"
// @Router /filters [get]
func (c *CatalogController) GetFilters(ctx *gin.Context) {
	facets := c.catalogService.ResolveFilters(ctx.Request.Context())

	resp := dto.FiltersResponse{
		Districts:    facets.Districts,
		CollegeCodes: facets.CollegeCodes,
	}
	if len(facets.Errors) > 0 {
		messages := make([]string, 0, len(facets.Errors))
		for _, fe := range facets.Errors {
			messages = append(messages, "failed to load "+strings.ReplaceAll(fe.Facet, "_", " "))
		}
		resp.Error = strings.Join(messages, "; ")
	}

	status := http.StatusOK
	if facets.AllFailed() {
		status = http.StatusInternalServerError
	}
	ctx.JSON(status, resp)
}

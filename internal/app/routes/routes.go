package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/collegepredictor/internal/app/controllers"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Prediction   *controllers.PredictionController
	Catalog      *controllers.CatalogController
	Registration *controllers.RegistrationController
	Report       *controllers.ReportController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	// --- Eligibility ---
	router.POST("/predict", c.Prediction.Predict)

	// --- Reference data ---
	router.GET("/categories", c.Catalog.GetCategories)
	router.GET("/districts", c.Catalog.GetDistricts)
	router.GET("/branches", c.Catalog.GetBranches)
	router.GET("/all-colleges", c.Catalog.GetAllColleges)
	router.GET("/filters", c.Catalog.GetFilters)

	// --- Students ---
	router.POST("/register", c.Registration.Register)
	router.POST("/reports", c.Report.GenerateReport)
}

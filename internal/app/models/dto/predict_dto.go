package dto

import "github.com/yigit/collegepredictor/internal/app/models"

// PredictRequest is the eligibility lookup input.
// Branch and District are exact-match filters; an empty value matches only empty fields.
type PredictRequest struct {
	MinCutoff *float64 `json:"min_cutoff" binding:"required" example:"140"`
	MaxCutoff *float64 `json:"max_cutoff" binding:"required" example:"160"`
	Category  string   `json:"category" binding:"required" example:"OC"`
	Branch    string   `json:"branch" example:"CSE"`
	District  string   `json:"district" example:"Chennai"`
}

// PredictResponse lists the matching offerings
type PredictResponse struct {
	PredictedColleges []models.Offering `json:"predicted_colleges"`
}

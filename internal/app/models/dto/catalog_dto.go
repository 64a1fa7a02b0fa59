package dto

import "github.com/yigit/collegepredictor/internal/app/models"

// CategoriesResponse lists distinct communities
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// DistrictsResponse lists distinct offering districts
type DistrictsResponse struct {
	Districts []string `json:"districts"`
}

// BranchesResponse lists distinct branch names
type BranchesResponse struct {
	Branches []string `json:"branches"`
}

// CollegesResponse lists every college location row
type CollegesResponse struct {
	Colleges []models.CollegeLocation `json:"colleges"`
}

// FiltersResponse carries the location facets. Error is set when a facet could not be resolved.
type FiltersResponse struct {
	Districts    []string `json:"districts"`
	CollegeCodes []string `json:"college_codes"`
	Error        string   `json:"error,omitempty"`
}

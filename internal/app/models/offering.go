package models

// Offering is one admission cutoff record for a (college, branch, community) combination.
// Rows are compared by value: two offerings with equal fields are the same offering.
type Offering struct {
	CollegeName   string  `json:"college_name" db:"college_name" example:"X College"`
	BranchName    string  `json:"branch_name" db:"branch_name" example:"CSE"`
	BranchCode    string  `json:"branch_code" db:"branch_code" example:"CS01"`
	CollegeCode   string  `json:"college_code" db:"college_code" example:"1001"`
	Community     string  `json:"community" db:"community" example:"OC"`
	District      string  `json:"district" db:"district" example:"Chennai"`
	AverageCutoff float64 `json:"average_cutoff" db:"average_cutoff" example:"150.5"`
}

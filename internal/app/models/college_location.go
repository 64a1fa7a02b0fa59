package models

// CollegeLocation is the geographic record of one institution.
// It is loaded independently of Offering and is not joined to it.
type CollegeLocation struct {
	ID              int64  `json:"id" db:"id"`
	Code            string `json:"code" db:"code" example:"1001"`
	CollegeName     string `json:"college_name" db:"college_name" example:"X College"`
	CollegeDistrict string `json:"college_district" db:"college_district" example:"Chennai"`
}

package dto

// StudentDetails is the student section printed on a report
type StudentDetails struct {
	Name   string `json:"name" binding:"required" example:"Priya"`
	Mobile string `json:"mobile" example:"9876543210"`
	Email  string `json:"email" binding:"omitempty,email" example:"priya@example.com"`
	School string `json:"school" example:"GHSS Adyar"`
}

// DeliveryOptions selects the channels a report is sent over
type DeliveryOptions struct {
	WhatsApp bool `json:"whatsapp"`
	Email    bool `json:"email"`
}

// GenerateReportRequest asks for a PDF report of an eligibility lookup
type GenerateReportRequest struct {
	Student StudentDetails  `json:"student"`
	Query   PredictRequest  `json:"query"`
	Deliver DeliveryOptions `json:"deliver"`
}

package models

// Recipient is who a generated report gets delivered to
type Recipient struct {
	Name   string
	Mobile string
	Email  string
}

// Delivery records the outcome of sending a report over one channel
type Delivery struct {
	Channel   DeliveryChannel `json:"channel"`
	Status    DeliveryStatus  `json:"status"`
	Reference string          `json:"reference,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Report is a generated, stored prediction report
type Report struct {
	FileName     string     `json:"file_name"`
	URL          string     `json:"report_url"`
	CollegeCount int        `json:"college_count"`
	Deliveries   []Delivery `json:"deliveries"`
}

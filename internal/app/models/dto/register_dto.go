package dto

// RegisterRequest represents student registration data
type RegisterRequest struct {
	Name   string `json:"name" binding:"required" example:"Priya"`
	Age    int    `json:"age" binding:"required,min=1,max=120" example:"17"`
	Gender string `json:"gender" binding:"required" example:"F"`
	School string `json:"school" binding:"required" example:"GHSS Adyar"`
	DOB    string `json:"dob" binding:"required,datetime=2006-01-02" example:"2008-05-14"`
	Mobile string `json:"mobile" binding:"required" example:"9876543210"`
	Email  string `json:"email" binding:"required,email" example:"priya@example.com"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Message string `json:"message" example:"User registered successfully"`
	ID      int64  `json:"id" example:"1"`
}

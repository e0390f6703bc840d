package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	FullName string   `json:"full_name" binding:"required,min=1,max=100"`
	Gender   *string  `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Age      *int     `json:"age,omitempty" binding:"omitempty,min=1,max=150"`
	Height   *float64 `json:"height,omitempty" binding:"omitempty,min=50,max=300"`
	Weight   *float64 `json:"weight,omitempty" binding:"omitempty,min=10,max=500"`
}

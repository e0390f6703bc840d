package response_models

import "time"

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Gender    *string   `json:"gender,omitempty"`
	Age       *int      `json:"age,omitempty"`
	Height    *float64  `json:"height,omitempty"`
	Weight    *float64  `json:"weight,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

package dto

import "github.com/yukikurage/code-explainer-api/internal/models"

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Message  string `json:"message"`
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginResponse carries the access token issued at login
type LoginResponse struct {
	Message     string `json:"message"`
	UserID      uint64 `json:"user_id"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ToRegisterResponse converts a freshly created user to its response
func ToRegisterResponse(user models.User) RegisterResponse {
	return RegisterResponse{
		Message:  "user created",
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

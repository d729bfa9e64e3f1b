package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yamdb-api/models"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SignUpRequest starts or restarts the email confirmation flow
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"required,max=150"`
}

// SignUpResponse echoes the registered pair. The code itself only travels by email.
type SignUpResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest exchanges a confirmation code for an access token
type TokenRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmationCode" binding:"required,max=64"`
}

// TokenResponse represents the response after a successful exchange
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// NewSignUpResponse maps a user onto the sign-up response
func NewSignUpResponse(user *models.User) SignUpResponse {
	return SignUpResponse{Email: user.Email, Username: user.Username}
}

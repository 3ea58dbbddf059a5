package auth

import (
	"github.com/google/uuid"

	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
)

// LoginRequest carries the credentials posted to a login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest carries the expired access token plus the refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is the session material returned on login, register, and refresh.
type TokenPair struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	AccountID    uuid.UUID         `json:"account_id"`
	Role         enums.AccountRole `json:"role"`
}

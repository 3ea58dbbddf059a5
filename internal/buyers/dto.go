package buyers

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmreyes-dev/stitchbay-backend/pkg/db/models"
)

// RegisterRequest carries the fields a buyer submits when signing up.
type RegisterRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=120"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8,max=128"`
	Phone      string  `json:"phone" validate:"required,min=5,max=32"`
	WhatsApp   *string `json:"whatsapp,omitempty" validate:"omitempty,min=5,max=32"`
	Address    string  `json:"address" validate:"required,max=255"`
	Country    string  `json:"country" validate:"required,max=100"`
	City       string  `json:"city" validate:"required,max=100"`
	PostalCode string  `json:"postal_code" validate:"required,max=20"`
}

// UpdateProfileRequest carries the optional profile changes. Email and
// password are not updatable through this endpoint.
type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,min=5,max=32"`
	WhatsApp   *string `json:"whatsapp,omitempty" validate:"omitempty,min=5,max=32"`
	Address    *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Country    *string `json:"country,omitempty" validate:"omitempty,max=100"`
	City       *string `json:"city,omitempty" validate:"omitempty,max=100"`
	PostalCode *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
}

// Profile is the buyer representation returned to clients. The password
// hash never leaves the service layer.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	WhatsApp   *string   `json:"whatsapp,omitempty"`
	Address    string    `json:"address"`
	Country    string    `json:"country"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FromModel maps a buyer row into its public profile.
func FromModel(buyer *models.Buyer) *Profile {
	if buyer == nil {
		return nil
	}
	return &Profile{
		ID:         buyer.ID,
		Name:       buyer.Name,
		Email:      buyer.Email,
		Phone:      buyer.Phone,
		WhatsApp:   buyer.WhatsApp,
		Address:    buyer.Address,
		Country:    buyer.Country,
		City:       buyer.City,
		PostalCode: buyer.PostalCode,
		CreatedAt:  buyer.CreatedAt,
		UpdatedAt:  buyer.UpdatedAt,
	}
}

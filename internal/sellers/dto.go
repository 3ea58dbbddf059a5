package sellers

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmreyes-dev/stitchbay-backend/pkg/db/models"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
)

// RegisterRequest carries the fields a seller submits when signing up.
// Company fields are required when seller_type is company.
type RegisterRequest struct {
	Name           string           `json:"name" validate:"required,min=2,max=120"`
	Email          string           `json:"email" validate:"required,email"`
	Password       string           `json:"password" validate:"required,min=8,max=128"`
	Phone          string           `json:"phone" validate:"required,min=5,max=32"`
	WhatsApp       string           `json:"whatsapp" validate:"required,min=5,max=32"`
	Address        string           `json:"address" validate:"required,max=255"`
	Country        string           `json:"country" validate:"required,max=100"`
	City           string           `json:"city" validate:"required,max=100"`
	PostalCode     string           `json:"postal_code" validate:"required,max=20"`
	SellerType     enums.SellerType `json:"seller_type" validate:"required,oneof=solo company"`
	CompanyName    *string          `json:"company_name,omitempty" validate:"required_if=SellerType company,omitempty,min=2,max=160"`
	CompanyAddress *string          `json:"company_address,omitempty" validate:"required_if=SellerType company,omitempty,max=255"`
	CompanyPhone   *string          `json:"company_phone,omitempty" validate:"required_if=SellerType company,omitempty,min=5,max=32"`
}

// UpdateProfileRequest carries the optional profile changes. Email, password,
// and seller_type are not updatable through this endpoint.
type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,min=5,max=32"`
	WhatsApp       *string `json:"whatsapp,omitempty" validate:"omitempty,min=5,max=32"`
	Address        *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Country        *string `json:"country,omitempty" validate:"omitempty,max=100"`
	City           *string `json:"city,omitempty" validate:"omitempty,max=100"`
	PostalCode     *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	CompanyName    *string `json:"company_name,omitempty" validate:"omitempty,min=2,max=160"`
	CompanyAddress *string `json:"company_address,omitempty" validate:"omitempty,max=255"`
	CompanyPhone   *string `json:"company_phone,omitempty" validate:"omitempty,min=5,max=32"`
}

// Profile is the seller representation returned to clients.
type Profile struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	WhatsApp       string           `json:"whatsapp"`
	Address        string           `json:"address"`
	Country        string           `json:"country"`
	City           string           `json:"city"`
	PostalCode     string           `json:"postal_code"`
	SellerType     enums.SellerType `json:"seller_type"`
	CompanyName    *string          `json:"company_name,omitempty"`
	CompanyAddress *string          `json:"company_address,omitempty"`
	CompanyPhone   *string          `json:"company_phone,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// FromModel maps a seller row into its public profile.
func FromModel(seller *models.Seller) *Profile {
	if seller == nil {
		return nil
	}
	return &Profile{
		ID:             seller.ID,
		Name:           seller.Name,
		Email:          seller.Email,
		Phone:          seller.Phone,
		WhatsApp:       seller.WhatsApp,
		Address:        seller.Address,
		Country:        seller.Country,
		City:           seller.City,
		PostalCode:     seller.PostalCode,
		SellerType:     seller.SellerType,
		CompanyName:    seller.CompanyName,
		CompanyAddress: seller.CompanyAddress,
		CompanyPhone:   seller.CompanyPhone,
		CreatedAt:      seller.CreatedAt,
		UpdatedAt:      seller.UpdatedAt,
	}
}

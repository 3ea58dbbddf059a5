package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
)

// Seller represents a selling account, either a solo seller or a company.
// Company fields are populated only when SellerType is company.
type Seller struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string           `gorm:"column:name;not null"`
	Email          string           `gorm:"column:email;type:text;not null;uniqueIndex"`
	Phone          string           `gorm:"column:phone;not null"`
	WhatsApp       string           `gorm:"column:whatsapp;not null"`
	Address        string           `gorm:"column:address;not null"`
	Country        string           `gorm:"column:country;not null"`
	City           string           `gorm:"column:city;not null"`
	PostalCode     string           `gorm:"column:postal_code;not null"`
	SellerType     enums.SellerType `gorm:"column:seller_type;type:text;not null"`
	CompanyName    *string          `gorm:"column:company_name"`
	CompanyAddress *string          `gorm:"column:company_address"`
	CompanyPhone   *string          `gorm:"column:company_phone"`
	PasswordHash   string           `gorm:"column:password_hash;not null"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

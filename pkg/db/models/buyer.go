package models

import (
	"time"

	"github.com/google/uuid"
)

// Buyer represents a purchasing account.
type Buyer struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	Phone        string    `gorm:"column:phone;not null"`
	WhatsApp     *string   `gorm:"column:whatsapp"`
	Address      string    `gorm:"column:address;not null"`
	Country      string    `gorm:"column:country;not null"`
	City         string    `gorm:"column:city;not null"`
	PostalCode   string    `gorm:"column:postal_code;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a seller's listing. Images holds the ordered filenames
// of uploaded pictures as served from the uploads directory.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID    uuid.UUID       `gorm:"column:seller_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Material    string          `gorm:"column:material;not null"`
	Description string          `gorm:"column:description;not null"`
	Category    string          `gorm:"column:category;not null"`
	Images      pq.StringArray  `gorm:"column:images;type:text[]"`
	Seller      *Seller         `gorm:"foreignKey:SellerID;references:ID"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

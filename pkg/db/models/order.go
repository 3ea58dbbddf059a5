package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
)

// Order is the seller-scoped result of a checkout. A cart spanning several
// sellers produces one Order row per seller.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BuyerID   uuid.UUID         `gorm:"column:buyer_id;type:uuid;not null;index"`
	SellerID  uuid.UUID         `gorm:"column:seller_id;type:uuid;not null;index"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

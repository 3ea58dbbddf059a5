package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmreyes-dev/stitchbay-backend/internal/products"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
)

// PlaceRequest names the cart lines the buyer is checking out. Lines left
// out of the list stay in the cart untouched.
type PlaceRequest struct {
	CartLineIDs []uuid.UUID `json:"cart_line_ids" validate:"required,min=1"`
}

// ItemView is one order line joined with its product. Product is nil when
// the listing has been deleted after checkout.
type ItemView struct {
	ID         uuid.UUID        `json:"id"`
	CartItemID uuid.UUID        `json:"cart_item_id"`
	Product    *products.Detail `json:"product,omitempty"`
	Quantity   int              `json:"quantity"`
}

// View is the order representation returned to buyers and sellers.
type View struct {
	ID        uuid.UUID         `json:"id"`
	BuyerID   uuid.UUID         `json:"buyer_id"`
	SellerID  uuid.UUID         `json:"seller_id"`
	Status    enums.OrderStatus `json:"status"`
	Items     []ItemView        `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

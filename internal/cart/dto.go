package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmreyes-dev/stitchbay-backend/internal/products"
)

// AddRequest adds a product to the cart. Adding a product already in the
// cart increments the existing line instead of creating a second one.
type AddRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// UpdateRequest replaces the quantity on an existing cart line.
type UpdateRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// Line is one cart entry joined with its product.
type Line struct {
	ID        uuid.UUID        `json:"id"`
	Product   *products.Detail `json:"product"`
	Quantity  int              `json:"quantity"`
	LineTotal decimal.Decimal  `json:"line_total"`
}

// View is the full cart as returned to the buyer. Lines whose product has
// been deleted are excluded.
type View struct {
	Items []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

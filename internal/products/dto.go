package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmreyes-dev/stitchbay-backend/pkg/db/models"
)

// CreateRequest carries a new listing. Images holds the public URL paths of
// uploads already written to storage by the handler.
type CreateRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=160"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Material    string          `json:"material" validate:"required,max=120"`
	Description string          `json:"description" validate:"required,max=2000"`
	Category    string          `json:"category" validate:"required,max=80"`
	Images      []string        `json:"images" validate:"omitempty,dive,max=255"`
}

// UpdateRequest carries optional listing changes. A nil Images slice keeps
// the existing pictures; a non-nil slice replaces them.
type UpdateRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2,max=160"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Material    *string          `json:"material,omitempty" validate:"omitempty,max=120"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=80"`
	Images      []string         `json:"images,omitempty" validate:"omitempty,dive,max=255"`
}

// SellerRef is the compact seller summary embedded in catalog responses.
type SellerRef struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	City    string    `json:"city"`
	Country string    `json:"country"`
}

// Detail is the public product representation.
type Detail struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Material    string          `json:"material"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	Seller      *SellerRef      `json:"seller,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Page is one slice of the catalog plus the cursor for the next slice.
// NextCursor is empty on the last page.
type Page struct {
	Items      []*Detail `json:"items"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// FromModel maps a product row (and its preloaded seller) to the public shape.
func FromModel(product *models.Product) *Detail {
	if product == nil {
		return nil
	}
	detail := &Detail{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Material:    product.Material,
		Description: product.Description,
		Category:    product.Category,
		Images:      append([]string{}, product.Images...),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	if product.Seller != nil {
		detail.Seller = &SellerRef{
			ID:      product.Seller.ID,
			Name:    product.Seller.Name,
			City:    product.Seller.City,
			Country: product.Seller.Country,
		}
	}
	return detail
}

// FromModels maps a slice of product rows.
func FromModels(products []models.Product) []*Detail {
	out := make([]*Detail, 0, len(products))
	for i := range products {
		out = append(out, FromModel(&products[i]))
	}
	return out
}

package buyers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmreyes-dev/stitchbay-backend/pkg/db/models"
)

// Repository defines persistence operations for buyer accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, buyer *models.Buyer) (*models.Buyer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Buyer, error)
	FindByEmail(ctx context.Context, email string) (*models.Buyer, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

package products

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jmreyes-dev/stitchbay-backend/pkg/db/models"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sellers := `
CREATE TABLE IF NOT EXISTS sellers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL,
  whatsapp TEXT NOT NULL,
  address TEXT NOT NULL,
  country TEXT NOT NULL,
  city TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  seller_type TEXT NOT NULL,
  company_name TEXT,
  company_address TEXT,
  company_phone TEXT,
  password_hash TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  material TEXT NOT NULL,
  description TEXT NOT NULL,
  category TEXT NOT NULL,
  images TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(sellers).Error)
	require.NoError(t, conn.Exec(products).Error)
	return conn
}

func mustCreateTestSeller(t *testing.T, conn *gorm.DB) *models.Seller {
	t.Helper()
	seller := &models.Seller{
		ID:           uuid.New(),
		Name:         "Catalog Seller",
		Email:        fmt.Sprintf("seller_%s@example.com", uuid.NewString()),
		Phone:        "+31612345600",
		WhatsApp:     "+31612345601",
		Address:      "Atelier Lane 9",
		Country:      "Netherlands",
		City:         "Rotterdam",
		PostalCode:   "3011AA",
		SellerType:   enums.SellerTypeSolo,
		PasswordHash: "hash",
	}
	require.NoError(t, conn.Create(seller).Error)
	return seller
}

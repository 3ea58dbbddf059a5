package products

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jmreyes-dev/stitchbay-backend/pkg/db/models"
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/pagination"
)

func createRequest() CreateRequest {
	return CreateRequest{
		Name:        "Linen Shirt",
		Price:       decimal.RequireFromString("49.90"),
		Material:    "linen",
		Description: "Loose fit summer shirt",
		Category:    "shirts",
		Images:      []string{"/uploads/a.png", "/uploads/b.png"},
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	conn := setupProductsTestDB(t)
	seller := mustCreateTestSeller(t, conn)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), seller.ID, createRequest())
	require.NoError(t, err)
	require.Len(t, created.Images, 2)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Linen Shirt", got.Name)
	require.True(t, got.Price.Equal(decimal.RequireFromString("49.90")))
	require.NotNil(t, got.Seller)
	require.Equal(t, seller.ID, got.Seller.ID)
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	conn := setupProductsTestDB(t)
	seller := mustCreateTestSeller(t, conn)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	req := createRequest()
	req.Price = decimal.Zero

	_, err = svc.Create(context.Background(), seller.ID, req)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateKeepsImagesWhenNoneProvided(t *testing.T) {
	conn := setupProductsTestDB(t)
	seller := mustCreateTestSeller(t, conn)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), seller.ID, createRequest())
	require.NoError(t, err)

	name := "Linen Shirt v2"
	updated, err := svc.Update(context.Background(), seller.ID, created.ID, UpdateRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Linen Shirt v2", updated.Name)
	require.Equal(t, created.Images, updated.Images)
}

func TestUpdateReplacesImagesWhenProvided(t *testing.T) {
	conn := setupProductsTestDB(t)
	seller := mustCreateTestSeller(t, conn)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), seller.ID, createRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), seller.ID, created.ID, UpdateRequest{
		Images: []string{"/uploads/new.png"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"/uploads/new.png"}, updated.Images)
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	conn := setupProductsTestDB(t)
	owner := mustCreateTestSeller(t, conn)
	other := mustCreateTestSeller(t, conn)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), owner.ID, createRequest())
	require.NoError(t, err)

	name := "hijacked"
	_, err = svc.Update(context.Background(), other.ID, created.ID, UpdateRequest{Name: &name})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestDeleteByNonOwnerIsForbidden(t *testing.T) {
	conn := setupProductsTestDB(t)
	owner := mustCreateTestSeller(t, conn)
	other := mustCreateTestSeller(t, conn)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), owner.ID, createRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), other.ID, created.ID)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	// Listing still present for the owner.
	mine, err := svc.ListBySeller(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestDeleteByOwnerRemovesListing(t *testing.T) {
	conn := setupProductsTestDB(t)
	owner := mustCreateTestSeller(t, conn)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), owner.ID, createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), owner.ID, created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetUnknownProductIsNotFound(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New())
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListPaginatesCatalog(t *testing.T) {
	conn := setupProductsTestDB(t)
	seller := mustCreateTestSeller(t, conn)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	names := []string{"Oldest Coat", "Middle Coat", "Newest Coat"}
	for i, name := range names {
		product := &models.Product{
			ID:          uuid.New(),
			SellerID:    seller.ID,
			Name:        name,
			Price:       decimal.RequireFromString("120.00"),
			Material:    "wool",
			Description: "Winter coat",
			Category:    "coats",
			Images:      pq.StringArray{},
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, conn.Create(product).Error)
	}

	first, err := svc.List(context.Background(), pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)
	require.Equal(t, "Newest Coat", first.Items[0].Name)
	require.Equal(t, "Middle Coat", first.Items[1].Name)

	second, err := svc.List(context.Background(), pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	require.Empty(t, second.NextCursor)
	require.Equal(t, "Oldest Coat", second.Items[0].Name)
}

func TestListRejectsMalformedCursor(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	_, err = svc.List(context.Background(), pagination.Params{Cursor: "not-a-cursor"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

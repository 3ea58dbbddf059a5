package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jmreyes-dev/stitchbay-backend/internal/products"
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
)

func TestAddMergesExistingLine(t *testing.T) {
	conn := setupCartTestDB(t)
	product := mustCreateTestProduct(t, conn, uuid.New(), "20.00")
	svc, err := NewService(NewRepository(conn), products.NewRepository(conn))
	require.NoError(t, err)

	buyerID := uuid.New()
	view, err := svc.Add(context.Background(), buyerID, AddRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, 2, view.Items[0].Quantity)

	view, err = svc.Add(context.Background(), buyerID, AddRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, 5, view.Items[0].Quantity)
	require.True(t, view.Total.Equal(decimal.RequireFromString("100.00")))
}

func TestAddUnknownProductIsNotFound(t *testing.T) {
	conn := setupCartTestDB(t)
	svc, err := NewService(NewRepository(conn), products.NewRepository(conn))
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), uuid.New(), AddRequest{ProductID: uuid.New(), Quantity: 1})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAddRejectsZeroQuantity(t *testing.T) {
	conn := setupCartTestDB(t)
	product := mustCreateTestProduct(t, conn, uuid.New(), "20.00")
	svc, err := NewService(NewRepository(conn), products.NewRepository(conn))
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), uuid.New(), AddRequest{ProductID: product.ID, Quantity: 0})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListFiltersOrphanLines(t *testing.T) {
	conn := setupCartTestDB(t)
	kept := mustCreateTestProduct(t, conn, uuid.New(), "10.00")
	doomed := mustCreateTestProduct(t, conn, uuid.New(), "15.00")
	productsRepo := products.NewRepository(conn)
	svc, err := NewService(NewRepository(conn), productsRepo)
	require.NoError(t, err)

	buyerID := uuid.New()
	_, err = svc.Add(context.Background(), buyerID, AddRequest{ProductID: kept.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), buyerID, AddRequest{ProductID: doomed.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, productsRepo.Delete(context.Background(), doomed.ID))

	view, err := svc.List(context.Background(), buyerID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, kept.ID, view.Items[0].Product.ID)

	// The orphan row stays behind in storage.
	rows, err := NewRepository(conn).ListByBuyer(context.Background(), buyerID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestRemoveByNonOwnerIsForbidden(t *testing.T) {
	conn := setupCartTestDB(t)
	product := mustCreateTestProduct(t, conn, uuid.New(), "10.00")
	svc, err := NewService(NewRepository(conn), products.NewRepository(conn))
	require.NoError(t, err)

	owner := uuid.New()
	view, err := svc.Add(context.Background(), owner, AddRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.Remove(context.Background(), uuid.New(), view.Items[0].ID)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestRemoveDeletesLine(t *testing.T) {
	conn := setupCartTestDB(t)
	product := mustCreateTestProduct(t, conn, uuid.New(), "10.00")
	svc, err := NewService(NewRepository(conn), products.NewRepository(conn))
	require.NoError(t, err)

	buyerID := uuid.New()
	view, err := svc.Add(context.Background(), buyerID, AddRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	view, err = svc.Remove(context.Background(), buyerID, view.Items[0].ID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
	require.True(t, view.Total.IsZero())
}

func TestRemoveAbsentLineIsNoOp(t *testing.T) {
	conn := setupCartTestDB(t)
	product := mustCreateTestProduct(t, conn, uuid.New(), "10.00")
	svc, err := NewService(NewRepository(conn), products.NewRepository(conn))
	require.NoError(t, err)

	buyerID := uuid.New()
	view, err := svc.Add(context.Background(), buyerID, AddRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	lineID := view.Items[0].ID

	view, err = svc.Remove(context.Background(), buyerID, lineID)
	require.NoError(t, err)
	require.Empty(t, view.Items)

	// Removing the same line again still succeeds with the current view.
	view, err = svc.Remove(context.Background(), buyerID, lineID)
	require.NoError(t, err)
	require.Empty(t, view.Items)

	// Same for a line that never existed.
	view, err = svc.Remove(context.Background(), buyerID, uuid.New())
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestUpdateReplacesQuantity(t *testing.T) {
	conn := setupCartTestDB(t)
	product := mustCreateTestProduct(t, conn, uuid.New(), "20.00")
	svc, err := NewService(NewRepository(conn), products.NewRepository(conn))
	require.NoError(t, err)

	buyerID := uuid.New()
	view, err := svc.Add(context.Background(), buyerID, AddRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	view, err = svc.Update(context.Background(), buyerID, view.Items[0].ID, UpdateRequest{Quantity: 7})
	require.NoError(t, err)
	require.Equal(t, 7, view.Items[0].Quantity)
	require.True(t, view.Total.Equal(decimal.RequireFromString("140.00")))
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	conn := setupCartTestDB(t)
	product := mustCreateTestProduct(t, conn, uuid.New(), "20.00")
	svc, err := NewService(NewRepository(conn), products.NewRepository(conn))
	require.NoError(t, err)

	owner := uuid.New()
	view, err := svc.Add(context.Background(), owner, AddRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), uuid.New(), view.Items[0].ID, UpdateRequest{Quantity: 3})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

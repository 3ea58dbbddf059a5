package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jmreyes-dev/stitchbay-backend/internal/cart"
	"github.com/jmreyes-dev/stitchbay-backend/internal/products"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/db"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
)

func newOrdersService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(conn),
		cart.NewRepository(conn),
		products.NewRepository(conn),
		db.FromConn(conn),
	)
	require.NoError(t, err)
	return svc
}

func TestPlaceSplitsCartBySeller(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	sellerA := uuid.New()
	sellerB := uuid.New()
	shirt := mustCreateTestProduct(t, conn, sellerA, "Linen Shirt", "25.00")
	jeans := mustCreateTestProduct(t, conn, sellerA, "Slim Jeans", "40.00")
	coat := mustCreateTestProduct(t, conn, sellerB, "Wool Coat", "120.00")

	buyerID := uuid.New()
	shirtLine := mustAddCartLine(t, conn, buyerID, shirt.ID, 2)
	jeansLine := mustAddCartLine(t, conn, buyerID, jeans.ID, 1)
	coatLine := mustAddCartLine(t, conn, buyerID, coat.ID, 1)

	views, err := svc.Place(context.Background(), buyerID, PlaceRequest{
		CartLineIDs: []uuid.UUID{shirtLine.ID, jeansLine.ID, coatLine.ID},
	})
	require.NoError(t, err)
	require.Len(t, views, 2)

	totals := map[uuid.UUID]decimal.Decimal{}
	for _, view := range views {
		require.Equal(t, buyerID, view.BuyerID)
		require.Equal(t, enums.OrderStatusPending, view.Status)
		totals[view.SellerID] = view.Total
	}
	require.True(t, totals[sellerA].Equal(decimal.RequireFromString("90.00")))
	require.True(t, totals[sellerB].Equal(decimal.RequireFromString("120.00")))

	// Purchased lines are gone from the cart.
	rows, err := cart.NewRepository(conn).ListByBuyer(context.Background(), buyerID)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestPlaceLeavesUnselectedLinesInCart(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	sellerA := uuid.New()
	sellerB := uuid.New()
	tote := mustCreateTestProduct(t, conn, sellerA, "Canvas Tote", "18.00")
	coat := mustCreateTestProduct(t, conn, sellerB, "Wool Coat", "120.00")

	buyerID := uuid.New()
	wanted := mustAddCartLine(t, conn, buyerID, tote.ID, 1)
	saved := mustAddCartLine(t, conn, buyerID, coat.ID, 1)

	views, err := svc.Place(context.Background(), buyerID, PlaceRequest{
		CartLineIDs: []uuid.UUID{wanted.ID},
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, sellerA, views[0].SellerID)

	// The line the buyer did not select survives checkout untouched.
	rows, err := cart.NewRepository(conn).ListByBuyer(context.Background(), buyerID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, saved.ID, rows[0].ID)
}

func TestPlaceRejectsDeletedProductInSelection(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	sellerID := uuid.New()
	kept := mustCreateTestProduct(t, conn, sellerID, "Canvas Tote", "18.00")
	doomed := mustCreateTestProduct(t, conn, sellerID, "Old Cap", "9.00")

	buyerID := uuid.New()
	keptLine := mustAddCartLine(t, conn, buyerID, kept.ID, 1)
	orphan := mustAddCartLine(t, conn, buyerID, doomed.ID, 1)
	require.NoError(t, products.NewRepository(conn).Delete(context.Background(), doomed.ID))

	_, err := svc.Place(context.Background(), buyerID, PlaceRequest{
		CartLineIDs: []uuid.UUID{keptLine.ID, orphan.ID},
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	// Nothing was purchased; both lines are still in the cart.
	rows, err := cart.NewRepository(conn).ListByBuyer(context.Background(), buyerID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestPlaceRejectsForeignCartLine(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	sellerID := uuid.New()
	product := mustCreateTestProduct(t, conn, sellerID, "Linen Shirt", "25.00")

	otherBuyer := uuid.New()
	foreign := mustAddCartLine(t, conn, otherBuyer, product.ID, 1)

	_, err := svc.Place(context.Background(), uuid.New(), PlaceRequest{
		CartLineIDs: []uuid.UUID{foreign.ID},
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	// The other buyer's line is untouched.
	rows, err := cart.NewRepository(conn).ListByBuyer(context.Background(), otherBuyer)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestPlaceEmptySelectionIsValidationError(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	_, err := svc.Place(context.Background(), uuid.New(), PlaceRequest{})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestConfirmByNonOwnerIsForbidden(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	sellerID := uuid.New()
	product := mustCreateTestProduct(t, conn, sellerID, "Linen Shirt", "25.00")
	buyerID := uuid.New()
	line := mustAddCartLine(t, conn, buyerID, product.ID, 1)

	views, err := svc.Place(context.Background(), buyerID, PlaceRequest{CartLineIDs: []uuid.UUID{line.ID}})
	require.NoError(t, err)
	require.Len(t, views, 1)

	_, err = svc.Confirm(context.Background(), uuid.New(), views[0].ID)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestConfirmIsIdempotent(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	sellerID := uuid.New()
	product := mustCreateTestProduct(t, conn, sellerID, "Linen Shirt", "25.00")
	buyerID := uuid.New()
	line := mustAddCartLine(t, conn, buyerID, product.ID, 1)

	views, err := svc.Place(context.Background(), buyerID, PlaceRequest{CartLineIDs: []uuid.UUID{line.ID}})
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), sellerID, views[0].ID)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusConfirmed, confirmed.Status)

	again, err := svc.Confirm(context.Background(), sellerID, views[0].ID)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusConfirmed, again.Status)
}

func TestConfirmUnknownOrderIsNotFound(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	_, err := svc.Confirm(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetEnforcesOwnership(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	sellerID := uuid.New()
	product := mustCreateTestProduct(t, conn, sellerID, "Linen Shirt", "25.00")
	buyerID := uuid.New()
	line := mustAddCartLine(t, conn, buyerID, product.ID, 1)

	views, err := svc.Place(context.Background(), buyerID, PlaceRequest{CartLineIDs: []uuid.UUID{line.ID}})
	require.NoError(t, err)
	orderID := views[0].ID

	view, err := svc.Get(context.Background(), orderID, buyerID, enums.AccountRoleBuyer)
	require.NoError(t, err)
	require.Equal(t, orderID, view.ID)

	view, err = svc.Get(context.Background(), orderID, sellerID, enums.AccountRoleSeller)
	require.NoError(t, err)
	require.Equal(t, orderID, view.ID)

	_, err = svc.Get(context.Background(), orderID, uuid.New(), enums.AccountRoleBuyer)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	_, err = svc.Get(context.Background(), orderID, uuid.New(), enums.AccountRoleSeller)
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestListForBuyerAndSeller(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	sellerA := uuid.New()
	sellerB := uuid.New()
	shirt := mustCreateTestProduct(t, conn, sellerA, "Linen Shirt", "25.00")
	coat := mustCreateTestProduct(t, conn, sellerB, "Wool Coat", "120.00")

	buyerID := uuid.New()
	shirtLine := mustAddCartLine(t, conn, buyerID, shirt.ID, 1)
	coatLine := mustAddCartLine(t, conn, buyerID, coat.ID, 1)

	_, err := svc.Place(context.Background(), buyerID, PlaceRequest{
		CartLineIDs: []uuid.UUID{shirtLine.ID, coatLine.ID},
	})
	require.NoError(t, err)

	buyerOrders, err := svc.ListForBuyer(context.Background(), buyerID)
	require.NoError(t, err)
	require.Len(t, buyerOrders, 2)

	sellerOrders, err := svc.ListForSeller(context.Background(), sellerA)
	require.NoError(t, err)
	require.Len(t, sellerOrders, 1)
	require.Equal(t, sellerA, sellerOrders[0].SellerID)
}

func TestGetKeepsItemsForDeletedProducts(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)

	sellerID := uuid.New()
	product := mustCreateTestProduct(t, conn, sellerID, "Linen Shirt", "25.00")
	buyerID := uuid.New()
	line := mustAddCartLine(t, conn, buyerID, product.ID, 2)

	views, err := svc.Place(context.Background(), buyerID, PlaceRequest{CartLineIDs: []uuid.UUID{line.ID}})
	require.NoError(t, err)

	require.NoError(t, products.NewRepository(conn).Delete(context.Background(), product.ID))

	view, err := svc.Get(context.Background(), views[0].ID, buyerID, enums.AccountRoleBuyer)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Nil(t, view.Items[0].Product)
	require.True(t, view.Total.IsZero())
}

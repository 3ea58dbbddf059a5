package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jmreyes-dev/stitchbay-backend/internal/cart"
	"github.com/jmreyes-dev/stitchbay-backend/internal/products"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/db/models"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines checkout and order lifecycle operations.
type Service interface {
	Place(ctx context.Context, buyerID uuid.UUID, req PlaceRequest) ([]*View, error)
	ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*View, error)
	ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]*View, error)
	Get(ctx context.Context, orderID, actorID uuid.UUID, role enums.AccountRole) (*View, error)
	Confirm(ctx context.Context, sellerID, orderID uuid.UUID) (*View, error)
}

type service struct {
	repo     Repository
	cart     cart.Repository
	products products.Repository
	tx       txRunner
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, cartRepo cart.Repository, productsRepo products.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, cart: cartRepo, products: productsRepo, tx: tx}, nil
}

// Place turns the selected cart lines into orders, one per seller, inside a
// single transaction. Unselected lines stay in the cart; a selected line
// whose product has been deleted fails the whole checkout.
func (s *service) Place(ctx context.Context, buyerID uuid.UUID, req PlaceRequest) ([]*View, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer identity missing")
	}
	if len(req.CartLineIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no cart lines selected")
	}

	items, err := s.cart.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart lines")
	}
	byLineID := make(map[uuid.UUID]models.CartItem, len(items))
	for _, item := range items {
		byLineID[item.ID] = item
	}

	// Selection may only name the buyer's own lines. A foreign line is
	// indistinguishable from an absent one here, which keeps line ids
	// unguessable across buyers.
	selected := make([]models.CartItem, 0, len(req.CartLineIDs))
	seen := make(map[uuid.UUID]bool, len(req.CartLineIDs))
	for _, lineID := range req.CartLineIDs {
		if lineID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart line id required")
		}
		if seen[lineID] {
			continue
		}
		seen[lineID] = true
		item, ok := byLineID[lineID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart line not in cart")
		}
		selected = append(selected, item)
	}

	ids := make([]uuid.UUID, 0, len(selected))
	for _, item := range selected {
		ids = append(ids, item.ProductID)
	}
	rows, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
	}
	byID := make(map[uuid.UUID]*models.Product, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	type group struct {
		sellerID uuid.UUID
		lines    []models.CartItem
	}
	groups := map[uuid.UUID]*group{}
	for _, item := range selected {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selected product is no longer available")
		}
		g, ok := groups[product.SellerID]
		if !ok {
			g = &group{sellerID: product.SellerID}
			groups[product.SellerID] = g
		}
		g.lines = append(g.lines, item)
	}

	// Stable order creation keeps multi-seller checkouts deterministic.
	sellerIDs := make([]uuid.UUID, 0, len(groups))
	for id := range groups {
		sellerIDs = append(sellerIDs, id)
	}
	sort.Slice(sellerIDs, func(i, j int) bool {
		return sellerIDs[i].String() < sellerIDs[j].String()
	})

	var created []uuid.UUID
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cartRepo := s.cart.WithTx(tx)

		var purchased []uuid.UUID
		for _, sellerID := range sellerIDs {
			g := groups[sellerID]
			order := &models.Order{
				ID:       uuid.New(),
				BuyerID:  buyerID,
				SellerID: sellerID,
				Status:   enums.OrderStatusPending,
			}
			if _, err := repo.CreateOrder(ctx, order); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
			}

			orderItems := make([]models.OrderItem, 0, len(g.lines))
			for _, line := range g.lines {
				orderItems = append(orderItems, models.OrderItem{
					ID:         uuid.New(),
					OrderID:    order.ID,
					CartItemID: line.ID,
					ProductID:  line.ProductID,
					Quantity:   line.Quantity,
				})
				purchased = append(purchased, line.ID)
			}
			if err := repo.CreateOrderItems(ctx, orderItems); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
			}
			created = append(created, order.ID)
		}

		if err := cartRepo.DeleteByIDs(ctx, purchased); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear purchased cart lines")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(created))
	for _, orderID := range created {
		view, err := s.loadView(ctx, orderID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *service) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*View, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer identity missing")
	}
	rows, err := s.repo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list buyer orders")
	}
	return s.buildViews(ctx, rows)
}

func (s *service) ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]*View, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}
	rows, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list seller orders")
	}
	return s.buildViews(ctx, rows)
}

func (s *service) Get(ctx context.Context, orderID, actorID uuid.UUID, role enums.AccountRole) (*View, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "identity missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	switch role {
	case enums.AccountRoleBuyer:
		if order.BuyerID != actorID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to buyer")
		}
	case enums.AccountRoleSeller:
		if order.SellerID != actorID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to seller")
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown role")
	}

	return s.toView(ctx, order)
}

// Confirm transitions a pending order to confirmed. Confirming an already
// confirmed order is a no-op so retried requests stay safe.
func (s *service) Confirm(ctx context.Context, sellerID, orderID uuid.UUID) (*View, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.SellerID != sellerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to seller")
		}
		if order.Status == enums.OrderStatusConfirmed {
			return nil
		}
		if err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusConfirmed); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadView(ctx, orderID)
}

func (s *service) loadView(ctx context.Context, orderID uuid.UUID) (*View, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return s.toView(ctx, order)
}

func (s *service) buildViews(ctx context.Context, rows []models.Order) ([]*View, error) {
	views := make([]*View, 0, len(rows))
	for i := range rows {
		view, err := s.toView(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *service) toView(ctx context.Context, order *models.Order) (*View, error) {
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	rows, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order products")
	}
	byID := make(map[uuid.UUID]*models.Product, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	items := make([]ItemView, 0, len(order.Items))
	total := decimal.Zero
	for _, item := range order.Items {
		view := ItemView{
			ID:         item.ID,
			CartItemID: item.CartItemID,
			Quantity:   item.Quantity,
		}
		if product, ok := byID[item.ProductID]; ok {
			view.Product = products.FromModel(product)
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		items = append(items, view)
	}

	return &View{
		ID:        order.ID,
		BuyerID:   order.BuyerID,
		SellerID:  order.SellerID,
		Status:    order.Status,
		Items:     items,
		Total:     total,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}, nil
}

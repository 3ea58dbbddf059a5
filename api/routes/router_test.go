package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jmreyes-dev/stitchbay-backend/internal/auth"
	"github.com/jmreyes-dev/stitchbay-backend/internal/buyers"
	"github.com/jmreyes-dev/stitchbay-backend/internal/cart"
	ordersvc "github.com/jmreyes-dev/stitchbay-backend/internal/orders"
	productsvc "github.com/jmreyes-dev/stitchbay-backend/internal/products"
	"github.com/jmreyes-dev/stitchbay-backend/internal/sellers"
	pkgAuth "github.com/jmreyes-dev/stitchbay-backend/pkg/auth"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/auth/session"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/config"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/logger"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, role enums.AccountRole, req auth.LoginRequest) (*auth.TokenPair, error) {
	return &auth.TokenPair{}, nil
}

func (stubAuthService) IssueTokens(ctx context.Context, accountID uuid.UUID, role enums.AccountRole) (*auth.TokenPair, error) {
	return &auth.TokenPair{}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.TokenPair, error) {
	return &auth.TokenPair{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubBuyersService struct{}

func (stubBuyersService) Register(ctx context.Context, req buyers.RegisterRequest) (*buyers.Profile, error) {
	return &buyers.Profile{ID: uuid.New()}, nil
}

func (stubBuyersService) GetProfile(ctx context.Context, buyerID uuid.UUID) (*buyers.Profile, error) {
	return &buyers.Profile{ID: buyerID}, nil
}

func (stubBuyersService) UpdateProfile(ctx context.Context, buyerID uuid.UUID, req buyers.UpdateProfileRequest) (*buyers.Profile, error) {
	return &buyers.Profile{ID: buyerID}, nil
}

func (stubBuyersService) DeleteAccount(ctx context.Context, buyerID uuid.UUID) error {
	return nil
}

type stubSellersService struct{}

func (stubSellersService) Register(ctx context.Context, req sellers.RegisterRequest) (*sellers.Profile, error) {
	return &sellers.Profile{ID: uuid.New()}, nil
}

func (stubSellersService) GetProfile(ctx context.Context, sellerID uuid.UUID) (*sellers.Profile, error) {
	return &sellers.Profile{ID: sellerID}, nil
}

func (stubSellersService) UpdateProfile(ctx context.Context, sellerID uuid.UUID, req sellers.UpdateProfileRequest) (*sellers.Profile, error) {
	return &sellers.Profile{ID: sellerID}, nil
}

func (stubSellersService) DeleteAccount(ctx context.Context, sellerID uuid.UUID) error {
	return nil
}

type stubProductsService struct{}

func (stubProductsService) List(ctx context.Context, params pagination.Params) (*productsvc.Page, error) {
	return &productsvc.Page{Items: []*productsvc.Detail{}}, nil
}

func (stubProductsService) Get(ctx context.Context, productID uuid.UUID) (*productsvc.Detail, error) {
	return &productsvc.Detail{ID: productID}, nil
}

func (stubProductsService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*productsvc.Detail, error) {
	return []*productsvc.Detail{}, nil
}

func (stubProductsService) Create(ctx context.Context, sellerID uuid.UUID, req productsvc.CreateRequest) (*productsvc.Detail, error) {
	return &productsvc.Detail{ID: uuid.New()}, nil
}

func (stubProductsService) Update(ctx context.Context, sellerID, productID uuid.UUID, req productsvc.UpdateRequest) (*productsvc.Detail, error) {
	return &productsvc.Detail{ID: productID}, nil
}

func (stubProductsService) Delete(ctx context.Context, sellerID, productID uuid.UUID) error {
	return nil
}

type stubCartService struct{}

func (stubCartService) Add(ctx context.Context, buyerID uuid.UUID, req cart.AddRequest) (*cart.View, error) {
	return &cart.View{}, nil
}

func (stubCartService) List(ctx context.Context, buyerID uuid.UUID) (*cart.View, error) {
	return &cart.View{}, nil
}

func (stubCartService) Update(ctx context.Context, buyerID, itemID uuid.UUID, req cart.UpdateRequest) (*cart.View, error) {
	return &cart.View{}, nil
}

func (stubCartService) Remove(ctx context.Context, buyerID, itemID uuid.UUID) (*cart.View, error) {
	return &cart.View{}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) Place(ctx context.Context, buyerID uuid.UUID, req ordersvc.PlaceRequest) ([]*ordersvc.View, error) {
	return []*ordersvc.View{}, nil
}

func (stubOrdersService) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*ordersvc.View, error) {
	return []*ordersvc.View{}, nil
}

func (stubOrdersService) ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]*ordersvc.View, error) {
	return []*ordersvc.View{}, nil
}

func (stubOrdersService) Get(ctx context.Context, orderID, actorID uuid.UUID, role enums.AccountRole) (*ordersvc.View, error) {
	return &ordersvc.View{ID: orderID}, nil
}

func (stubOrdersService) Confirm(ctx context.Context, sellerID, orderID uuid.UUID) (*ordersvc.View, error) {
	return &ordersvc.View{ID: orderID}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:         cfg,
		Logger:         logg,
		DBPinger:       stubPinger{},
		SessionChecker: stubSessionChecker{},
		AuthService:    stubAuthService{},
		BuyersService:  stubBuyersService{},
		SellersService: stubSellersService{},
		ProductService: stubProductsService{},
		CartService:    stubCartService{},
		OrdersService:  stubOrdersService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.AccountRole, accountID uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		AccountID: accountID,
		Role:      role,
		JTI:       session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestCatalogIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public catalog got %d", resp.Code)
	}
}

func TestLoginReturnsProfileWithTokens(t *testing.T) {
	router := newTestRouter(testConfig())

	body := `{"email":"buyer@example.com","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/buyers/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for login got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Profile map[string]any `json:"profile"`
			Tokens  map[string]any `json:"tokens"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if envelope.Data.Profile == nil {
		t.Fatal("expected login response to carry the account profile")
	}
	if envelope.Data.Tokens == nil {
		t.Fatal("expected login response to carry the token pair")
	}
	for key := range envelope.Data.Profile {
		if strings.Contains(strings.ToLower(key), "password") {
			t.Fatalf("profile leaks credential field %q", key)
		}
	}
}

func TestCartRejectsMissingToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/cart/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestCartRequiresBuyerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	buyerID := uuid.New()

	asSeller := httptest.NewRequest(http.MethodGet, "/api/cart/"+buyerID.String(), nil)
	asSeller.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleSeller, buyerID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, asSeller)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for seller on cart got %d", resp.Code)
	}

	asBuyer := httptest.NewRequest(http.MethodGet, "/api/cart/"+buyerID.String(), nil)
	asBuyer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleBuyer, buyerID))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asBuyer)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for buyer on own cart got %d", resp.Code)
	}
}

func TestProductWritesRequireSellerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	productID := uuid.NewString()

	asBuyer := httptest.NewRequest(http.MethodDelete, "/api/products/"+productID, nil)
	asBuyer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleBuyer, uuid.New()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, asBuyer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for buyer deleting product got %d", resp.Code)
	}

	asSeller := httptest.NewRequest(http.MethodDelete, "/api/products/"+productID, nil)
	asSeller.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleSeller, uuid.New()))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asSeller)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for seller deleting product got %d", resp.Code)
	}
}

func TestProfileRejectsForeignAccountID(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/buyers/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleBuyer, uuid.New()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for mismatched buyer id got %d", resp.Code)
	}
}

func TestOrderConfirmRequiresSellerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	orderID := uuid.NewString()

	asBuyer := httptest.NewRequest(http.MethodPut, "/api/orders/"+orderID+"/confirm", nil)
	asBuyer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleBuyer, uuid.New()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, asBuyer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for buyer confirming order got %d", resp.Code)
	}

	asSeller := httptest.NewRequest(http.MethodPut, "/api/orders/"+orderID+"/confirm", nil)
	asSeller.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleSeller, uuid.New()))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asSeller)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for seller confirming order got %d", resp.Code)
	}
}

func TestSellerOrdersScopedToSelf(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	sellerID := uuid.New()

	foreign := httptest.NewRequest(http.MethodGet, "/api/orders/seller/"+uuid.NewString(), nil)
	foreign.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleSeller, sellerID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, foreign)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign seller orders got %d", resp.Code)
	}

	own := httptest.NewRequest(http.MethodGet, "/api/orders/seller/"+sellerID.String(), nil)
	own.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleSeller, sellerID))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, own)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for own seller orders got %d", resp.Code)
	}
}

package routes

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/go-chi/chi/v5"

	"github.com/jmreyes-dev/stitchbay-backend/api/controllers"
	"github.com/jmreyes-dev/stitchbay-backend/api/middleware"
	"github.com/jmreyes-dev/stitchbay-backend/internal/auth"
	"github.com/jmreyes-dev/stitchbay-backend/internal/buyers"
	"github.com/jmreyes-dev/stitchbay-backend/internal/cart"
	"github.com/jmreyes-dev/stitchbay-backend/internal/orders"
	"github.com/jmreyes-dev/stitchbay-backend/internal/products"
	"github.com/jmreyes-dev/stitchbay-backend/internal/sellers"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/auth/session"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/config"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/db"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/logger"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/metrics"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/redis"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/storage/local"
)

// Deps bundles everything the router mounts. Redis-backed middleware is
// skipped when RedisClient is nil, which test routers rely on.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       db.Pinger
	RedisClient    *redis.Client
	SessionChecker session.AccessSessionChecker
	AuthService    auth.Service
	BuyersService  buyers.Service
	SellersService sellers.Service
	ProductService products.Service
	CartService    cart.Service
	OrdersService  orders.Service
	Uploads        *local.Store
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	loginLimiter := middleware.AuthRateLimit(loginPolicy, limiterStore(deps.RedisClient), logg)
	registerLimiter := middleware.AuthRateLimit(registerPolicy, limiterStore(deps.RedisClient), logg)
	idempotency := middleware.Idempotency(idempotencyStore(deps.RedisClient), logg)
	authed := middleware.Auth(cfg.JWT, deps.SessionChecker, logg)
	requireBuyer := middleware.RequireRole(enums.AccountRoleBuyer, logg)
	requireSeller := middleware.RequireRole(enums.AccountRoleSeller, logg)

	buyerProfile := controllers.ProfileLoader(func(ctx context.Context, accountID uuid.UUID) (any, error) {
		return deps.BuyersService.GetProfile(ctx, accountID)
	})
	sellerProfile := controllers.ProfileLoader(func(ctx context.Context, accountID uuid.UUID) (any, error) {
		return deps.SellersService.GetProfile(ctx, accountID)
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, pinger(deps.RedisClient)))
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	if deps.Uploads != nil {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.Uploads.Dir())))
		r.Handle("/uploads/*", fileServer)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
			r.With(authed).Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
		})

		r.Route("/buyers", func(r chi.Router) {
			r.With(registerLimiter, idempotency).Post("/register", controllers.BuyerRegister(deps.BuyersService, deps.AuthService, logg))
			r.With(loginLimiter).Post("/login", controllers.Login(deps.AuthService, enums.AccountRoleBuyer, buyerProfile, logg))

			r.Group(func(r chi.Router) {
				r.Use(authed, requireBuyer)
				r.Get("/{buyerId}", controllers.BuyerProfile(deps.BuyersService, logg))
				r.Put("/{buyerId}", controllers.BuyerUpdate(deps.BuyersService, logg))
				r.Delete("/{buyerId}", controllers.BuyerDelete(deps.BuyersService, deps.AuthService, logg))
			})
		})

		r.Route("/sellers", func(r chi.Router) {
			r.With(registerLimiter, idempotency).Post("/register", controllers.SellerRegister(deps.SellersService, deps.AuthService, logg))
			r.With(loginLimiter).Post("/login", controllers.Login(deps.AuthService, enums.AccountRoleSeller, sellerProfile, logg))

			r.Group(func(r chi.Router) {
				r.Use(authed, requireSeller)
				r.Get("/{sellerId}", controllers.SellerProfile(deps.SellersService, logg))
				r.Put("/update/{sellerId}", controllers.SellerUpdate(deps.SellersService, logg))
				r.Delete("/delete/{sellerId}", controllers.SellerDelete(deps.SellersService, deps.AuthService, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.ProductService, logg))
			r.Get("/{id}", controllers.ProductDetail(deps.ProductService, logg))

			r.Group(func(r chi.Router) {
				r.Use(authed, requireSeller)
				r.Post("/", controllers.ProductCreate(deps.ProductService, deps.Uploads, logg))
				r.Put("/{id}", controllers.ProductUpdate(deps.ProductService, deps.Uploads, logg))
				r.Delete("/{id}", controllers.ProductDelete(deps.ProductService, logg))
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(authed, requireBuyer)
			r.Post("/", controllers.CartAdd(deps.CartService, logg))
			r.Get("/{buyerId}", controllers.CartFetch(deps.CartService, logg))
			r.Put("/{id}", controllers.CartUpdate(deps.CartService, logg))
			r.Delete("/{id}", controllers.CartRemove(deps.CartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authed)
			r.With(requireBuyer, idempotency).Post("/", controllers.OrderPlace(deps.OrdersService, logg))
			r.With(requireBuyer).Get("/buyer/{buyerId}", controllers.OrdersForBuyer(deps.OrdersService, logg))
			r.With(requireSeller).Get("/seller/{sellerId}", controllers.OrdersForSeller(deps.OrdersService, logg))
			r.Get("/{id}", controllers.OrderDetail(deps.OrdersService, logg))
			r.With(requireSeller, idempotency).Put("/{id}/confirm", controllers.OrderConfirm(deps.OrdersService, logg))
		})
	})

	return r
}

// Typed-nil guards: a nil *redis.Client must become a nil interface so the
// middleware can detect it.

func limiterStore(client *redis.Client) middleware.RateLimiterStore {
	if client == nil {
		return nil
	}
	return client
}

func idempotencyStore(client *redis.Client) redis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}

func pinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}

package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/internal/service"
	"github.com/nobih83-prog/Nashwa01/pkg/health"
	"github.com/nobih83-prog/Nashwa01/pkg/middleware"
)

// Services groups the application services the API exposes.
type Services struct {
	Catalog  *service.CatalogService
	Sessions *service.Sessions
	Checkout *service.CheckoutService
	Orders   *service.OrderService
	Auth     *service.AuthService
	// Tokens validates admin bearer tokens.
	Tokens middleware.TokenValidator
}

// RouterConfig holds the transport settings of the router.
type RouterConfig struct {
	ServiceName    string
	CORS           middleware.CORSConfig
	PprofEnabled   bool
	PprofCIDRs     []string
	RateLimitRPS   float64
	RateLimitBurst int
	// CatalogMaxAge is the Cache-Control max-age, in seconds, of product routes.
	CatalogMaxAge  int
	RequestTimeout time.Duration
}

// NewRouter creates a chi router with all storefront routes registered. ctx
// bounds the background goroutines of the rate limiters.
func NewRouter(
	ctx context.Context,
	svcs Services,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	if cfg.PprofEnabled {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)
	}

	catalogHandler := NewCatalogHandler(svcs.Catalog, logger)
	cartHandler := NewCartHandler(svcs.Sessions, svcs.Catalog, logger)
	wishlistHandler := NewWishlistHandler(svcs.Sessions, svcs.Catalog, logger)
	recentHandler := NewRecentlyViewedHandler(svcs.Sessions, svcs.Catalog, logger)
	checkoutHandler := NewCheckoutHandler(svcs.Sessions, svcs.Checkout, logger)
	authHandler := NewAuthHandler(svcs.Sessions, svcs.Auth, logger)
	adminHandler := NewAdminHandler(svcs.Orders, logger)

	limit := func() func(http.Handler) http.Handler {
		return middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Catalog endpoints (public, cacheable)
		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.CatalogMaxAge))

			r.Get("/", catalogHandler.Shop)
			r.Get("/featured", catalogHandler.Featured)
			r.Get("/search", catalogHandler.Search)
			r.Get("/{id}", catalogHandler.GetProduct)
			r.Get("/{id}/related", catalogHandler.Related)
		})
		r.With(middleware.CacheControl(cfg.CatalogMaxAge)).Get("/categories", catalogHandler.Categories)

		// Per-session state
		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(middleware.Session)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Patch("/items/{productId}", cartHandler.UpdateItemQuantity)
				r.Delete("/items/{productId}", cartHandler.RemoveItem)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.List)
				r.Post("/{productId}/toggle", wishlistHandler.Toggle)
			})

			r.Route("/recently-viewed", func(r chi.Router) {
				r.Get("/", recentHandler.List)
				r.Delete("/", recentHandler.Clear)
				r.Post("/{productId}", recentHandler.Add)
			})

			r.With(limit()).Post("/checkout", checkoutHandler.PlaceOrder)

			r.Route("/auth", func(r chi.Router) {
				r.With(limit()).Post("/login", authHandler.Login)
				r.Post("/logout", authHandler.Logout)
				r.Get("/session", authHandler.Session)
			})
		})

		// Admin dashboard
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(middleware.Auth(svcs.Tokens))
			r.Use(middleware.RequireRole(domain.RoleAdmin))

			r.Get("/orders", adminHandler.ListOrders)
			r.Get("/orders/{id}", adminHandler.GetOrder)
			r.Patch("/orders/{id}/status", adminHandler.UpdateOrderStatus)
			r.Get("/analytics", adminHandler.Analytics)
			r.Get("/inventory", adminHandler.Inventory)
		})
	})

	return r
}

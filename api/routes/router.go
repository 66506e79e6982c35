package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harikrishnagadicharla/unicart/api/controllers"
	"github.com/harikrishnagadicharla/unicart/api/middleware"
	"github.com/harikrishnagadicharla/unicart/internal/auth"
	"github.com/harikrishnagadicharla/unicart/internal/cart"
	"github.com/harikrishnagadicharla/unicart/internal/products"
	"github.com/harikrishnagadicharla/unicart/internal/wishlist"
	"github.com/harikrishnagadicharla/unicart/pkg/auth/session"
	"github.com/harikrishnagadicharla/unicart/pkg/config"
	"github.com/harikrishnagadicharla/unicart/pkg/db"
	"github.com/harikrishnagadicharla/unicart/pkg/logger"
	"github.com/harikrishnagadicharla/unicart/pkg/metrics"
	"github.com/harikrishnagadicharla/unicart/pkg/redis"
)

// RouterParams names the dependencies wired into the HTTP surface.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	SessionChecker  session.AccessSessionChecker
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer
	AuthService     auth.Service
	CartService     cart.Service
	WishlistService wishlist.Service
	ProductService  products.Service
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(params.HTTPMetrics),
		middleware.CORS(nil),
	)

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

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, params.DB, params.Redis))
	})

	if params.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, params.Redis, logg)).Post("/login", controllers.AuthLogin(params.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, params.Redis, logg)).Post("/register", controllers.AuthRegister(params.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, params.SessionChecker, logg)).Post("/logout", controllers.AuthLogout(params.AuthService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductsList(params.ProductService, logg))
		r.Get("/{productID}", controllers.ProductsGet(params.ProductService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, params.SessionChecker, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(params.CartService, logg))
			r.Post("/", controllers.CartAddItem(params.CartService, logg))
			r.Delete("/", controllers.CartClear(params.CartService, logg))
			r.Put("/{productID}", controllers.CartUpdateItem(params.CartService, logg))
			r.Delete("/{productID}", controllers.CartRemoveItem(params.CartService, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(params.WishlistService, logg))
			r.Post("/", controllers.WishlistAdd(params.WishlistService, logg))
			r.Delete("/{productID}", controllers.WishlistRemove(params.WishlistService, logg))
		})
	})

	return r
}

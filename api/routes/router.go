package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rohandesai/brandline-backend/api/controllers"
	"github.com/rohandesai/brandline-backend/api/middleware"
	"github.com/rohandesai/brandline-backend/internal/brands"
	"github.com/rohandesai/brandline-backend/internal/cart"
	"github.com/rohandesai/brandline-backend/internal/catalog"
	"github.com/rohandesai/brandline-backend/internal/categories"
	"github.com/rohandesai/brandline-backend/internal/media"
	"github.com/rohandesai/brandline-backend/internal/messages"
	"github.com/rohandesai/brandline-backend/pkg/config"
	"github.com/rohandesai/brandline-backend/pkg/db"
	"github.com/rohandesai/brandline-backend/pkg/logger"
	"github.com/rohandesai/brandline-backend/pkg/metrics"
	"github.com/rohandesai/brandline-backend/pkg/redis"
	"github.com/rohandesai/brandline-backend/pkg/storage/gcs"
)

type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DBPinger    db.Pinger
	RedisClient *redis.Client
	GCSPinger   gcs.Pinger

	Catalog    catalog.Service
	Categories categories.Service
	Brands     brands.Service
	Messages   messages.Service
	Cart       cart.Service
	Media      media.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	var redisPinger interface {
		Ping(ctx context.Context) error
	}
	if deps.RedisClient != nil {
		redisPinger = deps.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, redisPinger, deps.GCSPinger))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/products/{id}", controllers.GetProduct(deps.Catalog, logg))

		r.Get("/categories", controllers.ListCategories(deps.Categories, logg))
		r.Get("/categories/{id}", controllers.GetCategory(deps.Categories, logg))

		r.Get("/brands", controllers.ListBrands(deps.Brands, logg))
		r.Get("/brands/{slug}", controllers.GetBrandBySlug(deps.Brands, logg))

		r.Post("/messages", controllers.CreateContactMessage(deps.Messages, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(logg))
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Patch("/items/{lineId}", controllers.UpdateCartItem(deps.Cart, logg))
			r.Delete("/items/{lineId}", controllers.RemoveCartItem(deps.Cart, logg))
			r.Post("/checkout", controllers.CheckoutCart(deps.Cart, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", controllers.AdminLogin(cfg, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(cfg.JWT, logg))

				r.Post("/products", controllers.AdminCreateProduct(deps.Catalog, deps.Media, cfg.Media, logg))
				r.Put("/products/{id}", controllers.AdminUpdateProduct(deps.Catalog, deps.Media, cfg.Media, logg))
				r.Delete("/products/{id}", controllers.AdminDeleteProduct(deps.Catalog, logg))

				r.Post("/categories", controllers.AdminCreateCategory(deps.Categories, deps.Media, cfg.Media, logg))
				r.Put("/categories/{id}", controllers.AdminUpdateCategory(deps.Categories, deps.Media, cfg.Media, logg))
				r.Delete("/categories/{id}", controllers.AdminDeleteCategory(deps.Categories, logg))

				r.Get("/brands", controllers.AdminListBrands(deps.Brands, logg))
				r.Post("/brands", controllers.AdminCreateBrand(deps.Brands, deps.Media, cfg.Media, logg))
				r.Put("/brands/{id}", controllers.AdminUpdateBrand(deps.Brands, deps.Media, cfg.Media, logg))
				r.Delete("/brands/{id}", controllers.AdminDeleteBrand(deps.Brands, logg))

				r.Delete("/media", controllers.AdminDeleteMedia(deps.Media, logg))

				r.Get("/messages", controllers.AdminListMessages(deps.Messages, logg))
				r.Post("/messages/{id}/read", controllers.AdminMarkMessageRead(deps.Messages, logg))
				r.Delete("/messages/{id}", controllers.AdminDeleteMessage(deps.Messages, logg))
			})
		})
	})

	return r
}

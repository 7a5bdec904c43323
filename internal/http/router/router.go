package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/product-store/docs"
	"github.com/rogerio-castellano/product-store/internal/auth"
	"github.com/rogerio-castellano/product-store/internal/http/handlers"
	mw "github.com/rogerio-castellano/product-store/internal/http/middleware"
	rl "github.com/rogerio-castellano/product-store/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter builds the API. Write routes require a token when a is not nil and
// are throttled by limiter.
func NewRouter(a *auth.Authenticator, limiter *rl.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Post("/login", handlers.LoginHandler)

	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/stream", handlers.StreamProductsHandler)
	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimitMiddleware(limiter))
		r.Use(mw.AuthMiddleware(a))

		r.Post("/products", handlers.CreateProductHandler)
		r.Delete("/products", handlers.DeleteProductsHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	return r
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mfontes/ohm/internal/http/catalog"
	"github.com/mfontes/ohm/internal/http/finance"
	"github.com/mfontes/ohm/internal/http/importledger"
	"github.com/mfontes/ohm/internal/http/insight"
	"github.com/mfontes/ohm/internal/http/recommend"
)

func New(
	catalogV1 *catalog.Handler,
	recommendV1 *recommend.Handler,
	financeV1 *finance.Handler,
	insightV1 *insight.Handler,
	importV1 *importledger.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// The storefront runs on its own origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			catalogV1.Routes(r)
			recommendV1.Routes(r)
		})

		r.Route("/inventory", catalogV1.InventoryRoutes)

		r.Route("/finance", func(r chi.Router) {
			financeV1.Routes(r)
		})

		r.Route("/insights", func(r chi.Router) {
			insightV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}

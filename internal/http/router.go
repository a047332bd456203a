package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmulders/veridose/internal/http/importcsv"
	"github.com/jmulders/veridose/internal/http/licence"
	"github.com/jmulders/veridose/internal/http/matching"
	"github.com/jmulders/veridose/internal/http/middleware"
	"github.com/jmulders/veridose/internal/http/override"
	"github.com/jmulders/veridose/internal/http/reclass"
	"github.com/jmulders/veridose/internal/http/transaction"
)

func New(
	jwtSecret string,
	transactionsV1 *transaction.Handler,
	overridesV1 *override.Handler,
	reclassV1 *reclass.Handler,
	licencesV1 *licence.Handler,
	importV1 *importcsv.Handler,
	matchingV1 *matching.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticator(jwtSecret))

		r.Route("/transactions", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/overrides", func(r chi.Router) {
			overridesV1.Routes(r)
		})

		r.Route("/reclassifications", reclassV1.Routes)
		r.Route("/customers", reclassV1.CustomerRoutes)
		r.Route("/substances", reclassV1.SubstanceRoutes)

		r.Route("/licences", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			licencesV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/matching", func(r chi.Router) {
			matchingV1.Routes(r)
		})
	})

	return router
}

package routers

import (
	"fmt"
	"slotplan-service/internal/app/config"
	"slotplan-service/internal/app/delivery/http/controllers"
	"slotplan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	uploadLimiter *middlewares.RateLimiter,
	datasetController *controllers.DatasetController,
	capacityPlanController *controllers.CapacityPlanController,
	analysisController *controllers.AnalysisController,
	shareController *controllers.ShareController,
) {

	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Api-Key", "X-Tenant", "X-Share-Passcode", "X-Request-Id"},
		ExposedHeaders: []string{"Link", "X-Request-Id", "Content-Disposition"},
		MaxAge:         300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.Tenant)

	// Per-IP rate limiting using httprate. The limiter sits on the routes
	// rather than the global chain so that keyed clients, marked by the API
	// key middleware, are measured against the superadmin quota instead of
	// the anonymous one.
	normalLimiter, apiKeyLimiter := middlewares.CreateRateLimiters()
	rateLimit := middlewares.ConditionalRateLimit(normalLimiter, apiKeyLimiter)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/datasets", func(r chi.Router) {
				attachDatasetRoutes(r, middlewares, rateLimit, uploadLimiter, datasetController)
				attachAnalysisRoutes(r, rateLimit, analysisController)
			})

			r.Route("/capacity-plans", func(r chi.Router) {
				attachCapacityPlanRoutes(r, middlewares, rateLimit, capacityPlanController)
			})

			r.Route("/shares", func(r chi.Router) {
				attachShareRoutes(r, middlewares, rateLimit, shareController)
			})
		})
	})
}

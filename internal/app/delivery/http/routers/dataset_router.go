package routers

import (
	"net/http"

	"slotplan-service/internal/app/delivery/http/controllers"
	"slotplan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDatasetRoutes(router chi.Router, middlewares *middlewares.Middlewares, rateLimit func(http.Handler) http.Handler, uploadLimiter *middlewares.RateLimiter, datasetController *controllers.DatasetController) {
	router.With(middlewares.RequireAPIKey, rateLimit, uploadLimiter.Limit).Post("/", datasetController.UploadDataset)
	router.With(middlewares.RequireAPIKey, rateLimit, uploadLimiter.Limit).Post("/fetch", datasetController.FetchDataset)
	router.With(rateLimit).Get("/", datasetController.ListDatasets)
	router.With(rateLimit).Get("/{dataset_id}", datasetController.FindDatasetByID)
	router.With(middlewares.RequireAPIKey, rateLimit).Delete("/{dataset_id}", datasetController.DeleteDatasetByID)
}

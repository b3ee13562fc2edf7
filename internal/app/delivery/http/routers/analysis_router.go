package routers

import (
	"net/http"

	"slotplan-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

// Analysis is read-only and mounted under the dataset subtree.
func attachAnalysisRoutes(router chi.Router, rateLimit func(http.Handler) http.Handler, analysisController *controllers.AnalysisController) {
	router.With(rateLimit).Get("/{dataset_id}/analysis", analysisController.GetAnalysis)
	router.With(rateLimit).Get("/{dataset_id}/analysis/export", analysisController.ExportAnalysisWorkbook)
}

package routers

import (
	"net/http"

	"slotplan-service/internal/app/delivery/http/controllers"
	"slotplan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachCapacityPlanRoutes(router chi.Router, middlewares *middlewares.Middlewares, rateLimit func(http.Handler) http.Handler, capacityPlanController *controllers.CapacityPlanController) {
	router.With(middlewares.RequireAPIKey, rateLimit).Post("/", capacityPlanController.CreateCapacityPlan)
	router.With(rateLimit).Get("/", capacityPlanController.ListCapacityPlans)
	router.With(rateLimit).Get("/{plan_id}", capacityPlanController.FindCapacityPlanByID)
	router.With(middlewares.RequireAPIKey, rateLimit).Put("/{plan_id}", capacityPlanController.UpdateCapacityPlanByID)
	router.With(middlewares.RequireAPIKey, rateLimit).Delete("/{plan_id}", capacityPlanController.DeleteCapacityPlanByID)
}

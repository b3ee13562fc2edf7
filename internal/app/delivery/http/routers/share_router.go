package routers

import (
	"net/http"

	"slotplan-service/internal/app/delivery/http/controllers"
	"slotplan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachShareRoutes(router chi.Router, middlewares *middlewares.Middlewares, rateLimit func(http.Handler) http.Handler, shareController *controllers.ShareController) {
	router.With(middlewares.RequireAPIKey, rateLimit).Post("/", shareController.CreateShare)
	// Resolution is deliberately open. The token is the credential.
	router.With(rateLimit).Get("/{share_token}", shareController.ResolveShare)
}

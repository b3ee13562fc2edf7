package middlewares

import (
	"context"
	"net/http"

	"slotplan-service/internal/pkg/constvars"
	"slotplan-service/internal/pkg/exceptions"
	"slotplan-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const ContextAPIKeyAuth = "api_key_auth"

// RequireAPIKey guards mutating routes. Reads stay open; anything that
// writes needs the configured key.
func (m *Middlewares) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// An instance started without a key runs open, for local development.
		if m.InternalConfig.App.SuperadminAPIKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(constvars.HeaderXAPIKey)
		if apiKey != m.InternalConfig.App.SuperadminAPIKey {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), ContextAPIKeyAuth, true)

		m.Log.Info("API key authentication successful",
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

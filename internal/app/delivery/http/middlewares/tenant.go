package middlewares

import (
	"context"
	"net/http"
	"strings"

	"slotplan-service/internal/pkg/constvars"
)

// Tenant resolves the calling trust from the X-Tenant header. Single-trust
// deployments omit the header and every request lands on the default tenant.
func (m *Middlewares) Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant := strings.TrimSpace(r.Header.Get(constvars.HeaderXTenant))
		if tenant == "" {
			tenant = constvars.DefaultTenant
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_TENANT_KEY, tenant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

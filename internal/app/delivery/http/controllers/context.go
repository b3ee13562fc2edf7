package controllers

import (
	"net/http"

	"slotplan-service/internal/pkg/constvars"
)

// tenantFromRequest reads the tenant resolved by the tenant middleware,
// falling back to the default tenant when the middleware did not run.
func tenantFromRequest(r *http.Request) string {
	tenant, ok := r.Context().Value(constvars.CONTEXT_TENANT_KEY).(string)
	if !ok || tenant == "" {
		return constvars.DefaultTenant
	}
	return tenant
}

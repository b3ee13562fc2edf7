package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"slotplan-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTenant(t *testing.T) {
	middlewares := &Middlewares{Log: zap.NewNop()}

	captureTenant := func(out *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant, _ := r.Context().Value(constvars.CONTEXT_TENANT_KEY).(string)
			*out = tenant
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("Header Sets Tenant", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/datasets", nil)
		req.Header.Set(constvars.HeaderXTenant, "north-pcn")

		var got string
		rr := httptest.NewRecorder()
		middlewares.Tenant(captureTenant(&got)).ServeHTTP(rr, req)

		assert.Equal(t, "north-pcn", got)
	})

	t.Run("Missing Header Falls Back To Default", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/datasets", nil)

		var got string
		rr := httptest.NewRecorder()
		middlewares.Tenant(captureTenant(&got)).ServeHTTP(rr, req)

		assert.Equal(t, constvars.DefaultTenant, got)
	})

	t.Run("Blank Header Falls Back To Default", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/datasets", nil)
		req.Header.Set(constvars.HeaderXTenant, "   ")

		var got string
		rr := httptest.NewRecorder()
		middlewares.Tenant(captureTenant(&got)).ServeHTTP(rr, req)

		assert.Equal(t, constvars.DefaultTenant, got)
	})
}

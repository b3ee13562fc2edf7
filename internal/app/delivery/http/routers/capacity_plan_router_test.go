package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"slotplan-service/internal/app/config"
	"slotplan-service/internal/app/delivery/http/controllers"
	"slotplan-service/internal/app/delivery/http/middlewares"
	"slotplan-service/internal/pkg/dto/requests"
	"slotplan-service/internal/pkg/dto/responses"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockCapacityPlanUsecase struct {
	mock.Mock
}

func (m *MockCapacityPlanUsecase) CreateCapacityPlan(ctx context.Context, request *requests.CreateCapacityPlan) (*responses.CapacityPlan, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.CapacityPlan), args.Error(1)
}

func (m *MockCapacityPlanUsecase) UpdateCapacityPlan(ctx context.Context, request *requests.UpdateCapacityPlan) (*responses.CapacityPlan, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.CapacityPlan), args.Error(1)
}

func (m *MockCapacityPlanUsecase) FindCapacityPlanByID(ctx context.Context, request *requests.FindCapacityPlanByID) (*responses.CapacityPlan, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.CapacityPlan), args.Error(1)
}

func (m *MockCapacityPlanUsecase) ListCapacityPlans(ctx context.Context, request *requests.ListCapacityPlans) ([]responses.CapacityPlan, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.CapacityPlan), args.Error(1)
}

func (m *MockCapacityPlanUsecase) DeleteCapacityPlanByID(ctx context.Context, request *requests.DeleteCapacityPlanByID) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func validPlanBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	requestBody := requests.CreateCapacityPlan{
		Name: "Winter baseline",
		Capacities: map[string]map[string]int{
			"Monday": {"RED": 4, "AMBER": 8},
		},
	}
	jsonBody, err := json.Marshal(requestBody)
	assert.NoError(t, err)
	return bytes.NewBuffer(jsonBody)
}

func TestCapacityPlanRouter_APIKeyGuard(t *testing.T) {
	logger := zap.NewNop()

	testAPIKey := "test-superadmin-api-key-12345"
	internalConfig := &config.InternalConfig{
		App: config.App{
			SuperadminAPIKey:          testAPIKey,
			MaxRequests:               100,
			SuperadminAPIKeyRateLimit: 100,
		},
	}

	mockUsecase := new(MockCapacityPlanUsecase)
	planController := &controllers.CapacityPlanController{
		Log:                 logger,
		CapacityPlanUsecase: mockUsecase,
	}

	middlewareInstance := middlewares.NewMiddlewares(logger, internalConfig)
	normalLimiter, apiKeyLimiter := middlewareInstance.CreateRateLimiters()
	rateLimit := middlewareInstance.ConditionalRateLimit(normalLimiter, apiKeyLimiter)

	router := chi.NewRouter()
	router.Use(middlewareInstance.RequestIDMiddleware)
	router.Route("/capacity-plans", func(r chi.Router) {
		attachCapacityPlanRoutes(r, middlewareInstance, rateLimit, planController)
	})

	t.Run("Create with Valid API Key", func(t *testing.T) {
		mockUsecase.On("CreateCapacityPlan", mock.Anything, mock.AnythingOfType("*requests.CreateCapacityPlan")).
			Return(&responses.CapacityPlan{PlanID: "p-1", Name: "Winter baseline", Revision: 1}, nil).Once()

		req := httptest.NewRequest("POST", "/capacity-plans/", validPlanBody(t))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", testAPIKey)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code, "should return 201 Created for valid API key")
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Create without API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/capacity-plans/", validPlanBody(t))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for missing API key")
	})

	t.Run("Create with Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/capacity-plans/", validPlanBody(t))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", "invalid-api-key")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for invalid API key")
	})

	t.Run("List is Open", func(t *testing.T) {
		mockUsecase.On("ListCapacityPlans", mock.Anything, mock.AnythingOfType("*requests.ListCapacityPlans")).
			Return([]responses.CapacityPlan{}, nil).Once()

		req := httptest.NewRequest("GET", "/capacity-plans/", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "reads should not require an API key")
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Get By ID is Open", func(t *testing.T) {
		mockUsecase.On("FindCapacityPlanByID", mock.Anything, mock.AnythingOfType("*requests.FindCapacityPlanByID")).
			Return(&responses.CapacityPlan{PlanID: "p-1"}, nil).Once()

		req := httptest.NewRequest("GET", "/capacity-plans/p-1", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Delete without API Key", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/capacity-plans/p-1", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockUsecase.AssertNotCalled(t, "DeleteCapacityPlanByID")
	})
}

func TestCapacityPlanRouter_TenantHeader(t *testing.T) {
	logger := zap.NewNop()

	internalConfig := &config.InternalConfig{
		App: config.App{
			SuperadminAPIKey:          "",
			MaxRequests:               100,
			SuperadminAPIKeyRateLimit: 100,
		},
	}

	mockUsecase := new(MockCapacityPlanUsecase)
	planController := &controllers.CapacityPlanController{
		Log:                 logger,
		CapacityPlanUsecase: mockUsecase,
	}

	middlewareInstance := middlewares.NewMiddlewares(logger, internalConfig)
	normalLimiter, apiKeyLimiter := middlewareInstance.CreateRateLimiters()
	rateLimit := middlewareInstance.ConditionalRateLimit(normalLimiter, apiKeyLimiter)

	router := chi.NewRouter()
	router.Use(middlewareInstance.RequestIDMiddleware)
	router.Use(middlewareInstance.Tenant)
	router.Route("/capacity-plans", func(r chi.Router) {
		attachCapacityPlanRoutes(r, middlewareInstance, rateLimit, planController)
	})

	t.Run("Tenant Header Reaches Usecase", func(t *testing.T) {
		mockUsecase.On("ListCapacityPlans", mock.Anything, mock.MatchedBy(func(request *requests.ListCapacityPlans) bool {
			return request.Tenant == "north-pcn"
		})).Return([]responses.CapacityPlan{}, nil).Once()

		req := httptest.NewRequest("GET", "/capacity-plans/", nil)
		req.Header.Set("X-Tenant", "north-pcn")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockUsecase.AssertExpectations(t)
	})
}

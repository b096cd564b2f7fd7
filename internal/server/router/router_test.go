package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abiwaumi/tablewater/internal/config"
	"github.com/abiwaumi/tablewater/internal/domain/models"
	"github.com/abiwaumi/tablewater/internal/repository/memory"
	"github.com/abiwaumi/tablewater/internal/server/handlers"
	"github.com/abiwaumi/tablewater/internal/service/auth"
	"github.com/abiwaumi/tablewater/internal/service/reporting"
)

func newTestEngine(t *testing.T) (*gin.Engine, *auth.Service) {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, store.SeedDemoUsers())

	sessionSvc := auth.NewService(store, "test-secret", nil)
	reportingSvc := reporting.NewService(store, nil)

	deps := Deps{
		Auth:      handlers.NewAuthHandler(sessionSvc, nil),
		Records:   handlers.NewRecordsHandler(store, nil),
		Resources: handlers.NewResourcesHandler(store, nil),
		Dashboard: handlers.NewDashboardHandler(reportingSvc, store, nil),
	}
	return New(sessionSvc, deps, nil), sessionSvc
}

func signIn(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()

	body, err := json.Marshal(map[string]string{"email": email, "password": memory.DemoPassword})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doRequest(engine *gin.Engine, method, path, token string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestLoginRejectsBadPassword(t *testing.T) {
	engine, _ := newTestEngine(t)

	body, _ := json.Marshal(map[string]string{"email": "admin@abiwaumi.com", "password": "wrong"})
	w := doRequest(engine, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuardDeniesWithoutSession(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := doRequest(engine, http.MethodGet, "/api/production", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "/login")
}

func TestGuardEnforcesRoleTable(t *testing.T) {
	engine, _ := newTestEngine(t)

	viewer := signIn(t, engine, "viewer@abiwaumi.com")
	admin := signIn(t, engine, "admin@abiwaumi.com")
	staff := signIn(t, engine, "staff@abiwaumi.com")

	// Viewer may not see production; the guard redirects rather than errors.
	w := doRequest(engine, http.MethodGet, "/api/production", viewer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "/dashboard")

	w = doRequest(engine, http.MethodGet, "/api/production", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Staff may not see revenue; viewer may.
	w = doRequest(engine, http.MethodGet, "/api/revenue/summary", staff, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/revenue/summary", viewer, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNavigationMatchesRole(t *testing.T) {
	engine, _ := newTestEngine(t)
	viewer := signIn(t, engine, "viewer@abiwaumi.com")

	w := doRequest(engine, http.MethodGet, "/api/navigation", viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Routes []string `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"dashboard", "revenue", "settings"}, resp.Routes)
}

func TestProductionFlowsIntoDashboardStats(t *testing.T) {
	engine, _ := newTestEngine(t)
	staff := signIn(t, engine, "staff@abiwaumi.com")
	viewer := signIn(t, engine, "viewer@abiwaumi.com")

	today := time.Now().Format(models.DateLayout)
	body, _ := json.Marshal(map[string]any{"date": today, "bags_produced": 50})
	w := doRequest(engine, http.MethodPost, "/api/production", staff, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Production
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 50, created.BagsProduced)
	assert.NotEmpty(t, created.StaffID)

	w = doRequest(engine, http.MethodGet, "/api/dashboard/stats", viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 50, stats.TotalProductionToday)
	assert.Equal(t, 50, stats.TotalProductionMonth)
}

func TestCreateSaleFreezesRevenueOverHTTP(t *testing.T) {
	engine, _ := newTestEngine(t)
	staff := signIn(t, engine, "staff@abiwaumi.com")

	body, _ := json.Marshal(map[string]any{"date": "2024-03-01", "bags_sold": 10, "revenue": 1})
	w := doRequest(engine, http.MethodPost, "/api/sales", staff, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sale models.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.Equal(t, float64(10*models.BagPrice), sale.Revenue)
}

func TestCreateProductionValidationError(t *testing.T) {
	engine, _ := newTestEngine(t)
	staff := signIn(t, engine, "staff@abiwaumi.com")

	body, _ := json.Marshal(map[string]any{"date": "2024-03-01", "bags_produced": -5})
	w := doRequest(engine, http.MethodPost, "/api/production", staff, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bags_produced")
}

func TestResourceLifecycleOverHTTP(t *testing.T) {
	engine, _ := newTestEngine(t)
	admin := signIn(t, engine, "admin@abiwaumi.com")

	body, _ := json.Marshal(map[string]any{
		"name": "Nylon Roll", "category": "nylon", "quantity": 250.0, "unit": "rolls",
	})
	w := doRequest(engine, http.MethodPost, "/api/resources", admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Resource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	patch, _ := json.Marshal(map[string]any{"quantity": 40.0})
	w = doRequest(engine, http.MethodPatch, "/api/resources/"+created.ID, admin, patch)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/resources/low-stock", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nylon Roll")

	w = doRequest(engine, http.MethodPatch, "/api/resources/missing-id", admin, patch)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Delete twice: both succeed.
	w = doRequest(engine, http.MethodDelete, "/api/resources/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(engine, http.MethodDelete, "/api/resources/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	engine, _ := newTestEngine(t)
	admin := signIn(t, engine, "admin@abiwaumi.com")

	w := doRequest(engine, http.MethodPost, "/api/auth/logout", admin, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/auth/me", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetupEngineRefusesEverything(t *testing.T) {
	engine := NewSetup(&config.ConfigurationError{Missing: []string{"MONGODB_URI"}})

	for _, path := range []string{"/", "/api/production", "/healthz"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		engine.ServeHTTP(w, req)
		assert.Equalf(t, http.StatusServiceUnavailable, w.Code, "path %s", path)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "MONGODB_URI")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

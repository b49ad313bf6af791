package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetworks/fleet-maintenance-api/api/handlers"
	"github.com/fleetworks/fleet-maintenance-api/config"
)

func newTestApp() *handlers.App {
	a := &handlers.App{Config: config.Config{Vehicles: []string{"HR55AZ3114"}}}
	a.Router = a.New()
	return a
}

func executeRequest(a *handlers.App, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckRoute(t *testing.T) {
	a := newTestApp()

	rr := executeRequest(a, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive": true}`, rr.Body.String())
}

func TestVehiclesRouteNeedsNoAuth(t *testing.T) {
	a := newTestApp()

	rr := executeRequest(a, httptest.NewRequest("GET", "/api/v1/vehicles", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"vehicles": ["HR55AZ3114"]}`, rr.Body.String())
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	a := newTestApp()

	for _, tc := range []struct {
		method string
		target string
	}{
		{"POST", "/api/v1/maintenance/submit"},
		{"GET", "/api/v1/maintenance/logs"},
		{"GET", "/api/v1/maintenance/logs/export"},
		{"GET", "/api/v1/maintenance/logs/rec-1"},
	} {
		rr := executeRequest(a, httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equalf(t, http.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.target)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	a := newTestApp()

	rr := executeRequest(a, httptest.NewRequest("GET", "/api/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

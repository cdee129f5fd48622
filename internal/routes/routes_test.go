package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peterldowns/testy/check"

	"cricket-auction/internal/logger"
	"cricket-auction/internal/models"
)

// The admin panel and display page call the API from another origin, so
// every mutating route must answer a browser preflight with CORS headers
// and without demanding an Authorization header.

func preflight(t *testing.T, router http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", method)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPreflightOnWriteRoutes(t *testing.T) {
	// No request reaches the store during route registration or a
	// preflight, so a nil database handle is fine here.
	router := RegisterAllRoutes(nil, models.NewHub(), logger.NewLogger("routes-test"))

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/teams"},
		{http.MethodPost, "/api/sets"},
		{http.MethodPost, "/api/players"},
		{http.MethodPut, "/api/players/some-player/set"},
		{http.MethodPost, "/api/auction/sell"},
		{http.MethodPost, "/api/auction/unsold"},
		{http.MethodPost, "/api/auction/reverse"},
		{http.MethodPost, "/api/auction/validate"},
	}
	for _, rt := range routes {
		rec := preflight(t, router, rt.method, rt.path)
		check.Equal(t, http.StatusOK, rec.Code)
		check.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestPreflightOnReadRoutes(t *testing.T) {
	router := RegisterAllRoutes(nil, models.NewHub(), logger.NewLogger("routes-test"))

	for _, path := range []string{
		"/api/teams",
		"/api/summary/global",
		"/api/auth/login",
	} {
		rec := preflight(t, router, http.MethodGet, path)
		check.Equal(t, http.StatusOK, rec.Code)
		check.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

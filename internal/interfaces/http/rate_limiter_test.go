package http_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apphttp "github.com/jhoicas/clinica-api/internal/interfaces/http"
)

func TestRateLimiter_PorTenant(t *testing.T) {
	limiter := apphttp.NewTenantRateLimiter(apphttp.RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 1})
	defer limiter.Stop()
	app := ticketApp(&fakeTickets{}, limiter)

	put := func(systemID string) int {
		resp := doRequest(t, app, http.MethodPut, "/api/tickets/tk-1/batch-update", bearer(t, systemID), strings.NewReader(`{}`))
		defer resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, put("sys-a"))
	assert.Equal(t, http.StatusTooManyRequests, put("sys-a"))
	assert.Equal(t, http.StatusOK, put("sys-b"), "otro tenant tiene su propio cupo")
}

func TestRateLimiter_LecturasNoLimitadas(t *testing.T) {
	limiter := apphttp.NewTenantRateLimiter(apphttp.RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 1})
	defer limiter.Stop()
	app := ticketApp(&fakeTickets{}, limiter)

	for i := 0; i < 3; i++ {
		resp := doRequest(t, app, http.MethodGet, "/api/tickets/tk-1", bearer(t, "sys-a"), nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 0, limiter.Stats()["active_tenants"])
}

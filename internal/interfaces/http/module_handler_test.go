package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/clinica-api/internal/application/usecase"
	apphttp "github.com/jhoicas/clinica-api/internal/interfaces/http"
	"github.com/jhoicas/clinica-api/pkg/cache"
)

// switchableModules simula la tabla de módulos; active cambia entre peticiones.
type switchableModules struct {
	active map[string]bool
}

func (s *switchableModules) HasActiveModule(_ context.Context, systemID, _ string) (bool, error) {
	return s.active[systemID], nil
}

func refreshApp(svc *usecase.ModuleService) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")
	apphttp.MountModules(api, apphttp.NewModuleHandler(svc, zerolog.Nop()), apphttp.AuthMiddleware(testJWTSecret))
	protected := api.Group("/",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireModule("tickets", svc, zerolog.Nop()),
	)
	protected.Get("/tickets/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestModuleRefresh_ActivacionVisibleTrasRefrescar(t *testing.T) {
	repo := &switchableModules{active: map[string]bool{}}
	svc := usecase.NewModuleService(repo, cache.NewTTL[bool](nil), time.Hour)
	app := refreshApp(svc)
	auth := bearer(t, testSystemID)

	resp := doRequest(t, app, http.MethodGet, "/api/tickets/tk-1", auth, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Se activa el módulo: la caché aún responde inactivo.
	repo.active[testSystemID] = true
	resp = doRequest(t, app, http.MethodGet, "/api/tickets/tk-1", auth, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/modules/refresh", auth, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "refrescar no exige el módulo activo")

	resp = doRequest(t, app, http.MethodGet, "/api/tickets/tk-1", auth, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestModuleRefresh_SinToken401(t *testing.T) {
	svc := usecase.NewModuleService(&switchableModules{}, cache.NewTTL[bool](nil), time.Hour)
	resp := doRequest(t, refreshApp(svc), http.MethodPost, "/api/modules/refresh", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

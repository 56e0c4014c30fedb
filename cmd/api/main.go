package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/clinica-api/internal/application/ticket"
	"github.com/jhoicas/clinica-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/clinica-api/internal/infrastructure/pdf"
	"github.com/jhoicas/clinica-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/clinica-api/internal/interfaces/http"
	"github.com/jhoicas/clinica-api/pkg/cache"
	"github.com/jhoicas/clinica-api/pkg/config"
	"github.com/jhoicas/clinica-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	batchUpdateUC := ticket.NewBatchUpdateUseCase(txRunner, log.Zerolog())
	queryUC := ticket.NewQueryUseCase(txRunner)

	// PDF: recibo imprimible del ticket (80mm, 58mm, A4)
	receiptUC := ticket.NewReceiptUseCase(queryUC, infrapdf.NewReceiptRenderer())

	moduleRepo := postgres.NewModuleRepository(pool)
	moduleSvc := usecase.NewModuleService(moduleRepo, cache.NewTTL[bool](cache.SystemClock{}), cfg.Modules.CacheTTL)

	limiter := httpRouter.NewTenantRateLimiter(httpRouter.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		CleanupInterval:   time.Minute,
		EntryTTL:          cfg.RateLimit.EntryTTL,
	})
	defer limiter.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Clínica API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BatchUpdateUC:  batchUpdateUC,
		QueryUC:        queryUC,
		ReceiptUC:      receiptUC,
		ModuleService:  moduleSvc,
		RateLimiter:    limiter,
		JWTSecret:      cfg.JWT.Secret,
		RequiredModule: cfg.Modules.RequiredModule,
		Logger:         log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

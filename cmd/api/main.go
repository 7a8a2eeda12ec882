package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lachilena/empanaderia-api/internal/application/auth"
	"github.com/lachilena/empanaderia-api/internal/application/orders"
	"github.com/lachilena/empanaderia-api/internal/application/usecase"
	infrapdf "github.com/lachilena/empanaderia-api/internal/infrastructure/pdf"
	"github.com/lachilena/empanaderia-api/internal/infrastructure/postgres"
	httpRouter "github.com/lachilena/empanaderia-api/internal/interfaces/http"
	"github.com/lachilena/empanaderia-api/pkg/config"
	"github.com/lachilena/empanaderia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.AdminEmailHeuristic)
	productUC := usecase.NewProductUseCase(productRepo)
	orderUC := orders.NewUseCase(productRepo, orderRepo, orders.Config{
		CompensateOnFailure: cfg.Orders.CompensateOnFailure,
		VerifyTotal:         cfg.Orders.VerifyTotal,
		RecentLimit:         cfg.Orders.RecentLimit,
	}, log)
	receiptUC := orders.NewReceiptUseCase(orderRepo, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	// CORS abierto: el frontend estático se sirve desde otro origen.
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Empanadería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		OrderUC:        orderUC,
		ReceiptUC:      receiptUC,
		DashboardUC:    dashboardUC,
		JWTSecret:      cfg.JWT.Secret,
		LoginRateLimit: cfg.Auth.LoginRateLimit,
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

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/lachilena/empanaderia-api/internal/application/auth"
	"github.com/lachilena/empanaderia-api/internal/application/orders"
	"github.com/lachilena/empanaderia-api/internal/application/usecase"
	"github.com/lachilena/empanaderia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *usecase.ProductUseCase
	OrderUC     *orders.UseCase
	ReceiptUC   *orders.ReceiptUseCase
	DashboardUC *usecase.DashboardUseCase
	JWTSecret   string
	// LoginRateLimit intentos de login por IP por minuto (0 desactiva el límite).
	LoginRateLimit int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (público). El login lleva rate limit por IP.
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/register", authHandler.Register)
	if deps.LoginRateLimit > 0 {
		app.Post("/login", limiter.New(limiter.Config{
			Max:        deps.LoginRateLimit,
			Expiration: time.Minute,
		}), authHandler.Login)
	} else {
		app.Post("/login", authHandler.Login)
	}

	authed := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RoleAdmin)

	// Catálogo: lectura pública, escritura solo admin.
	productHandler := NewProductHandler(deps.ProductUC)
	app.Get("/products", productHandler.List)
	app.Get("/products/:id", productHandler.GetByID)
	app.Post("/products", authed, admin, productHandler.Create)
	app.Put("/products/:id", authed, admin, productHandler.Update)
	app.Delete("/products/:id", authed, admin, productHandler.Delete)
	app.Post("/admin/stock/:id", authed, admin, productHandler.Restock)

	// Pedidos: crear y consultar lo propio requiere estar autenticado;
	// listado global y cambio de estado son de admin.
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)
	app.Post("/orders", authed, orderHandler.Create)
	app.Get("/orders/user/:email", authed, orderHandler.ByCustomer)
	app.Get("/orders/:id/receipt", authed, orderHandler.Receipt)
	app.Get("/orders", authed, admin, orderHandler.Recent)
	app.Patch("/orders/:id/status", authed, admin, orderHandler.UpdateStatus)

	// Tablero de administración.
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	app.Get("/admin/dashboard", authed, admin, dashboardHandler.Summary)
}

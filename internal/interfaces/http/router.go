package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/auth"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/application/orders"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	ClientUC    *usecase.ClientUseCase
	UserUC      *usecase.UserUseCase
	Stock       *inventory.StockService
	CreateOrder *orders.CreateOrderUseCase
	Lifecycle   *orders.LifecycleUseCase
	OrderQuery  *orders.QueryUseCase
	CreateSale  *sales.CreateSaleUseCase
	SaleQuery   *sales.QueryUseCase
	WeeklySales *analytics.WeeklySalesUseCase
	Dashboard   *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products; low-stock antes de /:id
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Stock)
	products.Get("/low-stock", productHandler.LowStock)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)

	// Orders
	orderGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.Lifecycle, deps.OrderQuery)
	orderGroup.Post("/", orderHandler.Create)
	orderGroup.Get("/", orderHandler.List)
	orderGroup.Get("/:id", orderHandler.GetByID)
	orderGroup.Patch("/:id", orderHandler.UpdateStatus)
	orderGroup.Post("/:id/sign", orderHandler.Sign)

	// Sales; by-week antes de /:id
	saleGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery, deps.WeeklySales)
	saleGroup.Get("/by-week", saleHandler.ByWeek)
	saleGroup.Post("/", saleHandler.Create)
	saleGroup.Get("/", saleHandler.List)
	saleGroup.Get("/:id", saleHandler.GetByID)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Perfil propio y administración de usuarios
	userHandler := NewUserHandler(deps.UserUC)
	protected.Patch("/profile", userHandler.UpdateProfile)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Delete)
}

// Health GET /health
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

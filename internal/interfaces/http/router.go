package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lotes-api/internal/application/auth"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	StockUC      *usecase.StockUseCase
	ProductUC    *usecase.ProductUseCase
	LotUC        *inventory.LotUseCase
	WithdrawalUC *inventory.WithdrawalUseCase
	HistoryUC    *inventory.HistoryUseCase
	ReportUC     *inventory.ReportUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), ActiveUserMiddleware(deps.UserUC))
	protected.Get("/auth/me", authHandler.Me)
	protected.Patch("/auth/me", authHandler.UpdateMe)
	protected.Patch("/auth/me/deactivate", authHandler.DeactivateMe)

	// Stocks
	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/:id", stockHandler.GetByID)
	stocks.Patch("/:id/deactivate", stockHandler.Deactivate)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	lotHandler := NewLotHandler(deps.LotUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/deactivate", productHandler.Deactivate)
	products.Get("/:id/lots", lotHandler.ListByProduct)

	// Lots (alta = movimiento ENTRADA)
	protected.Post("/lots", lotHandler.Create)

	// Movements
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.WithdrawalUC, deps.HistoryUC, deps.ReportUC)
	movements.Post("/withdrawals", movementHandler.Withdraw)
	movements.Get("/", movementHandler.History)
	movements.Get("/report", movementHandler.Report)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mercavia/mercavia-api/internal/application/auth"
	"github.com/mercavia/mercavia-api/internal/application/payments"
	"github.com/mercavia/mercavia-api/internal/application/sales"
	"github.com/mercavia/mercavia-api/internal/application/subscription"
	"github.com/mercavia/mercavia-api/internal/application/usecase"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
	"github.com/mercavia/mercavia-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	ProductUC   *usecase.ProductUseCase
	PaymentUC   *payments.IntakeUseCase
	FulfillUC   *sales.FulfillmentUseCase
	PlanManager *subscription.Manager
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.RegisterCompany)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios adicionales: solo el admin de la tienda
	protected.Post("/auth/users", RequireRole(entity.RoleAdmin), authHandler.RegisterUser)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Sales / orders (protegido)
	saleHandler := NewSaleHandler(deps.FulfillUC, deps.Log)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.CreatePOSSale)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id/status", saleHandler.UpdateStatus)
	protected.Post("/orders", saleHandler.PlaceOrder)

	// Suscripción del tenant: solo el admin de la tienda
	subGroup := protected.Group("/subscription", RequireRole(entity.RoleAdmin))
	subHandler := NewSubscriptionHandler(deps.PlanManager, deps.CompanyUC, deps.Log)
	subGroup.Get("/me", subHandler.Me)
	subGroup.Post("/trial", subHandler.StartTrial)
	subGroup.Post("/downgrade", subHandler.Downgrade)

	// Pagos de suscripción: solo el admin de la tienda
	payGroup := protected.Group("/payments", RequireRole(entity.RoleAdmin))
	paymentHandler := NewPaymentHandler(deps.PaymentUC, deps.Log)
	payGroup.Post("/", paymentHandler.Submit)
	payGroup.Get("/", paymentHandler.ListMine)
	payGroup.Post("/simulate-success", paymentHandler.SimulateSuccess)

	// Superadmin: operador de plataforma
	adminGroup := protected.Group("/superadmin", RequireRole(entity.RoleSuperAdmin))
	adminHandler := NewSuperAdminHandler(deps.PaymentUC, deps.PlanManager, deps.CompanyUC, deps.Log)
	adminGroup.Get("/companies", adminHandler.ListCompanies)
	adminGroup.Put("/companies/:id/subscription", adminHandler.OverrideSubscription)
	adminGroup.Get("/payments/pending", adminHandler.ListPendingPayments)
	adminGroup.Post("/payments/:id/approve", adminHandler.ApprovePayment)
	adminGroup.Post("/payments/:id/reject", adminHandler.RejectPayment)
}

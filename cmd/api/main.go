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
	"github.com/mercavia/mercavia-api/internal/application/auth"
	"github.com/mercavia/mercavia-api/internal/application/notify"
	"github.com/mercavia/mercavia-api/internal/application/payments"
	"github.com/mercavia/mercavia-api/internal/application/sales"
	"github.com/mercavia/mercavia-api/internal/application/subscription"
	"github.com/mercavia/mercavia-api/internal/application/usecase"
	"github.com/mercavia/mercavia-api/internal/infrastructure/postgres"
	"github.com/mercavia/mercavia-api/internal/infrastructure/redisq"
	httpRouter "github.com/mercavia/mercavia-api/internal/interfaces/http"
	"github.com/mercavia/mercavia-api/pkg/config"
	"github.com/mercavia/mercavia-api/pkg/logger"
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones: Redis si está configurado, no-op si no.
	var publisher notify.Publisher = notify.NopPublisher{}
	if cfg.Redis.Addr != "" {
		notifier := redisq.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		defer notifier.Close()
		publisher = notifier
	}

	planManager := subscription.NewManager(companyRepo, subscription.Config{
		TrialDays: cfg.Plan.TrialDays,
		PaidDays:  cfg.Plan.PaidDays,
	})
	paymentUC := payments.NewIntakeUseCase(txRunner, paymentRepo, companyRepo, planManager, publisher, payments.IntakeConfig{
		PaidDays:     cfg.Plan.PaidDays,
		MonthlyPrice: cfg.Plan.MonthlyPrice,
	})
	fulfillUC := sales.NewFulfillmentUseCase(saleRepo, productRepo, companyRepo, publisher)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo, companyRepo, cfg.Plan.FreeProductLimit)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mercavia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		ProductUC:   productUC,
		PaymentUC:   paymentUC,
		FulfillUC:   fulfillUC,
		PlanManager: planManager,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
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

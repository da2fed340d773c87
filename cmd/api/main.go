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
	"github.com/tu-usuario/autosqp-api/internal/application/auth"
	"github.com/tu-usuario/autosqp-api/internal/application/chat"
	"github.com/tu-usuario/autosqp-api/internal/application/credits"
	"github.com/tu-usuario/autosqp-api/internal/application/leads"
	"github.com/tu-usuario/autosqp-api/internal/application/reports"
	"github.com/tu-usuario/autosqp-api/internal/application/sales"
	"github.com/tu-usuario/autosqp-api/internal/application/usecase"
	"github.com/tu-usuario/autosqp-api/internal/domain/assign"
	infrapdf "github.com/tu-usuario/autosqp-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/autosqp-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/autosqp-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/tu-usuario/autosqp-api/internal/interfaces/http"
	"github.com/tu-usuario/autosqp-api/internal/monitoring"
	"github.com/tu-usuario/autosqp-api/pkg/config"
	"github.com/tu-usuario/autosqp-api/pkg/logger"
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
	roleRepo := postgres.NewRoleRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	historyRepo := postgres.NewLeadHistoryRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	creditRepo := postgres.NewCreditRepository(pool)
	convRepo := postgres.NewConversationRepository(pool)
	msgRepo := postgres.NewMessageRepository(pool)
	internalMsgRepo := postgres.NewInternalMessageRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	reportsRepo := postgres.NewReportsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	selector := assign.NewRandomSelector()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, roleRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo)
	leadUC := leads.NewLeadUseCase(leadRepo, historyRepo, userRepo, txRunner, selector)
	webhookUC := leads.NewWebhookUseCase(leadRepo, userRepo, companyRepo, selector)
	vehicleUC := sales.NewVehicleUseCase(vehicleRepo, saleRepo, userRepo, txRunner)

	receiptGen := infrapdf.NewReceiptGenerator()
	saleUC := sales.NewSaleUseCase(saleRepo, vehicleRepo, userRepo, companyRepo, txRunner, receiptGen)

	creditUC := credits.NewCreditUseCase(creditRepo, userRepo)

	waClient := whatsapp.NewClient(cfg.WhatsApp.APIKey, cfg.WhatsApp.PhoneNumberID)
	chatUC := chat.NewChatUseCase(
		convRepo, msgRepo, leadRepo, userRepo, companyRepo,
		txRunner, waClient, selector, cfg.WhatsApp.DefaultCompanyID, log.Zerolog(),
	)
	internalUC := chat.NewInternalMessageUseCase(internalMsgRepo, userRepo)
	reportsUC := reports.NewReportsUseCase(reportsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	metrics := monitoring.NewHTTPMetrics(cfg.App.Name)
	app.Use(metrics.Middleware())
	app.Get("/metrics", monitoring.Handler())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AutoSQP CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		CompanyUC:   companyUC,
		CatalogUC:   catalogUC,
		LeadUC:      leadUC,
		WebhookUC:   webhookUC,
		VehicleUC:   vehicleUC,
		SaleUC:      saleUC,
		CreditUC:    creditUC,
		ChatUC:      chatUC,
		InternalUC:  internalUC,
		ReportsUC:   reportsUC,
		JWTSecret:   cfg.JWT.Secret,
		VerifyToken: cfg.WhatsApp.VerifyToken,
		Logger:      log.Zerolog(),
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

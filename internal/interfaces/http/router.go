package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/tu-usuario/autosqp-api/internal/application/auth"
	"github.com/tu-usuario/autosqp-api/internal/application/chat"
	"github.com/tu-usuario/autosqp-api/internal/application/credits"
	"github.com/tu-usuario/autosqp-api/internal/application/leads"
	"github.com/tu-usuario/autosqp-api/internal/application/reports"
	"github.com/tu-usuario/autosqp-api/internal/application/sales"
	"github.com/tu-usuario/autosqp-api/internal/application/usecase"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	CompanyUC   *usecase.CompanyUseCase
	CatalogUC   *usecase.CatalogUseCase
	LeadUC      *leads.LeadUseCase
	WebhookUC   *leads.WebhookUseCase
	VehicleUC   *sales.VehicleUseCase
	SaleUC      *sales.SaleUseCase
	CreditUC    *credits.CreditUseCase
	ChatUC      *chat.ChatUseCase
	InternalUC  *chat.InternalMessageUseCase
	ReportsUC   *reports.ReportsUseCase
	JWTSecret   string
	VerifyToken string
	Logger      zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Webhooks (público: Meta y las campañas no envían Bearer Token)
	webhookHandler := NewWebhookHandler(deps.ChatUC, deps.WebhookUC, deps.VerifyToken, deps.Logger)
	webhooks := app.Group("/webhooks")
	webhooks.Get("/whatsapp", webhookHandler.VerifyWhatsApp)
	webhooks.Post("/whatsapp", webhookHandler.ReceiveWhatsApp)
	webhooks.Post("/leads/:source", webhookHandler.ReceiveLead)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(authz.RoleSuperAdmin, authz.RoleAdmin)

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", adminOnly, userHandler.Update)
	protected.Get("/roles", userHandler.Roles)

	// Companies (protegido; crear es solo del super admin)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", RequireRole(authz.RoleSuperAdmin), companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", adminOnly, companyHandler.Update)

	// Leads (protegido)
	leadsGroup := protected.Group("/leads")
	leadHandler := NewLeadHandler(deps.LeadUC)
	leadsGroup.Post("/", leadHandler.Create)
	leadsGroup.Get("/", leadHandler.List)
	leadsGroup.Post("/bulk-assign", adminOnly, leadHandler.BulkAssign)
	leadsGroup.Get("/:id", leadHandler.GetByID)
	leadsGroup.Put("/:id", leadHandler.Update)

	// Vehicles (protegido)
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Delete("/:id", adminOnly, vehicleHandler.Delete)

	// Sales (protegido; aprobar/rechazar es de administración)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/approve", adminOnly, saleHandler.Approve)
	salesGroup.Post("/:id/reject", adminOnly, saleHandler.Reject)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Credit applications (protegido)
	creditsGroup := protected.Group("/credit-applications")
	creditHandler := NewCreditHandler(deps.CreditUC)
	creditsGroup.Post("/", creditHandler.Create)
	creditsGroup.Get("/", creditHandler.List)
	creditsGroup.Get("/:id", creditHandler.GetByID)
	creditsGroup.Put("/:id", creditHandler.Update)

	// Chat: conversaciones de WhatsApp y mensajes internos (protegido)
	chatHandler := NewChatHandler(deps.ChatUC, deps.InternalUC)
	conversations := protected.Group("/conversations")
	conversations.Get("/", chatHandler.ListConversations)
	conversations.Get("/:id/messages", chatHandler.ListMessages)
	conversations.Post("/:id/messages", chatHandler.SendMessage)
	internalMsgs := protected.Group("/internal-messages")
	internalMsgs.Post("/", chatHandler.SendInternal)
	internalMsgs.Get("/", chatHandler.ListInternal)

	// Catalog (protegido, solo lectura)
	catalog := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalog.Get("/brands", catalogHandler.ListBrands)
	catalog.Get("/brands/:id/models", catalogHandler.ListModels)

	// Reports (protegido; finanzas y dashboard validan el rol en el caso de uso)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/leads", reportHandler.LeadStats)
	reportsGroup.Get("/advisor", reportHandler.AdvisorStats)
	reportsGroup.Get("/finance", reportHandler.FinanceStats)
	reportsGroup.Get("/credits", reportHandler.CreditStats)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
}

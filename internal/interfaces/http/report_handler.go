package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/autosqp-api/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP de reportes y estadísticas.
type ReportHandler struct {
	uc *reports.ReportsUseCase
}

// NewReportHandler construye el handler inyectando el caso de uso.
func NewReportHandler(uc *reports.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LeadStats godoc
// @Summary      Estadísticas de leads de la empresa
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.LeadStatsResponse
// @Router       /api/reports/leads [get]
func (h *ReportHandler) LeadStats(c *fiber.Ctx) error {
	out, err := h.uc.LeadStats(c.Context(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdvisorStats godoc
// @Summary      Estadísticas de los leads asignados al caller
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.AdvisorStatsResponse
// @Router       /api/reports/advisor [get]
func (h *ReportHandler) AdvisorStats(c *fiber.Ctx) error {
	out, err := h.uc.AdvisorStats(c.Context(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// FinanceStats godoc
// @Summary      Agregados financieros (solo roles con permiso de finanzas)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.FinanceStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/finance [get]
func (h *ReportHandler) FinanceStats(c *fiber.Ctx) error {
	out, err := h.uc.FinanceStats(c.Context(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreditStats godoc
// @Summary      Conteos de solicitudes de crédito por estado
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.CreditStatsResponse
// @Router       /api/reports/credits [get]
func (h *ReportHandler) CreditStats(c *fiber.Ctx) error {
	out, err := h.uc.CreditStats(c.Context(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Conteos globales de plataforma (solo super admin)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.DashboardStats(c.Context(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

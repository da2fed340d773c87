package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/autosqp-api/internal/application/credits"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
)

// CreditHandler maneja las peticiones HTTP de solicitudes de crédito.
type CreditHandler struct {
	uc *credits.CreditUseCase
}

// NewCreditHandler construye el handler inyectando el caso de uso.
func NewCreditHandler(uc *credits.CreditUseCase) *CreditHandler {
	return &CreditHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar solicitud de crédito
// @Tags         credits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCreditRequest  true  "Datos de la solicitud"
// @Success      201   {object}  dto.CreditResponse
// @Router       /api/credit-applications [post]
func (h *CreditHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCreditRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar solicitudes de crédito
// @Tags         credits
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        q       query  string  false  "Búsqueda por cliente/contacto/vehículo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.CreditResponse
// @Router       /api/credit-applications [get]
func (h *CreditHandler) List(c *fiber.Ctx) error {
	in := dto.ListCreditsRequest{
		Status: c.Query("status"),
		Query:  c.Query("q"),
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", 20),
			Offset: c.QueryInt("offset", 0),
		},
	}
	list, total, err := h.uc.List(GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": list,
		"page":  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	})
}

// GetByID godoc
// @Summary      Obtener solicitud de crédito por ID
// @Tags         credits
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.CreditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/credit-applications/{id} [get]
func (h *CreditHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar solicitud de crédito
// @Tags         credits
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la solicitud"
// @Param        body  body  dto.UpdateCreditRequest  true  "Campos a editar"
// @Success      200   {object}  dto.CreditResponse
// @Router       /api/credit-applications/{id} [put]
func (h *CreditHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCreditRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/application/leads"
)

// LeadHandler maneja las peticiones HTTP para el motor de leads.
type LeadHandler struct {
	uc *leads.LeadUseCase
}

// NewLeadHandler construye el handler inyectando el caso de uso.
func NewLeadHandler(uc *leads.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "Datos del lead"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
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
// @Summary      Listar leads según el alcance del caller
// @Tags         leads
// @Produce      json
// @Param        source  query  string  false  "Filtrar por origen"
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        q       query  string  false  "Búsqueda sobre nombre/email/teléfono"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.LeadResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	in := dto.ListLeadsRequest{
		Source: c.Query("source"),
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
// @Summary      Obtener lead con su historial
// @Tags         leads
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.LeadDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar lead (cambios de estado y comentarios generan historial)
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del lead"
// @Param        body  body  dto.UpdateLeadRequest  true  "Campos a editar"
// @Success      200   {object}  dto.LeadResponse
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkAssign godoc
// @Summary      Asignar un asesor a varios leads
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAssignRequest  true  "IDs de leads y asesor destino"
// @Success      200   {object}  dto.BulkAssignResponse
// @Router       /api/leads/bulk-assign [post]
func (h *LeadHandler) BulkAssign(c *fiber.Ctx) error {
	var in dto.BulkAssignRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.BulkAssign(GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

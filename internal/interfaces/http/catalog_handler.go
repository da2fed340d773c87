package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/autosqp-api/internal/application/usecase"
)

// CatalogHandler maneja el catálogo compartido de marcas y modelos.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler inyectando el caso de uso.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListBrands godoc
// @Summary      Listar marcas del catálogo
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.BrandResponse
// @Router       /api/catalog/brands [get]
func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	list, err := h.uc.ListBrands()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": list})
}

// ListModels godoc
// @Summary      Listar modelos de una marca
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID de la marca"
// @Success      200  {array}  dto.ModelResponse
// @Router       /api/catalog/brands/{id}/models [get]
func (h *CatalogHandler) ListModels(c *fiber.Ctx) error {
	list, err := h.uc.ListModels(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": list})
}

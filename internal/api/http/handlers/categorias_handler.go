package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestao-tpt/helpdesk/internal/api/dto"
	"github.com/gestao-tpt/helpdesk/internal/service"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

// CategoriasHandler manages service category endpoints.
type CategoriasHandler struct {
	service *service.CategoriaService
}

// NewCategoriasHandler constructs handler.
func NewCategoriasHandler(categoriaService *service.CategoriaService) *CategoriasHandler {
	return &CategoriasHandler{service: categoriaService}
}

// Create POST /categorias.
func (h *CategoriasHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoriaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	categoria, err := h.service.Criar(c.Context(), req.ToCreateInput())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromCategoria(categoria)})
}

// List GET /categorias.
func (h *CategoriasHandler) List(c *fiber.Ctx) error {
	categorias, err := h.service.Listar(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCategorias(categorias)})
}

// Get GET /categorias/:id.
func (h *CategoriasHandler) Get(c *fiber.Ctx) error {
	categoria, err := h.service.Obter(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCategoria(categoria)})
}

// Update PATCH /categorias/:id.
func (h *CategoriasHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCategoriaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	categoria, err := h.service.Atualizar(c.Context(), c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCategoria(categoria)})
}

// Delete DELETE /categorias/:id.
func (h *CategoriasHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Excluir(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestao-tpt/helpdesk/internal/api/dto"
	"github.com/gestao-tpt/helpdesk/internal/service"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

// ContatosHandler manages contact endpoints.
type ContatosHandler struct {
	service *service.ContatoService
}

// NewContatosHandler constructs handler.
func NewContatosHandler(contatoService *service.ContatoService) *ContatosHandler {
	return &ContatosHandler{service: contatoService}
}

// Create POST /contatos.
func (h *ContatosHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateContatoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	contato, err := h.service.Criar(c.Context(), req.ToCreateInput())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromContato(contato)})
}

// List GET /contatos. Accepts an optional empresa_id filter.
func (h *ContatosHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	var empresaID *string
	if v := c.Query("empresa_id"); v != "" {
		empresaID = &v
	}
	contatos, err := h.service.Listar(c.Context(), empresaID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromContatos(contatos)})
}

// Get GET /contatos/:id.
func (h *ContatosHandler) Get(c *fiber.Ctx) error {
	contato, err := h.service.Obter(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromContato(contato)})
}

// Update PATCH /contatos/:id.
func (h *ContatosHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateContatoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	contato, err := h.service.Atualizar(c.Context(), c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromContato(contato)})
}

// Delete DELETE /contatos/:id.
func (h *ContatosHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Excluir(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestao-tpt/helpdesk/internal/api/dto"
	"github.com/gestao-tpt/helpdesk/internal/service"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

// EmpresasHandler manages company endpoints.
type EmpresasHandler struct {
	service *service.EmpresaService
}

// NewEmpresasHandler constructs handler.
func NewEmpresasHandler(empresaService *service.EmpresaService) *EmpresasHandler {
	return &EmpresasHandler{service: empresaService}
}

// Create POST /empresas.
func (h *EmpresasHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmpresaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	empresa, err := h.service.Criar(c.Context(), req.ToCreateInput())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromEmpresa(empresa)})
}

// List GET /empresas.
func (h *EmpresasHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	empresas, err := h.service.Listar(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromEmpresas(empresas)})
}

// Get GET /empresas/:id.
func (h *EmpresasHandler) Get(c *fiber.Ctx) error {
	empresa, err := h.service.Obter(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromEmpresa(empresa)})
}

// Update PATCH /empresas/:id.
func (h *EmpresasHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateEmpresaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	empresa, err := h.service.Atualizar(c.Context(), c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromEmpresa(empresa)})
}

// Delete DELETE /empresas/:id.
func (h *EmpresasHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Excluir(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

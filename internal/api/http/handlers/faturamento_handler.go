package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gestao-tpt/helpdesk/internal/api/dto"
	"github.com/gestao-tpt/helpdesk/internal/export"
	"github.com/gestao-tpt/helpdesk/internal/service"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

// FaturamentoHandler manages invoice endpoints, the period rollup and the
// file exports.
type FaturamentoHandler struct {
	service *service.FaturamentoService
}

// NewFaturamentoHandler constructs handler.
func NewFaturamentoHandler(faturamentoService *service.FaturamentoService) *FaturamentoHandler {
	return &FaturamentoHandler{service: faturamentoService}
}

// Create POST /faturamento.
func (h *FaturamentoHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFaturamentoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	faturamento, err := h.service.Criar(c.Context(), req.ToCreateInput())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromFaturamento(faturamento)})
}

// List GET /faturamento. Defaults to the current billing period.
func (h *FaturamentoHandler) List(c *fiber.Ctx) error {
	input, err := h.listInput(c)
	if err != nil {
		return err
	}
	linhas, err := h.service.Listar(c.Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromFaturamentoLinhas(linhas)})
}

// Resumo GET /faturamento/resumo.
func (h *FaturamentoHandler) Resumo(c *fiber.Ctx) error {
	var mes, empresaID *string
	if v := c.Query("mes_referencia"); v != "" {
		mes = &v
	}
	if v := c.Query("empresa_id"); v != "" {
		empresaID = &v
	}
	resumo, err := h.service.Resumo(c.Context(), mes, empresaID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromFaturamentoResumo(resumo)})
}

// Get GET /faturamento/:id.
func (h *FaturamentoHandler) Get(c *fiber.Ctx) error {
	faturamento, err := h.service.Obter(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromFaturamento(faturamento)})
}

// Update PATCH /faturamento/:id.
func (h *FaturamentoHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateFaturamentoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	faturamento, err := h.service.Atualizar(c.Context(), c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromFaturamento(faturamento)})
}

// UpdateStatus PATCH /faturamento/:id/status.
func (h *FaturamentoHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateFaturamentoStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	faturamento, err := h.service.AtualizarStatus(c.Context(), c.Params("id"), *req.Faturado, req.NumeroNotaFiscal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromFaturamento(faturamento)})
}

// Delete DELETE /faturamento/:id.
func (h *FaturamentoHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Excluir(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export GET /faturamento/export/:formato. Supported formats: csv, json,
// xlsx.
func (h *FaturamentoHandler) Export(c *fiber.Ctx) error {
	input, err := h.listInput(c)
	if err != nil {
		return err
	}
	mes, linhas, err := h.service.LinhasParaExport(c.Context(), input)
	if err != nil {
		return err
	}

	switch c.Params("formato") {
	case "csv":
		content, err := export.FaturamentoCSV(linhas)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, exportFileName(mes, "csv"))
		return c.Send(content)
	case "json":
		content, err := json.Marshal(fiber.Map{
			"mes_referencia": mes,
			"total":          len(linhas),
			"items":          dto.FromFaturamentoLinhas(linhas),
		})
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Set(fiber.HeaderContentDisposition, exportFileName(mes, "json"))
		return c.Send(content)
	case "xlsx":
		content, err := export.FaturamentoXLSX(mes, linhas)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, exportFileName(mes, "xlsx"))
		return c.Send(content)
	default:
		return apperrors.NewValidationError("Formato inválido. Use: csv, json, xlsx", nil)
	}
}

func (h *FaturamentoHandler) listInput(c *fiber.Ctx) (service.FaturamentoListInput, error) {
	input := service.FaturamentoListInput{
		Limit:  c.QueryInt("limit", 100),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("mes_referencia"); v != "" {
		input.MesReferencia = &v
	}
	if v := c.Query("empresa_id"); v != "" {
		input.EmpresaID = &v
	}
	faturado, err := parseFaturadoFilter(c.Query("faturado"))
	if err != nil {
		return service.FaturamentoListInput{}, err
	}
	input.Faturado = faturado
	return input, nil
}

// parseFaturadoFilter interprets the faturado query param. Empty means no
// filter; anything strconv.ParseBool rejects is a validation error.
func parseFaturadoFilter(value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	faturado, err := strconv.ParseBool(value)
	if err != nil {
		return nil, apperrors.NewValidationError("Filtro faturado inválido. Use true ou false", nil)
	}
	return &faturado, nil
}

func exportFileName(mes, ext string) string {
	return fmt.Sprintf(`attachment; filename="faturamento-%s.%s"`, mes, ext)
}

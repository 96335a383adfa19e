package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/application/reports"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

// ReportHandler maneja los reportes contables y los ajustes manuales.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func toAdjustmentResponse(a *entity.CashAdjustment) dto.AdjustmentResponse {
	out := dto.AdjustmentResponse{
		ID:             a.ID,
		AdjustmentType: a.Type,
		Adjustment:     a.Adjustment,
		PreviousAmount: a.PreviousAmount,
		NewAmount:      a.NewAmount,
		CreatedAt:      a.AdjustedAt,
	}
	if a.Reason != nil {
		out.Reason = *a.Reason
	}
	return out
}

// ProfitBreakdown godoc
// @Summary      Desglose de ganancias por recuperación de costo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ProfitBreakdownResponse
// @Router       /api/reports/profit-breakdown [get]
func (h *ReportHandler) ProfitBreakdown(c *fiber.Ctx) error {
	out, err := h.uc.ProfitBreakdown(c.Context(), queryDate(c, "start_date"), queryDate(c, "end_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FinancialSummary godoc
// @Summary      Resumen financiero del negocio
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.FinancialSummaryResponse
// @Router       /api/dashboard/financial [get]
func (h *ReportHandler) FinancialSummary(c *fiber.Ctx) error {
	out, err := h.uc.FinancialSummary(c.Context(), queryDate(c, "start_date"), queryDate(c, "end_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordAdjustment godoc
// @Summary      Registrar ajuste manual de caja o capital
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordAdjustmentRequest  true  "Tipo y monto deseado"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/adjustments [post]
func (h *ReportHandler) RecordAdjustment(c *fiber.Ctx) error {
	var in dto.RecordAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, err := h.uc.RecordCashAdjustment(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentResponse(adj))
}

// ListAdjustments godoc
// @Summary      Listar ajustes manuales
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  false  "liquid_cash | capital"
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /api/dashboard/adjustments [get]
func (h *ReportHandler) ListAdjustments(c *fiber.Ctx) error {
	var adjType *string
	if raw := c.Query("type"); raw != "" {
		adjType = &raw
	}
	list, err := h.uc.ListAdjustments(c.Context(), adjType)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAdjustmentResponse(a))
	}
	return c.JSON(out)
}

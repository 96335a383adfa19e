package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/application/ledger"
	"github.com/jhoicas/mumi-pos-api/internal/application/reports"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

// LedgerHandler maneja los libros de gastos e inversiones.
type LedgerHandler struct {
	uc      *ledger.UseCase
	reports *reports.UseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.UseCase, reports *reports.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, reports: reports}
}

func toExpenseResponse(e *entity.Expense) dto.ExpenseResponse {
	out := dto.ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
	}
	if e.Category != nil {
		out.Category = *e.Category
	}
	return out
}

func toInvestmentResponse(inv *entity.Investment) dto.InvestmentResponse {
	return dto.InvestmentResponse{
		ID:               inv.ID,
		Description:      inv.Description,
		Amount:           inv.Amount,
		Origin:           inv.Origin,
		SourceShipmentID: inv.SourceShipmentID,
		InvestmentDate:   inv.InvestmentDate,
		CreatedAt:        inv.CreatedAt,
	}
}

// CreateExpense godoc
// @Summary      Registrar gasto
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Descripción y monto"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *LedgerHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	e, err := h.uc.CreateExpense(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.Status(fiber.StatusCreated).JSON(toExpenseResponse(e))
}

// ListExpenses godoc
// @Summary      Listar gastos
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.ExpenseResponse
// @Router       /api/expenses [get]
func (h *LedgerHandler) ListExpenses(c *fiber.Ctx) error {
	list, err := h.uc.ListExpenses(c.Context(), queryDate(c, "start_date"), queryDate(c, "end_date"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toExpenseResponse(e))
	}
	return c.JSON(out)
}

// DeleteExpense godoc
// @Summary      Eliminar gasto
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del gasto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *LedgerHandler) DeleteExpense(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteExpense(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.JSON(dto.MessageResponse{Message: "gasto eliminado"})
}

// CreateInvestment godoc
// @Summary      Registrar inversión manual de capital
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvestmentRequest  true  "Descripción y monto"
// @Success      201   {object}  dto.InvestmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/investments [post]
func (h *LedgerHandler) CreateInvestment(c *fiber.Ctx) error {
	var in dto.CreateInvestmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.CreateInvestment(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.Status(fiber.StatusCreated).JSON(toInvestmentResponse(inv))
}

// ListInvestments godoc
// @Summary      Listar inversiones
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        include_auto  query  bool  false  "Incluir inversiones de envíos"  default(true)
// @Success      200  {array}  dto.InvestmentResponse
// @Router       /api/investments [get]
func (h *LedgerHandler) ListInvestments(c *fiber.Ctx) error {
	list, err := h.uc.ListInvestments(c.Context(), c.QueryBool("include_auto", true))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InvestmentResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvestmentResponse(inv))
	}
	return c.JSON(out)
}

package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/application/reports"
	"github.com/jhoicas/mumi-pos-api/internal/application/sales"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

// ReceiptGenerator genera el PDF del recibo de una venta.
type ReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale) ([]byte, error)
}

// SaleHandler maneja ventas, abonos y recibos.
type SaleHandler struct {
	uc       *sales.UseCase
	reports  *reports.UseCase
	receipts ReceiptGenerator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase, reports *reports.UseCase, receipts ReceiptGenerator) *SaleHandler {
	return &SaleHandler{uc: uc, reports: reports, receipts: receipts}
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:            s.ID,
		PaymentMethod: s.PaymentMethod,
		SaleDate:      s.SaleDate,
		TotalAmount:   s.TotalAmount,
		AmountPaid:    s.AmountPaid,
		DebtAmount:    s.DebtAmount,
		CreatedAt:     s.CreatedAt,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	if s.CustomerName != nil {
		out.CustomerName = *s.CustomerName
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:          it.ID,
			BatchID:     it.StockBatchID,
			PerfumeID:   it.PerfumeID,
			PerfumeName: it.PerfumeName,
			SaleType:    it.SaleType,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}

// Record godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Líneas, pago y cliente"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.RecordSale(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        with_debt   query  bool    false  "Solo ventas con deuda"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	f := repository.SaleFilter{
		StartDate: queryDate(c, "start_date"),
		EndDate:   queryDate(c, "end_date"),
		WithDebt:  c.QueryBool("with_debt", false),
	}
	list, err := h.uc.ListSales(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta con sus líneas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	sale, err := h.uc.GetSale(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// Receipt godoc
// @Summary      Descargar recibo de venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	sale, err := h.uc.GetSale(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, err := h.receipts.GenerateSaleReceipt(c.Context(), sale)
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="recibo-venta-%d.pdf"`, sale.ID))
	return c.Send(pdfBytes)
}

// RecordDebtPayment godoc
// @Summary      Registrar abono a la deuda de una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la venta"
// @Param        body  body  dto.RecordDebtPaymentRequest  true  "Monto y fecha del abono"
// @Success      201   {object}  dto.DebtPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/debt-payments [post]
func (h *SaleHandler) RecordDebtPayment(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.RecordDebtPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.uc.RecordDebtPayment(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())

	sale, err := h.uc.GetSale(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DebtPaymentResponse{
		ID:            payment.ID,
		SaleID:        payment.SaleID,
		Amount:        payment.AmountPaid,
		PaymentDate:   payment.PaymentDate,
		PaymentMethod: payment.PaymentMethod,
		RemainingDebt: sale.DebtAmount,
	})
}

// ListDebtPayments godoc
// @Summary      Listar abonos de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {array}  dto.DebtPaymentResponse
// @Router       /api/sales/{id}/debt-payments [get]
func (h *SaleHandler) ListDebtPayments(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	payments, err := h.uc.ListDebtPayments(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DebtPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.DebtPaymentResponse{
			ID:            p.ID,
			SaleID:        p.SaleID,
			Amount:        p.AmountPaid,
			PaymentDate:   p.PaymentDate,
			PaymentMethod: p.PaymentMethod,
		})
	}
	return c.JSON(out)
}

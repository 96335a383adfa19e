package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/application/reports"
	"github.com/jhoicas/mumi-pos-api/internal/application/stock"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

// StockHandler maneja envíos, lotes y el ciclo de vida de las botellas.
type StockHandler struct {
	uc      *stock.UseCase
	reports *reports.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase, reports *reports.UseCase) *StockHandler {
	return &StockHandler{uc: uc, reports: reports}
}

func toStockRowResponse(r *repository.StockOverviewRow) dto.StockRowResponse {
	return dto.StockRowResponse{
		ID:                     r.BatchID,
		ShipmentID:             r.ShipmentID,
		PerfumeID:              r.PerfumeID,
		PerfumeName:            r.PerfumeName,
		Quantity:               r.Quantity,
		BuyingCostPerBottle:    r.BuyingCostPerBottle,
		SubtotalCost:           r.SubtotalCost,
		RemainingQuantity:      r.RemainingQuantity,
		PurchaseDate:           r.PurchaseDate,
		ShipmentName:           r.ShipmentName,
		TransportCost:          r.TransportCost,
		OtherExpenses:          r.OtherExpenses,
		FundedFrom:             r.FundedFrom,
		DecantsSold:            r.DecantsSold,
		BottlesSold:            r.BottlesSold,
		BottlesDone:            r.BottlesDone,
		CompletedBottleDecants: r.CompletedBottleDecants,
	}
}

func toBottleLogResponse(l *entity.DecantBottleLog) dto.BottleLogResponse {
	return dto.BottleLogResponse{
		ID:               l.ID,
		BatchID:          l.StockBatchID,
		PerfumeID:        l.PerfumeID,
		BottleSequence:   l.BottleSequence,
		DecantsObtained:  l.DecantsObtained,
		CompletionSource: l.CompletionSource,
		CompletedAt:      l.CompletedAt,
	}
}

func toDeletedBottleResponse(d *entity.DeletedBottle) dto.DeletedBottleResponse {
	out := dto.DeletedBottleResponse{
		ID:              d.ID,
		BatchID:         d.StockBatchID,
		PerfumeID:       d.PerfumeID,
		QuantityRemoved: d.QuantityRemoved,
		Reason:          d.Reason,
		RemovedAt:       d.RemovedAt,
	}
	if d.Note != nil {
		out.Note = *d.Note
	}
	return out
}

// CreateShipment godoc
// @Summary      Registrar envío de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Lotes y gastos del envío"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) CreateShipment(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sh, err := h.uc.CreateShipment(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": sh.ID, "message": "envío registrado"})
}

// UpdateShipment godoc
// @Summary      Editar envío (lotes, gastos, fondeo)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del envío"
// @Param        body  body  dto.UpdateShipmentRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [put]
func (h *StockHandler) UpdateShipment(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, err := h.uc.UpdateShipment(c.Context(), id, in); err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.JSON(dto.MessageResponse{Message: "envío actualizado"})
}

// DeleteShipment godoc
// @Summary      Eliminar envío (solo sin ventas)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del envío"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) DeleteShipment(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteShipment(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.JSON(dto.MessageResponse{Message: "envío eliminado"})
}

// DeleteBatch godoc
// @Summary      Eliminar lote individual (solo sin ventas)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del lote"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/batches/{id} [delete]
func (h *StockHandler) DeleteBatch(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteBatch(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.JSON(dto.MessageResponse{Message: "lote eliminado"})
}

// ListStock godoc
// @Summary      Listar stock con contadores de decantación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        perfume_id  query  int  false  "Filtrar por perfume"
// @Success      200  {array}  dto.StockRowResponse
// @Router       /api/stock [get]
func (h *StockHandler) ListStock(c *fiber.Ctx) error {
	rows, err := h.uc.ListStock(c.Context(), queryInt64(c, "perfume_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toStockRowResponse(r))
	}
	return c.JSON(out)
}

// MarkBottleDone godoc
// @Summary      Registrar una botella terminada manualmente
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MarkBottleDoneRequest  true  "Lote y rendimiento"
// @Success      200   {object}  dto.MarkBottleDoneResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/mark-bottle-done [post]
func (h *StockHandler) MarkBottleDone(c *fiber.Ctx) error {
	var in dto.MarkBottleDoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.MarkBottleDone(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkOutOfStock godoc
// @Summary      Retirar todas las botellas restantes de un lote
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MarkOutOfStockRequest  true  "Lote y nota opcional"
// @Success      200   {object}  dto.DeletedBottleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/mark-out-of-stock [post]
func (h *StockHandler) MarkOutOfStock(c *fiber.Ctx) error {
	var in dto.MarkOutOfStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deleted, err := h.uc.MarkOutOfStock(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.JSON(toDeletedBottleResponse(deleted))
}

// ListBottleLogs godoc
// @Summary      Listar botellas terminadas de un lote
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del lote"
// @Success      200  {array}  dto.BottleLogResponse
// @Router       /api/stock/batches/{id}/bottle-logs [get]
func (h *StockHandler) ListBottleLogs(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	logs, err := h.uc.ListBottleLogs(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BottleLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toBottleLogResponse(l))
	}
	return c.JSON(out)
}

// ListDeletedBottles godoc
// @Summary      Listar retiros de botellas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DeletedBottleResponse
// @Router       /api/stock/deleted-bottles [get]
func (h *StockHandler) ListDeletedBottles(c *fiber.Ctx) error {
	list, err := h.uc.ListDeletedBottles(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DeletedBottleResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDeletedBottleResponse(d))
	}
	return c.JSON(out)
}

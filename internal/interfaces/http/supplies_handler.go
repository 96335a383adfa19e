package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/application/reports"
	"github.com/jhoicas/mumi-pos-api/internal/application/supplies"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

// SuppliesHandler maneja el inventario auxiliar de consumibles.
type SuppliesHandler struct {
	uc      *supplies.UseCase
	reports *reports.UseCase
}

// NewSuppliesHandler construye el handler.
func NewSuppliesHandler(uc *supplies.UseCase, reports *reports.UseCase) *SuppliesHandler {
	return &SuppliesHandler{uc: uc, reports: reports}
}

func toCategoryResponse(cat *entity.CustomInventoryCategory) dto.CategoryResponse {
	out := dto.CategoryResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		IsActive:  cat.IsActive,
		CreatedAt: cat.CreatedAt,
	}
	if cat.Description != nil {
		out.Description = *cat.Description
	}
	return out
}

func toStockEntryResponse(e *entity.CustomInventoryStockEntry) dto.StockEntryResponse {
	out := dto.StockEntryResponse{
		ID:                e.ID,
		ItemID:            e.ItemID,
		ShipmentID:        e.ShipmentID,
		QuantityAdded:     e.QuantityAdded,
		RemainingQuantity: e.RemainingQuantity,
		UnitCost:          e.UnitCost,
		PurchaseDate:      e.PurchaseDate,
	}
	if e.Note != nil {
		out.Note = *e.Note
	}
	return out
}

// ListCategories godoc
// @Summary      Listar categorías de consumibles
// @Tags         custom-inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/custom-inventory/categories [get]
func (h *SuppliesHandler) ListCategories(c *fiber.Ctx) error {
	list, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		out = append(out, toCategoryResponse(cat))
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría de consumibles
// @Tags         custom-inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre snake_case"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/custom-inventory/categories [post]
func (h *SuppliesHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.uc.CreateCategory(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCategoryResponse(cat))
}

// ListItems godoc
// @Summary      Listar ítems con disponibilidad
// @Tags         custom-inventory
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/custom-inventory/items [get]
func (h *SuppliesHandler) ListItems(c *fiber.Ctx) error {
	var category *string
	if raw := c.Query("category"); raw != "" {
		category = &raw
	}
	out, err := h.uc.ListItems(c.Context(), category)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateItem godoc
// @Summary      Crear ítem de consumible
// @Tags         custom-inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Nombre y categoría"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/custom-inventory/items [post]
func (h *SuppliesHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Category:  item.Category,
		DefaultML: item.DefaultML,
		IsActive:  item.IsActive,
		CreatedAt: item.CreatedAt,
	}
	if item.UnitLabel != nil {
		out.UnitLabel = *item.UnitLabel
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateStockEntry godoc
// @Summary      Registrar compra de consumible (fuera de envíos)
// @Tags         custom-inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockEntryRequest  true  "Ítem, cantidad y costo"
// @Success      201   {object}  dto.StockEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/custom-inventory/stock [post]
func (h *SuppliesHandler) CreateStockEntry(c *fiber.Ctx) error {
	var in dto.CreateStockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	e, err := h.uc.CreateStockEntry(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.Status(fiber.StatusCreated).JSON(toStockEntryResponse(e))
}

// ListStockEntries godoc
// @Summary      Listar compras de consumibles
// @Tags         custom-inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  int  false  "Filtrar por ítem"
// @Success      200  {array}  dto.StockEntryResponse
// @Router       /api/custom-inventory/stock [get]
func (h *SuppliesHandler) ListStockEntries(c *fiber.Ctx) error {
	list, err := h.uc.ListStockEntries(c.Context(), queryInt64(c, "item_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toStockEntryResponse(e))
	}
	return c.JSON(out)
}

// DeleteStockEntry godoc
// @Summary      Eliminar compra de consumible (solo sin consumo)
// @Tags         custom-inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/custom-inventory/stock/{id} [delete]
func (h *SuppliesHandler) DeleteStockEntry(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteStockEntry(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.JSON(dto.MessageResponse{Message: "entrada eliminada"})
}

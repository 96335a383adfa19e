// Package supplies administra el inventario auxiliar de consumibles: envases
// de decant, polietilenos y empaques, con su libro de compras consumido FIFO
// por las ventas de decants.
package supplies

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

type UseCase struct {
	customRepo repository.CustomInventoryRepository
}

func NewUseCase(customRepo repository.CustomInventoryRepository) *UseCase {
	return &UseCase{customRepo: customRepo}
}

// ListCategories categorías activas.
func (uc *UseCase) ListCategories(ctx context.Context) ([]*entity.CustomInventoryCategory, error) {
	return uc.customRepo.ListCategories(ctx)
}

// CreateCategory da de alta una categoría.
func (uc *UseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*entity.CustomInventoryCategory, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.CustomInventoryCategory{Name: in.Name, IsActive: true}
	if in.Description != "" {
		desc := in.Description
		c.Description = &desc
	}
	if err := uc.customRepo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListItems ítems, opcionalmente por categoría, con disponibilidad agregada.
func (uc *UseCase) ListItems(ctx context.Context, category *string) ([]dto.ItemResponse, error) {
	items, err := uc.customRepo.ListItems(ctx, category)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		available, err := uc.customRepo.AvailableForItem(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		resp := dto.ItemResponse{
			ID:        it.ID,
			Name:      it.Name,
			Category:  it.Category,
			DefaultML: it.DefaultML,
			IsActive:  it.IsActive,
			Available: available,
			CreatedAt: it.CreatedAt,
		}
		if it.UnitLabel != nil {
			resp.UnitLabel = *it.UnitLabel
		}
		out = append(out, resp)
	}
	return out, nil
}

// CreateItem da de alta un consumible.
func (uc *UseCase) CreateItem(ctx context.Context, in dto.CreateItemRequest) (*entity.CustomInventoryItem, error) {
	if in.Name == "" || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.CustomInventoryItem{
		Name:      in.Name,
		Category:  in.Category,
		DefaultML: in.DefaultML,
		IsActive:  true,
	}
	if in.UnitLabel != "" {
		label := in.UnitLabel
		item.UnitLabel = &label
	}
	if err := uc.customRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// CreateStockEntry registra una compra suelta de consumible (sin envío).
func (uc *UseCase) CreateStockEntry(ctx context.Context, in dto.CreateStockEntryRequest) (*entity.CustomInventoryStockEntry, error) {
	if in.QuantityAdded <= 0 || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.customRepo.GetItem(ctx, in.ItemID); err != nil {
		return nil, err
	}
	date, err := parseDateOrToday(in.PurchaseDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	entry := &entity.CustomInventoryStockEntry{
		ItemID:            in.ItemID,
		QuantityAdded:     in.QuantityAdded,
		RemainingQuantity: in.QuantityAdded,
		UnitCost:          in.UnitCost,
		PurchaseDate:      date,
	}
	if in.Note != "" {
		note := in.Note
		entry.Note = &note
	}
	if err := uc.customRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListStockEntries compras de consumibles, opcionalmente por ítem.
func (uc *UseCase) ListStockEntries(ctx context.Context, itemID *int64) ([]*entity.CustomInventoryStockEntry, error) {
	return uc.customRepo.ListEntries(ctx, itemID)
}

// DeleteStockEntry elimina una compra que aún no fue consumida.
func (uc *UseCase) DeleteStockEntry(ctx context.Context, id int64) error {
	entries, err := uc.customRepo.ListEntries(ctx, nil)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.ID != id {
			continue
		}
		if e.ConsumedQuantity() > 0 {
			return domain.ErrConflict
		}
		return uc.customRepo.DeleteEntry(ctx, id)
	}
	return domain.ErrNotFound
}

func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

// CustomInventoryRepository puerto del inventario auxiliar de consumibles
// (envases de decant, empaques) con su propio libro de entradas de stock.
type CustomInventoryRepository interface {
	ListCategories(ctx context.Context) ([]*entity.CustomInventoryCategory, error)
	CreateCategory(ctx context.Context, c *entity.CustomInventoryCategory) error

	ListItems(ctx context.Context, category *string) ([]*entity.CustomInventoryItem, error)
	GetItem(ctx context.Context, id int64) (*entity.CustomInventoryItem, error)
	CreateItem(ctx context.Context, item *entity.CustomInventoryItem) error

	CreateEntry(ctx context.Context, e *entity.CustomInventoryStockEntry) error
	UpdateEntry(ctx context.Context, e *entity.CustomInventoryStockEntry) error
	DeleteEntry(ctx context.Context, id int64) error
	ListEntries(ctx context.Context, itemID *int64) ([]*entity.CustomInventoryStockEntry, error)
	ListEntriesByShipment(ctx context.Context, shipmentID int64) ([]*entity.CustomInventoryStockEntry, error)
	DeleteEntriesByShipment(ctx context.Context, shipmentID int64) error

	// AvailableForItem stock disponible del ítem (Σ remaining_quantity de
	// entradas abiertas; solo ítems activos de categoría decant_bottle).
	AvailableForItem(ctx context.Context, itemID int64) (int, error)
	// ListOpenEntriesFIFO entradas con stock > 0 ordenadas por purchase_date ASC,
	// desempate por id ASC: el orden de consumo FIFO.
	ListOpenEntriesFIFO(ctx context.Context, itemID int64) ([]*entity.CustomInventoryStockEntry, error)
	// DecrementEntry resta qty de remaining_quantity de una entrada.
	DecrementEntry(ctx context.Context, entryID int64, qty int) error

	// SumEntriesCostByShipment Σ (quantity_added × unit_cost) de las entradas del envío.
	SumEntriesCostByShipment(ctx context.Context, shipmentID int64) (decimal.Decimal, error)
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest body para POST /api/custom-inventory/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"` // identificador snake_case
	Description string `json:"description,omitempty"`
}

// CategoryResponse una categoría de inventario auxiliar.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateItemRequest body para POST /api/custom-inventory/items.
type CreateItemRequest struct {
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	UnitLabel string           `json:"unit_label,omitempty"`
	DefaultML *decimal.Decimal `json:"default_ml,omitempty"`
}

// ItemResponse un ítem auxiliar con su disponibilidad agregada.
type ItemResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	UnitLabel string           `json:"unit_label,omitempty"`
	DefaultML *decimal.Decimal `json:"default_ml,omitempty"`
	IsActive  bool             `json:"is_active"`
	Available int              `json:"available"`
	CreatedAt time.Time        `json:"created_at"`
}

// CreateStockEntryRequest body para POST /api/custom-inventory/stock.
type CreateStockEntryRequest struct {
	ItemID        int64           `json:"item_id"`
	QuantityAdded int             `json:"quantity_added"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	PurchaseDate  string          `json:"purchase_date,omitempty"`
	Note          string          `json:"note,omitempty"`
}

// StockEntryResponse una compra de ítem auxiliar.
type StockEntryResponse struct {
	ID                int64           `json:"id"`
	ItemID            int64           `json:"item_id"`
	ItemName          string          `json:"item_name,omitempty"`
	ShipmentID        *int64          `json:"shipment_id,omitempty"`
	QuantityAdded     int             `json:"quantity_added"`
	RemainingQuantity int             `json:"remaining_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	Note              string          `json:"note,omitempty"`
}

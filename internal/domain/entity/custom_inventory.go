package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryDecantBottle es la categoría de los envases consumidos por ventas decant.
const CategoryDecantBottle = "decant_bottle"

// CustomInventoryCategory clasifica los consumibles auxiliares
// (envases de decant, polietilenos, empaques).
type CustomInventoryCategory struct {
	ID          int64
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
}

// CustomInventoryItem es un consumible concreto (ej. "Decant Bottle 10ml").
type CustomInventoryItem struct {
	ID        int64
	Name      string
	Category  string
	UnitLabel *string
	DefaultML *decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
}

// CustomInventoryStockEntry es una compra de consumible, consumida FIFO por
// fecha de compra (desempate por id) cuando se venden decants.
type CustomInventoryStockEntry struct {
	ID                int64
	ShipmentID        *int64
	ItemID            int64
	QuantityAdded     int
	RemainingQuantity int
	UnitCost          decimal.Decimal
	PurchaseDate      time.Time
	Note              *string
	CreatedAt         time.Time
}

// ConsumedQuantity unidades ya consumidas de la entrada.
func (e *CustomInventoryStockEntry) ConsumedQuantity() int {
	c := e.QuantityAdded - e.RemainingQuantity
	if c < 0 {
		return 0
	}
	return c
}

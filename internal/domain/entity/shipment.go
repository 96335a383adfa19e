package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de fondos de un envío.
const (
	FundedFromSales   = "sales"   // re-inversión de ventas previas
	FundedFromCapital = "capital" // inyección de capital externo
)

// Shipment agrupa los lotes de perfumes y las entradas de inventario auxiliar
// compradas juntas, compartiendo los gastos de logística.
type Shipment struct {
	ID                      int64
	Name                    *string
	TransportCost           decimal.Decimal
	OtherExpenses           decimal.Decimal
	TotalAdditionalExpenses decimal.Decimal // transport + other
	PurchaseDate            time.Time
	FundedFrom              string
	CreatedAt               time.Time
}

// StockBatch es la unidad de contabilidad de recuperación de costo: su
// SubtotalCost es lo que debe recuperarse antes de que la venta genere ganancia.
// Invariante: 0 <= RemainingQuantity <= Quantity.
type StockBatch struct {
	ID                  int64
	ShipmentID          int64
	PerfumeID           int64
	Quantity            int
	BuyingCostPerBottle decimal.Decimal
	SubtotalCost        decimal.Decimal // Quantity × BuyingCostPerBottle
	RemainingQuantity   int
	CreatedAt           time.Time
}

// BottlesSoldWhole devuelve las botellas vendidas completas desde el lote
// según el delta comprado-restante (usado al validar ediciones de envío).
func (b *StockBatch) BottlesSoldWhole() int {
	sold := b.Quantity - b.RemainingQuantity
	if sold < 0 {
		return 0
	}
	return sold
}

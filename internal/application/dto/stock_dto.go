package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentBatchInput un lote dentro de la creación o edición de un envío.
type ShipmentBatchInput struct {
	ID                  *int64          `json:"id,omitempty"` // presente al editar lotes existentes
	PerfumeID           int64           `json:"perfume_id"`
	Quantity            int             `json:"quantity"`
	BuyingCostPerBottle decimal.Decimal `json:"buying_cost_per_bottle"`
}

// CustomStockInput entrada de inventario auxiliar comprada junto al envío.
type CustomStockInput struct {
	ID            *int64          `json:"id,omitempty"` // presente al editar entradas existentes
	ItemID        int64           `json:"item_id"`
	QuantityAdded int             `json:"quantity_added"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
}

// CreateShipmentRequest body para POST /api/stock.
type CreateShipmentRequest struct {
	ShipmentName  string               `json:"shipment_name,omitempty"`
	PurchaseDate  string               `json:"purchase_date,omitempty"` // YYYY-MM-DD, hoy si falta
	TransportCost decimal.Decimal      `json:"transport_cost"`
	OtherExpenses decimal.Decimal      `json:"other_expenses"`
	FundedFrom    string               `json:"funded_from,omitempty"` // sales | capital
	Batches       []ShipmentBatchInput `json:"batches"`
	CustomStock   []CustomStockInput   `json:"custom_stock,omitempty"`
}

// UpdateShipmentRequest body para PUT /api/stock/:id.
type UpdateShipmentRequest struct {
	ShipmentName  *string              `json:"shipment_name,omitempty"`
	PurchaseDate  *string              `json:"purchase_date,omitempty"`
	TransportCost *decimal.Decimal     `json:"transport_cost,omitempty"`
	OtherExpenses *decimal.Decimal     `json:"other_expenses,omitempty"`
	FundedFrom    *string              `json:"funded_from,omitempty"`
	Batches       []ShipmentBatchInput `json:"batches,omitempty"`
	CustomStock   []CustomStockInput   `json:"custom_stock,omitempty"`
}

// StockRowResponse fila del listado GET /api/stock.
type StockRowResponse struct {
	ID                     int64           `json:"id"`
	ShipmentID             int64           `json:"shipment_id"`
	PerfumeID              int64           `json:"perfume_id"`
	PerfumeName            string          `json:"perfume_name"`
	Quantity               int             `json:"quantity"`
	BuyingCostPerBottle    decimal.Decimal `json:"buying_cost_per_bottle"`
	SubtotalCost           decimal.Decimal `json:"subtotal_cost"`
	RemainingQuantity      int             `json:"remaining_quantity"`
	PurchaseDate           time.Time       `json:"purchase_date"`
	ShipmentName           *string         `json:"shipment_name"`
	TransportCost          decimal.Decimal `json:"transport_cost"`
	OtherExpenses          decimal.Decimal `json:"other_expenses"`
	FundedFrom             string          `json:"funded_from"`
	DecantsSold            int             `json:"decants_sold"`
	BottlesSold            int             `json:"bottles_sold"`
	BottlesDone            int             `json:"bottles_done"`
	CompletedBottleDecants int             `json:"completed_bottle_decants"`
}

// MarkBottleDoneRequest body para POST /api/stock/mark-bottle-done.
type MarkBottleDoneRequest struct {
	BatchID         int64 `json:"batch_id"`
	DecantsObtained *int  `json:"decants_obtained,omitempty"`
}

// MarkBottleDoneResponse resultado de completar una botella manualmente.
type MarkBottleDoneResponse struct {
	BatchID         int64 `json:"batch_id"`
	BottleSequence  int   `json:"bottle_sequence"`
	DecantsObtained int   `json:"decants_obtained"`
	BottlesDone     int   `json:"bottles_done"`
}

// MarkOutOfStockRequest body para POST /api/stock/mark-out-of-stock.
type MarkOutOfStockRequest struct {
	BatchID  int64  `json:"batch_id"`
	Quantity int    `json:"quantity,omitempty"` // botellas a retirar; 1 si falta
	Notes    string `json:"notes,omitempty"`
}

// BottleLogResponse un registro de botella terminada.
type BottleLogResponse struct {
	ID               int64     `json:"id"`
	BatchID          int64     `json:"batch_id"`
	PerfumeID        int64     `json:"perfume_id"`
	BottleSequence   int       `json:"bottle_sequence"`
	DecantsObtained  int       `json:"decants_obtained"`
	CompletionSource string    `json:"completion_source"`
	CompletedAt      time.Time `json:"completed_at"`
}

// DeletedBottleResponse un retiro de botellas del inventario.
type DeletedBottleResponse struct {
	ID              int64     `json:"id"`
	BatchID         int64     `json:"batch_id"`
	PerfumeID       int64     `json:"perfume_id"`
	QuantityRemoved int       `json:"quantity_removed"`
	Reason          string    `json:"reason"`
	Note            string    `json:"note,omitempty"`
	RemovedAt       time.Time `json:"removed_at"`
}

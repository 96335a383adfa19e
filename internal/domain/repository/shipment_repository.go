package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

// ShipmentRepository puerto de envíos (compras agrupadas).
type ShipmentRepository interface {
	Create(ctx context.Context, s *entity.Shipment) error
	GetByID(ctx context.Context, id int64) (*entity.Shipment, error)
	Update(ctx context.Context, s *entity.Shipment) error
	Delete(ctx context.Context, id int64) error
}

// StockBatchRepository puerto de lotes de stock (tabla stock_batches).
type StockBatchRepository interface {
	Create(ctx context.Context, b *entity.StockBatch) error
	GetByID(ctx context.Context, id int64) (*entity.StockBatch, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(ctx context.Context, id int64) (*entity.StockBatch, error)
	ListByShipment(ctx context.Context, shipmentID int64) ([]*entity.StockBatch, error)
	// Update reescribe perfume, cantidades y costos del lote (edición de envío).
	Update(ctx context.Context, b *entity.StockBatch) error
	// DecrementRemaining resta qty de remaining_quantity (venta full_bottle o retiro).
	DecrementRemaining(ctx context.Context, id int64, qty int) error
	Delete(ctx context.Context, id int64) error
	// SalesCount cuenta las líneas de venta que referencian al lote.
	SalesCount(ctx context.Context, id int64) (int, error)
	// SalesCountByShipment cuenta líneas de venta sobre cualquier lote del envío.
	SalesCountByShipment(ctx context.Context, shipmentID int64) (int, error)
	// SubtotalCostByShipment Σ subtotal_cost de los lotes del envío.
	SubtotalCostByShipment(ctx context.Context, shipmentID int64) (decimal.Decimal, error)
}

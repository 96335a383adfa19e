package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

// ExpenseRepository puerto del libro de gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	List(ctx context.Context, start, end *time.Time) ([]*entity.Expense, error)
	Delete(ctx context.Context, id int64) error
}

// InvestmentRepository puerto de inversiones. Las filas shipment_capital son
// mantenidas por la sincronización de envíos: a lo sumo una por envío.
type InvestmentRepository interface {
	Create(ctx context.Context, inv *entity.Investment) error
	Update(ctx context.Context, inv *entity.Investment) error
	List(ctx context.Context, includeAuto bool) ([]*entity.Investment, error)
	// GetByShipment devuelve la inversión shipment_capital del envío, o nil
	// (sin error) si no existe.
	GetByShipment(ctx context.Context, shipmentID int64) (*entity.Investment, error)
	DeleteByShipment(ctx context.Context, shipmentID int64) error
	// FindLegacyManualByDescription localiza una inversión manual creada por
	// versiones previas del sync (match exacto de descripción) para adoptarla.
	// Devuelve nil (sin error) si no hay coincidencia.
	FindLegacyManualByDescription(ctx context.Context, description string) (*entity.Investment, error)
}

// AdjustmentRepository puerto de ajustes manuales de caja/capital.
type AdjustmentRepository interface {
	Create(ctx context.Context, a *entity.CashAdjustment) error
	List(ctx context.Context, adjType *string) ([]*entity.CashAdjustment, error)
	SumAdjustments(ctx context.Context, adjType string) (decimal.Decimal, error)
}

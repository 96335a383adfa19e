package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

// SaleFilter filtros para listar ventas.
type SaleFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	WithDebt  bool
}

// SaleRepository puerto de ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, error)
	ListItems(ctx context.Context, saleID int64) ([]entity.SaleItem, error)
	// ApplyDebtPayment suma amount a amount_paid y lo resta de debt_amount.
	ApplyDebtPayment(ctx context.Context, saleID int64, amount decimal.Decimal) error
}

// DebtPaymentRepository puerto de abonos a deudas.
type DebtPaymentRepository interface {
	Create(ctx context.Context, p *entity.DebtPayment) error
	ListBySale(ctx context.Context, saleID int64) ([]*entity.DebtPayment, error)
}

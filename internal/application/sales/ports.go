package sales

import (
	"context"

	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre la venta, los
// contadores de decants y el consumo de envases.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		batchRepo repository.StockBatchRepository,
		decantRepo repository.DecantRepository,
		customRepo repository.CustomInventoryRepository,
		debtRepo repository.DebtPaymentRepository,
	) error) error
}

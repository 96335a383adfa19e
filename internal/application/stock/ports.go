package stock

import (
	"context"

	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Un envío, sus lotes, sus entradas auxiliares y
// su inversión sincronizada se escriben o se revierten juntos.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		shipmentRepo repository.ShipmentRepository,
		batchRepo repository.StockBatchRepository,
		decantRepo repository.DecantRepository,
		customRepo repository.CustomInventoryRepository,
		investmentRepo repository.InvestmentRepository,
	) error) error
}

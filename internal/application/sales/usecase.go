package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

// UseCase registra ventas de forma transaccional: valida stock, crea la venta
// con sus líneas, actualiza contadores de decantación, deriva botellas
// terminadas y consume envases FIFO. Todo dentro de una sola transacción.
type UseCase struct {
	txRunner    TxRunner
	perfumeRepo repository.PerfumeRepository
	saleRepo    repository.SaleRepository
	debtRepo    repository.DebtPaymentRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	perfumeRepo repository.PerfumeRepository,
	saleRepo repository.SaleRepository,
	debtRepo repository.DebtPaymentRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		perfumeRepo: perfumeRepo,
		saleRepo:    saleRepo,
		debtRepo:    debtRepo,
	}
}

// RecordSale valida la entrada, abre la transacción y registra la venta.
// Devuelve la venta creada con sus líneas.
func (uc *UseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*entity.Sale, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.AmountPaid.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	total := decimal.Zero
	for _, item := range in.Items {
		if item.Quantity <= 0 || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		switch item.SaleType {
		case entity.SaleTypeFullBottle:
			// ok
		case entity.SaleTypeDecant:
			if item.DecantBottleItemID == nil {
				return nil, domain.ErrInvalidInput
			}
		default:
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	// No se acepta pagar de más: el exceso no tiene asiento donde vivir.
	if in.AmountPaid.GreaterThan(total) {
		return nil, domain.ErrInvalidInput
	}

	saleDate, err := parseDateOrToday(in.SaleDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	sale := &entity.Sale{
		PaymentMethod: in.PaymentMethod,
		TotalAmount:   total,
		AmountPaid:    in.AmountPaid,
		DebtAmount:    total.Sub(in.AmountPaid),
		SaleDate:      saleDate,
	}
	if in.CustomerName != "" {
		name := in.CustomerName
		sale.CustomerName = &name
	}

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		batchRepo repository.StockBatchRepository,
		decantRepo repository.DecantRepository,
		customRepo repository.CustomInventoryRepository,
		_ repository.DebtPaymentRepository,
	) error {
		// Primero se valida todo contra filas bloqueadas; nada se escribe
		// hasta que cada línea es viable.
		batches := make(map[int64]*entity.StockBatch, len(in.Items))
		containerNeeds := make(map[int64]int)
		for _, item := range in.Items {
			batch, ok := batches[item.BatchID]
			if !ok {
				var lockErr error
				batch, lockErr = batchRepo.GetForUpdate(ctx, item.BatchID)
				if lockErr != nil {
					return lockErr
				}
				batches[item.BatchID] = batch
			}

			tracking, err := decantRepo.GetTracking(ctx, batch.ID)
			if err != nil {
				return err
			}

			switch item.SaleType {
			case entity.SaleTypeFullBottle:
				// Un lote ya decantado no vende botellas completas: las
				// unidades restantes están comprometidas como fuente de decants.
				if tracking != nil && tracking.DecantsSold > 0 {
					return domain.ErrConflict
				}
				if batch.RemainingQuantity < item.Quantity {
					return domain.ErrInsufficientStock
				}
			case entity.SaleTypeDecant:
				// Varias líneas pueden compartir envase: la disponibilidad se
				// valida sobre el total requerido por ítem, no por línea.
				containerNeeds[*item.DecantBottleItemID] += item.Quantity
			}
		}

		for itemID, needed := range containerNeeds {
			available, err := customRepo.AvailableForItem(ctx, itemID)
			if err != nil {
				return err
			}
			if available < needed {
				return domain.ErrInsufficientStock
			}
		}

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		for _, item := range in.Items {
			batch := batches[item.BatchID]
			line := &entity.SaleItem{
				SaleID:       sale.ID,
				PerfumeID:    batch.PerfumeID,
				StockBatchID: batch.ID,
				SaleType:     item.SaleType,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
				Subtotal:     item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
			}
			if err := saleRepo.CreateItem(ctx, line); err != nil {
				return err
			}
			sale.Items = append(sale.Items, *line)

			switch item.SaleType {
			case entity.SaleTypeFullBottle:
				if err := batchRepo.DecrementRemaining(ctx, batch.ID, item.Quantity); err != nil {
					return err
				}
				if err := decantRepo.AddBottlesSold(ctx, batch.ID, batch.PerfumeID, item.Quantity); err != nil {
					return err
				}
			case entity.SaleTypeDecant:
				if err := decantRepo.AddDecantsSold(ctx, batch.ID, batch.PerfumeID, item.Quantity); err != nil {
					return err
				}
				if err := uc.syncCompletedBottles(ctx, decantRepo, batch); err != nil {
					return err
				}
				if err := consumeContainersFIFO(ctx, customRepo, *item.DecantBottleItemID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// syncCompletedBottles deriva cuántas botellas del lote ya se agotaron
// decantando y materializa los registros faltantes. El objetivo auto es
// floor(decants_sold / rendimiento), acotado por las botellas físicamente
// decantables que no fueron ya confirmadas a mano. Nunca borra registros:
// el contador solo avanza.
func (uc *UseCase) syncCompletedBottles(ctx context.Context, decantRepo repository.DecantRepository, batch *entity.StockBatch) error {
	tracking, err := decantRepo.GetTracking(ctx, batch.ID)
	if err != nil {
		return err
	}
	if tracking == nil {
		return nil
	}

	perfume, err := uc.perfumeRepo.GetByID(ctx, batch.PerfumeID)
	if err != nil {
		return err
	}
	baseline := perfume.DecantBaseline()

	manualCount, err := decantRepo.CountLogsBySource(ctx, batch.ID, entity.CompletionManual)
	if err != nil {
		return err
	}
	autoCount, err := decantRepo.CountLogsBySource(ctx, batch.ID, entity.CompletionAuto)
	if err != nil {
		return err
	}

	maxDecantable := batch.Quantity - tracking.BottlesSold
	autoAllowed := maxDecantable - manualCount
	if autoAllowed < 0 {
		autoAllowed = 0
	}
	autoTarget := tracking.DecantsSold / baseline
	if autoTarget > autoAllowed {
		autoTarget = autoAllowed
	}

	// Las botellas vendidas completas desplazan la numeración, y el máximo ya
	// registrado (auto o manual) nunca se repite: la secuencia es única por lote.
	maxSeq, err := decantRepo.MaxBottleSequence(ctx, batch.ID)
	if err != nil {
		return err
	}
	nextSeq := tracking.BottlesSold
	if maxSeq > nextSeq {
		nextSeq = maxSeq
	}
	for i := autoCount + 1; i <= autoTarget; i++ {
		nextSeq++
		log := &entity.DecantBottleLog{
			StockBatchID:     batch.ID,
			PerfumeID:        batch.PerfumeID,
			BottleSequence:   nextSeq,
			DecantsObtained:  baseline,
			CompletionSource: entity.CompletionAuto,
			CompletedAt:      time.Now(),
		}
		if err := decantRepo.CreateLog(ctx, log); err != nil {
			return err
		}
	}

	return decantRepo.SetBottlesDone(ctx, batch.ID, manualCount+autoTarget)
}

// consumeContainersFIFO descuenta qty envases del ítem indicado recorriendo
// las entradas abiertas en orden de compra. La disponibilidad ya fue validada
// dentro de la misma transacción.
func consumeContainersFIFO(ctx context.Context, customRepo repository.CustomInventoryRepository, itemID int64, qty int) error {
	entries, err := customRepo.ListOpenEntriesFIFO(ctx, itemID)
	if err != nil {
		return err
	}
	need := qty
	for _, e := range entries {
		if need == 0 {
			break
		}
		take := e.RemainingQuantity
		if take > need {
			take = need
		}
		if err := customRepo.DecrementEntry(ctx, e.ID, take); err != nil {
			return err
		}
		need -= take
	}
	if need > 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// ListSales lista ventas con sus líneas según el filtro.
func (uc *UseCase) ListSales(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	return uc.saleRepo.List(ctx, f)
}

// GetSale devuelve una venta con sus líneas.
func (uc *UseCase) GetSale(ctx context.Context, id int64) (*entity.Sale, error) {
	return uc.saleRepo.GetByID(ctx, id)
}

// RecordDebtPayment abona a la deuda de una venta. El abono no puede exceder
// la deuda pendiente; venta y abono se actualizan en la misma transacción.
func (uc *UseCase) RecordDebtPayment(ctx context.Context, saleID int64, in dto.RecordDebtPaymentRequest) (*entity.DebtPayment, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	payDate, err := parseDateOrToday(in.PaymentDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	payment := &entity.DebtPayment{
		SaleID:        saleID,
		AmountPaid:    in.Amount,
		PaymentDate:   payDate,
		PaymentMethod: in.PaymentMethod,
	}
	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.StockBatchRepository,
		_ repository.DecantRepository,
		_ repository.CustomInventoryRepository,
		debtRepo repository.DebtPaymentRepository,
	) error {
		sale, err := saleRepo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		// Abonar más que la deuda vigente choca con el estado de la venta
		if in.Amount.GreaterThan(sale.DebtAmount) {
			return domain.ErrConflict
		}
		if err := debtRepo.Create(ctx, payment); err != nil {
			return err
		}
		return saleRepo.ApplyDebtPayment(ctx, saleID, in.Amount)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ListDebtPayments abonos registrados contra una venta.
func (uc *UseCase) ListDebtPayments(ctx context.Context, saleID int64) ([]*entity.DebtPayment, error) {
	return uc.debtRepo.ListBySale(ctx, saleID)
}

// parseDateOrToday interpreta YYYY-MM-DD; vacío significa hoy.
func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

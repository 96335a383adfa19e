package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

// UseCase administra envíos de stock, sus lotes y el ciclo de vida de las
// botellas: terminación manual, retiros y la inversión de capital sincronizada
// con cada envío fondeado con capital.
type UseCase struct {
	txRunner   TxRunner
	reportRepo repository.ReportRepository
	decantRepo repository.DecantRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, reportRepo repository.ReportRepository, decantRepo repository.DecantRepository) *UseCase {
	return &UseCase{txRunner: txRunner, reportRepo: reportRepo, decantRepo: decantRepo}
}

// CreateShipment registra un envío con sus lotes y entradas auxiliares, y si
// está fondeado con capital crea su inversión espejo. Todo en una transacción.
func (uc *UseCase) CreateShipment(ctx context.Context, in dto.CreateShipmentRequest) (*entity.Shipment, error) {
	if len(in.Batches) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, b := range in.Batches {
		if b.Quantity <= 0 || b.BuyingCostPerBottle.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	for _, cs := range in.CustomStock {
		if cs.QuantityAdded <= 0 || cs.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	fundedFrom := in.FundedFrom
	if fundedFrom == "" {
		fundedFrom = entity.FundedFromSales
	}
	if fundedFrom != entity.FundedFromSales && fundedFrom != entity.FundedFromCapital {
		return nil, domain.ErrInvalidInput
	}
	purchaseDate, err := parseDateOrToday(in.PurchaseDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	shipment := &entity.Shipment{
		TransportCost:           in.TransportCost,
		OtherExpenses:           in.OtherExpenses,
		TotalAdditionalExpenses: in.TransportCost.Add(in.OtherExpenses),
		PurchaseDate:            purchaseDate,
		FundedFrom:              fundedFrom,
	}
	if in.ShipmentName != "" {
		name := in.ShipmentName
		shipment.Name = &name
	}

	err = uc.txRunner.RunStock(ctx, func(
		shipmentRepo repository.ShipmentRepository,
		batchRepo repository.StockBatchRepository,
		_ repository.DecantRepository,
		customRepo repository.CustomInventoryRepository,
		investmentRepo repository.InvestmentRepository,
	) error {
		if err := shipmentRepo.Create(ctx, shipment); err != nil {
			return err
		}
		for _, b := range in.Batches {
			batch := &entity.StockBatch{
				ShipmentID:          shipment.ID,
				PerfumeID:           b.PerfumeID,
				Quantity:            b.Quantity,
				BuyingCostPerBottle: b.BuyingCostPerBottle,
				SubtotalCost:        b.BuyingCostPerBottle.Mul(decimal.NewFromInt(int64(b.Quantity))),
				RemainingQuantity:   b.Quantity,
			}
			if err := batchRepo.Create(ctx, batch); err != nil {
				return err
			}
		}
		for _, cs := range in.CustomStock {
			entry := &entity.CustomInventoryStockEntry{
				ShipmentID:        &shipment.ID,
				ItemID:            cs.ItemID,
				QuantityAdded:     cs.QuantityAdded,
				RemainingQuantity: cs.QuantityAdded,
				UnitCost:          cs.UnitCost,
				PurchaseDate:      purchaseDate,
			}
			if err := customRepo.CreateEntry(ctx, entry); err != nil {
				return err
			}
		}
		return syncCapitalInvestment(ctx, shipment, batchRepo, customRepo, investmentRepo)
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// UpdateShipment edita un envío y sus lotes. Las cantidades no pueden quedar
// por debajo de lo ya vendido; los lotes omitidos del payload se eliminan solo
// si no tienen ventas. La inversión espejo se re-sincroniza al final.
func (uc *UseCase) UpdateShipment(ctx context.Context, id int64, in dto.UpdateShipmentRequest) (*entity.Shipment, error) {
	var shipment *entity.Shipment
	err := uc.txRunner.RunStock(ctx, func(
		shipmentRepo repository.ShipmentRepository,
		batchRepo repository.StockBatchRepository,
		decantRepo repository.DecantRepository,
		customRepo repository.CustomInventoryRepository,
		investmentRepo repository.InvestmentRepository,
	) error {
		var err error
		shipment, err = shipmentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.ShipmentName != nil {
			if *in.ShipmentName == "" {
				shipment.Name = nil
			} else {
				shipment.Name = in.ShipmentName
			}
		}
		if in.PurchaseDate != nil {
			d, err := time.Parse("2006-01-02", *in.PurchaseDate)
			if err != nil {
				return domain.ErrInvalidInput
			}
			shipment.PurchaseDate = d
		}
		if in.TransportCost != nil {
			shipment.TransportCost = *in.TransportCost
		}
		if in.OtherExpenses != nil {
			shipment.OtherExpenses = *in.OtherExpenses
		}
		shipment.TotalAdditionalExpenses = shipment.TransportCost.Add(shipment.OtherExpenses)
		if in.FundedFrom != nil {
			if *in.FundedFrom != entity.FundedFromSales && *in.FundedFrom != entity.FundedFromCapital {
				return domain.ErrInvalidInput
			}
			shipment.FundedFrom = *in.FundedFrom
		}
		if err := shipmentRepo.Update(ctx, shipment); err != nil {
			return err
		}

		if in.Batches != nil {
			if err := applyBatchEdits(ctx, shipment, in.Batches, batchRepo, decantRepo); err != nil {
				return err
			}
		}
		if in.CustomStock != nil {
			if err := applyCustomStockEdits(ctx, shipment, in.CustomStock, customRepo); err != nil {
				return err
			}
		}
		return syncCapitalInvestment(ctx, shipment, batchRepo, customRepo, investmentRepo)
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// applyBatchEdits concilia los lotes del envío con el payload: actualiza los
// existentes, crea los nuevos y elimina los omitidos (solo sin ventas).
func applyBatchEdits(
	ctx context.Context,
	shipment *entity.Shipment,
	inputs []dto.ShipmentBatchInput,
	batchRepo repository.StockBatchRepository,
	decantRepo repository.DecantRepository,
) error {
	existing, err := batchRepo.ListByShipment(ctx, shipment.ID)
	if err != nil {
		return err
	}
	byID := make(map[int64]*entity.StockBatch, len(existing))
	for _, b := range existing {
		byID[b.ID] = b
	}

	seen := make(map[int64]bool, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 || in.BuyingCostPerBottle.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if in.ID == nil {
			batch := &entity.StockBatch{
				ShipmentID:          shipment.ID,
				PerfumeID:           in.PerfumeID,
				Quantity:            in.Quantity,
				BuyingCostPerBottle: in.BuyingCostPerBottle,
				SubtotalCost:        in.BuyingCostPerBottle.Mul(decimal.NewFromInt(int64(in.Quantity))),
				RemainingQuantity:   in.Quantity,
			}
			if err := batchRepo.Create(ctx, batch); err != nil {
				return err
			}
			continue
		}

		batch, ok := byID[*in.ID]
		if !ok {
			return domain.ErrNotFound
		}
		seen[batch.ID] = true

		sold := batch.BottlesSoldWhole()
		if in.Quantity < sold {
			return domain.ErrInvalidInput
		}
		if in.PerfumeID != batch.PerfumeID {
			// Reapuntar el perfume solo si el lote no tiene ventas registradas
			n, err := batchRepo.SalesCount(ctx, batch.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return domain.ErrHasSales
			}
			batch.PerfumeID = in.PerfumeID
			if err := decantRepo.SetTrackingPerfume(ctx, batch.ID, in.PerfumeID); err != nil {
				return err
			}
		}
		batch.Quantity = in.Quantity
		batch.RemainingQuantity = in.Quantity - sold
		batch.BuyingCostPerBottle = in.BuyingCostPerBottle
		batch.SubtotalCost = in.BuyingCostPerBottle.Mul(decimal.NewFromInt(int64(in.Quantity)))
		if err := batchRepo.Update(ctx, batch); err != nil {
			return err
		}
	}

	for _, b := range existing {
		if seen[b.ID] {
			continue
		}
		n, err := batchRepo.SalesCount(ctx, b.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrHasSales
		}
		if err := decantRepo.DeleteByBatch(ctx, b.ID); err != nil {
			return err
		}
		if err := batchRepo.Delete(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}

// applyCustomStockEdits concilia las entradas auxiliares del envío con el
// payload: actualiza las existentes sin perder lo ya consumido, crea las
// nuevas y elimina las omitidas (solo sin consumo).
func applyCustomStockEdits(
	ctx context.Context,
	shipment *entity.Shipment,
	inputs []dto.CustomStockInput,
	customRepo repository.CustomInventoryRepository,
) error {
	existing, err := customRepo.ListEntriesByShipment(ctx, shipment.ID)
	if err != nil {
		return err
	}
	byID := make(map[int64]*entity.CustomInventoryStockEntry, len(existing))
	for _, e := range existing {
		byID[e.ID] = e
	}

	seen := make(map[int64]bool, len(inputs))
	for _, in := range inputs {
		if in.QuantityAdded <= 0 || in.UnitCost.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if in.ID == nil {
			entry := &entity.CustomInventoryStockEntry{
				ShipmentID:        &shipment.ID,
				ItemID:            in.ItemID,
				QuantityAdded:     in.QuantityAdded,
				RemainingQuantity: in.QuantityAdded,
				UnitCost:          in.UnitCost,
				PurchaseDate:      shipment.PurchaseDate,
			}
			if err := customRepo.CreateEntry(ctx, entry); err != nil {
				return err
			}
			continue
		}

		entry, ok := byID[*in.ID]
		if !ok {
			return domain.ErrNotFound
		}
		seen[entry.ID] = true

		consumed := entry.ConsumedQuantity()
		if in.QuantityAdded < consumed {
			return domain.ErrInvalidInput
		}
		if in.ItemID != entry.ItemID && consumed > 0 {
			// El consumo FIFO ya quedó atribuido a este ítem
			return domain.ErrConflict
		}
		entry.ItemID = in.ItemID
		entry.QuantityAdded = in.QuantityAdded
		entry.RemainingQuantity = in.QuantityAdded - consumed
		entry.UnitCost = in.UnitCost
		if err := customRepo.UpdateEntry(ctx, entry); err != nil {
			return err
		}
	}

	for _, e := range existing {
		if seen[e.ID] {
			continue
		}
		if e.ConsumedQuantity() > 0 {
			return domain.ErrConflict
		}
		if err := customRepo.DeleteEntry(ctx, e.ID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteShipment elimina un envío completo. Se rechaza si cualquier lote del
// envío tiene ventas: el historial de ganancias depende de esos lotes.
func (uc *UseCase) DeleteShipment(ctx context.Context, id int64) error {
	return uc.txRunner.RunStock(ctx, func(
		shipmentRepo repository.ShipmentRepository,
		batchRepo repository.StockBatchRepository,
		decantRepo repository.DecantRepository,
		customRepo repository.CustomInventoryRepository,
		investmentRepo repository.InvestmentRepository,
	) error {
		if _, err := shipmentRepo.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := batchRepo.SalesCountByShipment(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrHasSales
		}
		batches, err := batchRepo.ListByShipment(ctx, id)
		if err != nil {
			return err
		}
		for _, b := range batches {
			if err := decantRepo.DeleteByBatch(ctx, b.ID); err != nil {
				return err
			}
			if err := batchRepo.Delete(ctx, b.ID); err != nil {
				return err
			}
		}
		if err := customRepo.DeleteEntriesByShipment(ctx, id); err != nil {
			return err
		}
		if err := investmentRepo.DeleteByShipment(ctx, id); err != nil {
			return err
		}
		return shipmentRepo.Delete(ctx, id)
	})
}

// DeleteBatch elimina un lote individual sin ventas y re-sincroniza la
// inversión del envío al nuevo costo total.
func (uc *UseCase) DeleteBatch(ctx context.Context, id int64) error {
	return uc.txRunner.RunStock(ctx, func(
		shipmentRepo repository.ShipmentRepository,
		batchRepo repository.StockBatchRepository,
		decantRepo repository.DecantRepository,
		customRepo repository.CustomInventoryRepository,
		investmentRepo repository.InvestmentRepository,
	) error {
		batch, err := batchRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		n, err := batchRepo.SalesCount(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrHasSales
		}
		if err := decantRepo.DeleteByBatch(ctx, id); err != nil {
			return err
		}
		if err := batchRepo.Delete(ctx, id); err != nil {
			return err
		}
		shipment, err := shipmentRepo.GetByID(ctx, batch.ShipmentID)
		if err != nil {
			return err
		}
		return syncCapitalInvestment(ctx, shipment, batchRepo, customRepo, investmentRepo)
	})
}

// syncCapitalInvestment mantiene el espejo contable de un envío fondeado con
// capital: exactamente una inversión shipment_capital por envío, con el costo
// total vigente. Si el envío pasa a fondearse con ventas, el espejo se borra.
// Adopta inversiones manuales dejadas por versiones previas que emparejan por
// descripción exacta, en lugar de duplicarlas.
func syncCapitalInvestment(
	ctx context.Context,
	shipment *entity.Shipment,
	batchRepo repository.StockBatchRepository,
	customRepo repository.CustomInventoryRepository,
	investmentRepo repository.InvestmentRepository,
) error {
	if shipment.FundedFrom != entity.FundedFromCapital {
		return investmentRepo.DeleteByShipment(ctx, shipment.ID)
	}

	batchCost, err := batchRepo.SubtotalCostByShipment(ctx, shipment.ID)
	if err != nil {
		return err
	}
	customCost, err := customRepo.SumEntriesCostByShipment(ctx, shipment.ID)
	if err != nil {
		return err
	}
	total := batchCost.Add(customCost).Add(shipment.TotalAdditionalExpenses)
	if total.LessThanOrEqual(decimal.Zero) {
		// Sin costo no hay capital que reflejar
		return investmentRepo.DeleteByShipment(ctx, shipment.ID)
	}
	desc := capitalInvestmentDescription(shipment)

	existing, err := investmentRepo.GetByShipment(ctx, shipment.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		legacy, err := investmentRepo.FindLegacyManualByDescription(ctx, desc)
		if err != nil {
			return err
		}
		if legacy != nil {
			legacy.Origin = entity.InvestmentOriginShipmentCapital
			legacy.SourceShipmentID = &shipment.ID
			legacy.Amount = total
			legacy.InvestmentDate = shipment.PurchaseDate
			return investmentRepo.Update(ctx, legacy)
		}
		inv := &entity.Investment{
			Description:      desc,
			Amount:           total,
			InvestmentDate:   shipment.PurchaseDate,
			Origin:           entity.InvestmentOriginShipmentCapital,
			SourceShipmentID: &shipment.ID,
		}
		return investmentRepo.Create(ctx, inv)
	}

	existing.Description = desc
	existing.Amount = total
	existing.InvestmentDate = shipment.PurchaseDate
	return investmentRepo.Update(ctx, existing)
}

func capitalInvestmentDescription(s *entity.Shipment) string {
	if s.Name != nil && *s.Name != "" {
		return fmt.Sprintf("Stock purchase (capital) - %s", *s.Name)
	}
	return fmt.Sprintf("Stock purchase (capital) - Shipment #%d", s.ID)
}

// ListStock listado de lotes con detalle de envío y contadores de decantación.
func (uc *UseCase) ListStock(ctx context.Context, perfumeID *int64) ([]*repository.StockOverviewRow, error) {
	return uc.reportRepo.StockOverview(ctx, perfumeID)
}

// MarkBottleDone registra la terminación manual de una botella decantada. El
// rendimiento por defecto es lo vendido aún no atribuido a botellas previas;
// una botella terminada siempre rindió al menos un decant, así que un
// rendimiento efectivo de cero (explícito o derivado) se rechaza. La
// secuencia continúa desde el máximo registrado.
func (uc *UseCase) MarkBottleDone(ctx context.Context, in dto.MarkBottleDoneRequest) (*dto.MarkBottleDoneResponse, error) {
	if in.DecantsObtained != nil && *in.DecantsObtained <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.MarkBottleDoneResponse
	err := uc.txRunner.RunStock(ctx, func(
		_ repository.ShipmentRepository,
		batchRepo repository.StockBatchRepository,
		decantRepo repository.DecantRepository,
		_ repository.CustomInventoryRepository,
		_ repository.InvestmentRepository,
	) error {
		batch, err := batchRepo.GetForUpdate(ctx, in.BatchID)
		if err != nil {
			return err
		}
		tracking, err := decantRepo.GetTracking(ctx, batch.ID)
		if err != nil {
			return err
		}
		if tracking == nil {
			return domain.ErrConflict
		}

		maxDecantable := batch.Quantity - tracking.BottlesSold
		if tracking.BottlesDone >= maxDecantable {
			return domain.ErrBottlesExhausted
		}

		decants := 0
		if in.DecantsObtained != nil {
			decants = *in.DecantsObtained
		} else {
			attributed, err := decantRepo.SumDecantsObtained(ctx, batch.ID)
			if err != nil {
				return err
			}
			decants = tracking.DecantsSold - attributed
			if decants <= 0 {
				// Todo lo vendido ya está atribuido: el operador debe indicar
				// cuántos decants rindió esta botella.
				return domain.ErrInvalidInput
			}
		}

		maxSeq, err := decantRepo.MaxBottleSequence(ctx, batch.ID)
		if err != nil {
			return err
		}
		log := &entity.DecantBottleLog{
			StockBatchID:     batch.ID,
			PerfumeID:        batch.PerfumeID,
			BottleSequence:   maxSeq + 1,
			DecantsObtained:  decants,
			CompletionSource: entity.CompletionManual,
			CompletedAt:      time.Now(),
		}
		if err := decantRepo.CreateLog(ctx, log); err != nil {
			return err
		}
		if err := decantRepo.IncrementBottlesDone(ctx, batch.ID); err != nil {
			return err
		}
		out = &dto.MarkBottleDoneResponse{
			BatchID:         batch.ID,
			BottleSequence:  log.BottleSequence,
			DecantsObtained: decants,
			BottlesDone:     tracking.BottlesDone + 1,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkOutOfStock retira botellas de un lote (merma, rotura, evaporación) y
// deja el registro de auditoría. Retira una botella si no se indica cantidad;
// nunca más de las restantes. No toca la base de costo del lote.
func (uc *UseCase) MarkOutOfStock(ctx context.Context, in dto.MarkOutOfStockRequest) (*entity.DeletedBottle, error) {
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, domain.ErrInvalidInput
	}
	var removed *entity.DeletedBottle
	err := uc.txRunner.RunStock(ctx, func(
		_ repository.ShipmentRepository,
		batchRepo repository.StockBatchRepository,
		decantRepo repository.DecantRepository,
		_ repository.CustomInventoryRepository,
		_ repository.InvestmentRepository,
	) error {
		batch, err := batchRepo.GetForUpdate(ctx, in.BatchID)
		if err != nil {
			return err
		}
		if batch.RemainingQuantity <= 0 {
			return domain.ErrConflict
		}
		if qty > batch.RemainingQuantity {
			return domain.ErrInsufficientStock
		}
		removed = &entity.DeletedBottle{
			StockBatchID:    batch.ID,
			PerfumeID:       batch.PerfumeID,
			QuantityRemoved: qty,
			Reason:          entity.ReasonOutOfStock,
			RemovedAt:       time.Now(),
		}
		if in.Notes != "" {
			note := in.Notes
			removed.Note = &note
		}
		if err := decantRepo.CreateDeletedBottle(ctx, removed); err != nil {
			return err
		}
		return batchRepo.DecrementRemaining(ctx, batch.ID, qty)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// ListBottleLogs registros de botellas terminadas de un lote.
func (uc *UseCase) ListBottleLogs(ctx context.Context, batchID int64) ([]*entity.DecantBottleLog, error) {
	return uc.decantRepo.ListLogs(ctx, batchID)
}

// ListDeletedBottles historial de retiros de inventario.
func (uc *UseCase) ListDeletedBottles(ctx context.Context) ([]*entity.DeletedBottle, error) {
	return uc.decantRepo.ListDeletedBottles(ctx)
}

// parseDateOrToday interpreta YYYY-MM-DD; vacío significa hoy.
func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

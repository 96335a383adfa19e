package stock_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/profit"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

var (
	_ repository.ShipmentRepository        = (*fakeShipmentRepo)(nil)
	_ repository.StockBatchRepository      = (*fakeBatchRepo)(nil)
	_ repository.DecantRepository          = (*fakeDecantRepo)(nil)
	_ repository.CustomInventoryRepository = (*fakeCustomRepo)(nil)
	_ repository.InvestmentRepository      = (*fakeInvestmentRepo)(nil)
	_ repository.ReportRepository          = (*fakeReportRepo)(nil)
)

// fakeStore base en memoria para el caso de uso de stock.
type fakeStore struct {
	shipments   map[int64]*entity.Shipment
	batches     map[int64]*entity.StockBatch
	tracking    map[int64]*entity.DecantTracking
	logs        []*entity.DecantBottleLog
	deleted     []*entity.DeletedBottle
	entries     map[int64]*entity.CustomInventoryStockEntry
	investments map[int64]*entity.Investment
	saleCounts  map[int64]int // ventas por lote
	nextID      int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		shipments:   map[int64]*entity.Shipment{},
		batches:     map[int64]*entity.StockBatch{},
		tracking:    map[int64]*entity.DecantTracking{},
		entries:     map[int64]*entity.CustomInventoryStockEntry{},
		investments: map[int64]*entity.Investment{},
		saleCounts:  map[int64]int{},
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

// shipmentInvestment devuelve la inversión espejo del envío, o nil.
func (s *fakeStore) shipmentInvestment(shipmentID int64) *entity.Investment {
	for _, inv := range s.investments {
		if inv.SourceShipmentID != nil && *inv.SourceShipmentID == shipmentID {
			return inv
		}
	}
	return nil
}

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) RunStock(ctx context.Context, fn func(
	repository.ShipmentRepository,
	repository.StockBatchRepository,
	repository.DecantRepository,
	repository.CustomInventoryRepository,
	repository.InvestmentRepository,
) error) error {
	return fn(&fakeShipmentRepo{r.s}, &fakeBatchRepo{r.s}, &fakeDecantRepo{r.s}, &fakeCustomRepo{r.s}, &fakeInvestmentRepo{r.s})
}

// ── ShipmentRepository ────────────────────────────────────────────────────────

type fakeShipmentRepo struct{ s *fakeStore }

func (r *fakeShipmentRepo) Create(_ context.Context, sh *entity.Shipment) error {
	sh.ID = r.s.id()
	r.s.shipments[sh.ID] = sh
	return nil
}

func (r *fakeShipmentRepo) GetByID(_ context.Context, id int64) (*entity.Shipment, error) {
	sh, ok := r.s.shipments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sh, nil
}

func (r *fakeShipmentRepo) Update(_ context.Context, sh *entity.Shipment) error {
	r.s.shipments[sh.ID] = sh
	return nil
}

func (r *fakeShipmentRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.shipments, id)
	return nil
}

// ── StockBatchRepository ──────────────────────────────────────────────────────

type fakeBatchRepo struct{ s *fakeStore }

func (r *fakeBatchRepo) Create(_ context.Context, b *entity.StockBatch) error {
	b.ID = r.s.id()
	r.s.batches[b.ID] = b
	return nil
}

func (r *fakeBatchRepo) GetByID(_ context.Context, id int64) (*entity.StockBatch, error) {
	b, ok := r.s.batches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (r *fakeBatchRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockBatch, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeBatchRepo) ListByShipment(_ context.Context, shipmentID int64) ([]*entity.StockBatch, error) {
	var out []*entity.StockBatch
	for _, b := range r.s.batches {
		if b.ShipmentID == shipmentID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBatchRepo) Update(_ context.Context, b *entity.StockBatch) error {
	r.s.batches[b.ID] = b
	return nil
}

func (r *fakeBatchRepo) DecrementRemaining(_ context.Context, id int64, qty int) error {
	b, ok := r.s.batches[id]
	if !ok {
		return domain.ErrNotFound
	}
	if b.RemainingQuantity < qty {
		return domain.ErrInsufficientStock
	}
	b.RemainingQuantity -= qty
	return nil
}

func (r *fakeBatchRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.batches, id)
	return nil
}

func (r *fakeBatchRepo) SalesCount(_ context.Context, id int64) (int, error) {
	return r.s.saleCounts[id], nil
}

func (r *fakeBatchRepo) SalesCountByShipment(_ context.Context, shipmentID int64) (int, error) {
	n := 0
	for id, count := range r.s.saleCounts {
		if b, ok := r.s.batches[id]; ok && b.ShipmentID == shipmentID {
			n += count
		}
	}
	return n, nil
}

func (r *fakeBatchRepo) SubtotalCostByShipment(_ context.Context, shipmentID int64) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, b := range r.s.batches {
		if b.ShipmentID == shipmentID {
			sum = sum.Add(b.SubtotalCost)
		}
	}
	return sum, nil
}

// ── DecantRepository ──────────────────────────────────────────────────────────

type fakeDecantRepo struct{ s *fakeStore }

func (r *fakeDecantRepo) GetTracking(_ context.Context, batchID int64) (*entity.DecantTracking, error) {
	return r.s.tracking[batchID], nil
}

func (r *fakeDecantRepo) CreateTracking(_ context.Context, t *entity.DecantTracking) error {
	t.ID = r.s.id()
	r.s.tracking[t.StockBatchID] = t
	return nil
}

func (r *fakeDecantRepo) ensure(batchID, perfumeID int64) *entity.DecantTracking {
	t := r.s.tracking[batchID]
	if t == nil {
		t = &entity.DecantTracking{ID: r.s.id(), StockBatchID: batchID, PerfumeID: perfumeID}
		r.s.tracking[batchID] = t
	}
	return t
}

func (r *fakeDecantRepo) AddBottlesSold(_ context.Context, batchID, perfumeID int64, qty int) error {
	r.ensure(batchID, perfumeID).BottlesSold += qty
	return nil
}

func (r *fakeDecantRepo) AddDecantsSold(_ context.Context, batchID, perfumeID int64, qty int) error {
	r.ensure(batchID, perfumeID).DecantsSold += qty
	return nil
}

func (r *fakeDecantRepo) SetBottlesDone(_ context.Context, batchID int64, done int) error {
	if t := r.s.tracking[batchID]; t != nil {
		t.BottlesDone = done
	}
	return nil
}

func (r *fakeDecantRepo) IncrementBottlesDone(_ context.Context, batchID int64) error {
	if t := r.s.tracking[batchID]; t != nil {
		t.BottlesDone++
	}
	return nil
}

func (r *fakeDecantRepo) SetTrackingPerfume(_ context.Context, batchID, perfumeID int64) error {
	if t := r.s.tracking[batchID]; t != nil {
		t.PerfumeID = perfumeID
	}
	return nil
}

func (r *fakeDecantRepo) CountLogsBySource(_ context.Context, batchID int64, source string) (int, error) {
	n := 0
	for _, l := range r.s.logs {
		if l.StockBatchID == batchID && l.CompletionSource == source {
			n++
		}
	}
	return n, nil
}

func (r *fakeDecantRepo) SumDecantsObtained(_ context.Context, batchID int64) (int, error) {
	sum := 0
	for _, l := range r.s.logs {
		if l.StockBatchID == batchID {
			sum += l.DecantsObtained
		}
	}
	return sum, nil
}

func (r *fakeDecantRepo) MaxBottleSequence(_ context.Context, batchID int64) (int, error) {
	max := 0
	for _, l := range r.s.logs {
		if l.StockBatchID == batchID && l.BottleSequence > max {
			max = l.BottleSequence
		}
	}
	return max, nil
}

func (r *fakeDecantRepo) CreateLog(_ context.Context, log *entity.DecantBottleLog) error {
	log.ID = r.s.id()
	r.s.logs = append(r.s.logs, log)
	return nil
}

func (r *fakeDecantRepo) ListLogs(_ context.Context, batchID int64) ([]*entity.DecantBottleLog, error) {
	var out []*entity.DecantBottleLog
	for _, l := range r.s.logs {
		if l.StockBatchID == batchID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeDecantRepo) CreateDeletedBottle(_ context.Context, db *entity.DeletedBottle) error {
	db.ID = r.s.id()
	r.s.deleted = append(r.s.deleted, db)
	return nil
}

func (r *fakeDecantRepo) ListDeletedBottles(_ context.Context) ([]*entity.DeletedBottle, error) {
	return r.s.deleted, nil
}

func (r *fakeDecantRepo) DeleteByBatch(_ context.Context, batchID int64) error {
	delete(r.s.tracking, batchID)
	kept := r.s.logs[:0]
	for _, l := range r.s.logs {
		if l.StockBatchID != batchID {
			kept = append(kept, l)
		}
	}
	r.s.logs = kept
	return nil
}

// ── CustomInventoryRepository ─────────────────────────────────────────────────

type fakeCustomRepo struct{ s *fakeStore }

func (r *fakeCustomRepo) ListCategories(_ context.Context) ([]*entity.CustomInventoryCategory, error) {
	return nil, nil
}

func (r *fakeCustomRepo) CreateCategory(_ context.Context, c *entity.CustomInventoryCategory) error {
	c.ID = r.s.id()
	return nil
}

func (r *fakeCustomRepo) ListItems(_ context.Context, _ *string) ([]*entity.CustomInventoryItem, error) {
	return nil, nil
}

func (r *fakeCustomRepo) GetItem(_ context.Context, _ int64) (*entity.CustomInventoryItem, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeCustomRepo) CreateItem(_ context.Context, item *entity.CustomInventoryItem) error {
	item.ID = r.s.id()
	return nil
}

func (r *fakeCustomRepo) CreateEntry(_ context.Context, e *entity.CustomInventoryStockEntry) error {
	e.ID = r.s.id()
	r.s.entries[e.ID] = e
	return nil
}

func (r *fakeCustomRepo) UpdateEntry(_ context.Context, e *entity.CustomInventoryStockEntry) error {
	r.s.entries[e.ID] = e
	return nil
}

func (r *fakeCustomRepo) DeleteEntry(_ context.Context, id int64) error {
	delete(r.s.entries, id)
	return nil
}

func (r *fakeCustomRepo) ListEntries(_ context.Context, itemID *int64) ([]*entity.CustomInventoryStockEntry, error) {
	var out []*entity.CustomInventoryStockEntry
	for _, e := range r.s.entries {
		if itemID == nil || e.ItemID == *itemID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeCustomRepo) ListEntriesByShipment(_ context.Context, shipmentID int64) ([]*entity.CustomInventoryStockEntry, error) {
	var out []*entity.CustomInventoryStockEntry
	for _, e := range r.s.entries {
		if e.ShipmentID != nil && *e.ShipmentID == shipmentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeCustomRepo) DeleteEntriesByShipment(_ context.Context, shipmentID int64) error {
	for id, e := range r.s.entries {
		if e.ShipmentID != nil && *e.ShipmentID == shipmentID {
			delete(r.s.entries, id)
		}
	}
	return nil
}

func (r *fakeCustomRepo) AvailableForItem(_ context.Context, itemID int64) (int, error) {
	sum := 0
	for _, e := range r.s.entries {
		if e.ItemID == itemID {
			sum += e.RemainingQuantity
		}
	}
	return sum, nil
}

func (r *fakeCustomRepo) ListOpenEntriesFIFO(_ context.Context, itemID int64) ([]*entity.CustomInventoryStockEntry, error) {
	var out []*entity.CustomInventoryStockEntry
	for _, e := range r.s.entries {
		if e.ItemID == itemID && e.RemainingQuantity > 0 {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].PurchaseDate.Before(out[j].PurchaseDate)
	})
	return out, nil
}

func (r *fakeCustomRepo) DecrementEntry(_ context.Context, entryID int64, qty int) error {
	e, ok := r.s.entries[entryID]
	if !ok {
		return domain.ErrNotFound
	}
	e.RemainingQuantity -= qty
	return nil
}

func (r *fakeCustomRepo) SumEntriesCostByShipment(_ context.Context, shipmentID int64) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.s.entries {
		if e.ShipmentID != nil && *e.ShipmentID == shipmentID {
			sum = sum.Add(e.UnitCost.Mul(decimal.NewFromInt(int64(e.QuantityAdded))))
		}
	}
	return sum, nil
}

// ── InvestmentRepository ──────────────────────────────────────────────────────

type fakeInvestmentRepo struct{ s *fakeStore }

func (r *fakeInvestmentRepo) Create(_ context.Context, inv *entity.Investment) error {
	inv.ID = r.s.id()
	r.s.investments[inv.ID] = inv
	return nil
}

func (r *fakeInvestmentRepo) Update(_ context.Context, inv *entity.Investment) error {
	r.s.investments[inv.ID] = inv
	return nil
}

func (r *fakeInvestmentRepo) List(_ context.Context, includeAuto bool) ([]*entity.Investment, error) {
	var out []*entity.Investment
	for _, inv := range r.s.investments {
		if !includeAuto && inv.Origin != entity.InvestmentOriginManual {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvestmentRepo) GetByShipment(_ context.Context, shipmentID int64) (*entity.Investment, error) {
	for _, inv := range r.s.investments {
		if inv.Origin == entity.InvestmentOriginShipmentCapital &&
			inv.SourceShipmentID != nil && *inv.SourceShipmentID == shipmentID {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvestmentRepo) DeleteByShipment(_ context.Context, shipmentID int64) error {
	for id, inv := range r.s.investments {
		if inv.SourceShipmentID != nil && *inv.SourceShipmentID == shipmentID {
			delete(r.s.investments, id)
		}
	}
	return nil
}

func (r *fakeInvestmentRepo) FindLegacyManualByDescription(_ context.Context, description string) (*entity.Investment, error) {
	for _, inv := range r.s.investments {
		if inv.Origin == entity.InvestmentOriginManual && inv.Description == description {
			return inv, nil
		}
	}
	return nil, nil
}

// ── ReportRepository ──────────────────────────────────────────────────────────

type fakeReportRepo struct{ s *fakeStore }

func (r *fakeReportRepo) ProfitRows(_ context.Context, _, _ *time.Time) ([]profit.LineRow, error) {
	return nil, nil
}

func (r *fakeReportRepo) FinancialSums(_ context.Context, _, _ *time.Time) (*repository.FinancialSums, error) {
	return &repository.FinancialSums{}, nil
}

func (r *fakeReportRepo) StockOverview(_ context.Context, perfumeID *int64) ([]*repository.StockOverviewRow, error) {
	var out []*repository.StockOverviewRow
	for _, b := range r.s.batches {
		if perfumeID != nil && b.PerfumeID != *perfumeID {
			continue
		}
		row := &repository.StockOverviewRow{
			BatchID:           b.ID,
			ShipmentID:        b.ShipmentID,
			PerfumeID:         b.PerfumeID,
			Quantity:          b.Quantity,
			RemainingQuantity: b.RemainingQuantity,
			SubtotalCost:      b.SubtotalCost,
		}
		if t := r.s.tracking[b.ID]; t != nil {
			row.DecantsSold = t.DecantsSold
			row.BottlesSold = t.BottlesSold
			row.BottlesDone = t.BottlesDone
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BatchID < out[j].BatchID })
	return out, nil
}

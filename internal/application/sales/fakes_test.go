package sales_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

var (
	_ repository.PerfumeRepository         = (*fakePerfumeRepo)(nil)
	_ repository.SaleRepository            = (*fakeSaleRepo)(nil)
	_ repository.StockBatchRepository      = (*fakeBatchRepo)(nil)
	_ repository.DecantRepository          = (*fakeDecantRepo)(nil)
	_ repository.CustomInventoryRepository = (*fakeCustomRepo)(nil)
	_ repository.DebtPaymentRepository     = (*fakeDebtRepo)(nil)
)

// fakeStore es una base en memoria compartida por todos los repos fake.
// Suficiente para ejercitar el caso de uso sin Postgres.
type fakeStore struct {
	perfumes  map[int64]*entity.Perfume
	batches   map[int64]*entity.StockBatch
	tracking  map[int64]*entity.DecantTracking // por batch id
	logs      []*entity.DecantBottleLog
	entries   map[int64]*entity.CustomInventoryStockEntry
	items     map[int64]*entity.CustomInventoryItem
	sales     map[int64]*entity.Sale
	saleItems []*entity.SaleItem
	payments  []*entity.DebtPayment
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		perfumes: map[int64]*entity.Perfume{},
		batches:  map[int64]*entity.StockBatch{},
		tracking: map[int64]*entity.DecantTracking{},
		entries:  map[int64]*entity.CustomInventoryStockEntry{},
		items:    map[int64]*entity.CustomInventoryItem{},
		sales:    map[int64]*entity.Sale{},
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) addPerfume(name string, estDecants int) *entity.Perfume {
	p := &entity.Perfume{ID: s.id(), Name: name, EstimatedDecantsPerBottle: estDecants}
	s.perfumes[p.ID] = p
	return p
}

func (s *fakeStore) addBatch(perfumeID int64, qty int, costPerBottle decimal.Decimal) *entity.StockBatch {
	b := &entity.StockBatch{
		ID:                  s.id(),
		ShipmentID:          1,
		PerfumeID:           perfumeID,
		Quantity:            qty,
		BuyingCostPerBottle: costPerBottle,
		SubtotalCost:        costPerBottle.Mul(decimal.NewFromInt(int64(qty))),
		RemainingQuantity:   qty,
	}
	s.batches[b.ID] = b
	return b
}

func (s *fakeStore) addContainerItem(name string) *entity.CustomInventoryItem {
	it := &entity.CustomInventoryItem{ID: s.id(), Name: name, Category: entity.CategoryDecantBottle, IsActive: true}
	s.items[it.ID] = it
	return it
}

func (s *fakeStore) addEntry(itemID int64, qty int, cost decimal.Decimal, purchased time.Time) *entity.CustomInventoryStockEntry {
	e := &entity.CustomInventoryStockEntry{
		ID: s.id(), ItemID: itemID, QuantityAdded: qty, RemainingQuantity: qty,
		UnitCost: cost, PurchaseDate: purchased,
	}
	s.entries[e.ID] = e
	return e
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	repository.SaleRepository,
	repository.StockBatchRepository,
	repository.DecantRepository,
	repository.CustomInventoryRepository,
	repository.DebtPaymentRepository,
) error) error {
	return fn(&fakeSaleRepo{r.s}, &fakeBatchRepo{r.s}, &fakeDecantRepo{r.s}, &fakeCustomRepo{r.s}, &fakeDebtRepo{r.s})
}

// ── PerfumeRepository ─────────────────────────────────────────────────────────

type fakePerfumeRepo struct{ s *fakeStore }

func (r *fakePerfumeRepo) Create(_ context.Context, p *entity.Perfume) error {
	p.ID = r.s.id()
	r.s.perfumes[p.ID] = p
	return nil
}

func (r *fakePerfumeRepo) GetByID(_ context.Context, id int64) (*entity.Perfume, error) {
	p, ok := r.s.perfumes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakePerfumeRepo) List(_ context.Context) ([]*entity.Perfume, error) {
	out := make([]*entity.Perfume, 0, len(r.s.perfumes))
	for _, p := range r.s.perfumes {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePerfumeRepo) Update(_ context.Context, id int64, name *string, volumeML, estimatedDecants *int, isOutOfStock *bool) (*entity.Perfume, error) {
	p, ok := r.s.perfumes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if name != nil {
		p.Name = *name
	}
	if volumeML != nil {
		p.VolumeML = *volumeML
	}
	if estimatedDecants != nil {
		p.EstimatedDecantsPerBottle = *estimatedDecants
	}
	if isOutOfStock != nil {
		p.IsOutOfStock = *isOutOfStock
	}
	return p, nil
}

func (r *fakePerfumeRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.perfumes, id)
	return nil
}

func (r *fakePerfumeRepo) HasStock(_ context.Context, id int64) (bool, error) {
	for _, b := range r.s.batches {
		if b.PerfumeID == id {
			return true, nil
		}
	}
	return false, nil
}

// ── SaleRepository ────────────────────────────────────────────────────────────

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	sale.ID = r.s.id()
	sale.CreatedAt = time.Now()
	r.s.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	item.ID = r.s.id()
	r.s.saleItems = append(r.s.saleItems, item)
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

func (r *fakeSaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.s.sales))
	for _, sale := range r.s.sales {
		if f.WithDebt && !sale.DebtAmount.GreaterThan(decimal.Zero) {
			continue
		}
		out = append(out, sale)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSaleRepo) ListItems(_ context.Context, saleID int64) ([]entity.SaleItem, error) {
	var out []entity.SaleItem
	for _, it := range r.s.saleItems {
		if it.SaleID == saleID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ApplyDebtPayment(_ context.Context, saleID int64, amount decimal.Decimal) error {
	sale, ok := r.s.sales[saleID]
	if !ok {
		return domain.ErrNotFound
	}
	sale.AmountPaid = sale.AmountPaid.Add(amount)
	sale.DebtAmount = sale.DebtAmount.Sub(amount)
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
	n := 0
	for _, it := range r.s.saleItems {
		if it.StockBatchID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeBatchRepo) SalesCountByShipment(_ context.Context, shipmentID int64) (int, error) {
	n := 0
	for _, it := range r.s.saleItems {
		if b, ok := r.s.batches[it.StockBatchID]; ok && b.ShipmentID == shipmentID {
			n++
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
	return nil
}

func (r *fakeDecantRepo) ListDeletedBottles(_ context.Context) ([]*entity.DeletedBottle, error) {
	return nil, nil
}

func (r *fakeDecantRepo) DeleteByBatch(_ context.Context, batchID int64) error {
	delete(r.s.tracking, batchID)
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
	var out []*entity.CustomInventoryItem
	for _, it := range r.s.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeCustomRepo) GetItem(_ context.Context, id int64) (*entity.CustomInventoryItem, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return it, nil
}

func (r *fakeCustomRepo) CreateItem(_ context.Context, item *entity.CustomInventoryItem) error {
	item.ID = r.s.id()
	r.s.items[item.ID] = item
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
	if e.RemainingQuantity < qty {
		return domain.ErrInsufficientStock
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

// ── DebtPaymentRepository ─────────────────────────────────────────────────────

type fakeDebtRepo struct{ s *fakeStore }

func (r *fakeDebtRepo) Create(_ context.Context, p *entity.DebtPayment) error {
	p.ID = r.s.id()
	r.s.payments = append(r.s.payments, p)
	return nil
}

func (r *fakeDebtRepo) ListBySale(_ context.Context, saleID int64) ([]*entity.DebtPayment, error) {
	var out []*entity.DebtPayment
	for _, p := range r.s.payments {
		if p.SaleID == saleID {
			out = append(out, p)
		}
	}
	return out, nil
}

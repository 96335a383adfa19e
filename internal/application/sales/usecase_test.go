package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/application/sales"
	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

func newUseCase(s *fakeStore) *sales.UseCase {
	return sales.NewUseCase(&fakeTxRunner{s}, &fakePerfumeRepo{s}, &fakeSaleRepo{s}, &fakeDebtRepo{s})
}

func intPtr(v int64) *int64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// TestRecordSale_BotellaCompleta valida el camino feliz de una venta de
// botellas completas: descuenta el stock restante, acumula bottles_sold y
// calcula total/pagado/deuda.
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_BotellaCompleta(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	uc := newUseCase(s)

	sale, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		CustomerName: "Sarah",
		AmountPaid:   decimal.NewFromInt(200_000),
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeFullBottle, Quantity: 2, UnitPrice: decimal.NewFromInt(150_000)},
		},
	})
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(300_000)))
	assert.True(t, sale.DebtAmount.Equal(decimal.NewFromInt(100_000)))
	assert.Equal(t, 3, s.batches[batch.ID].RemainingQuantity)
	assert.Equal(t, 2, s.tracking[batch.ID].BottlesSold)
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].Subtotal.Equal(decimal.NewFromInt(300_000)))
}

func TestRecordSale_StockInsuficiente(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 2, decimal.NewFromInt(100_000))
	uc := newUseCase(s)

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.Zero,
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeFullBottle, Quantity: 3, UnitPrice: decimal.NewFromInt(150_000)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// Nada debió persistirse
	assert.Empty(t, s.sales)
	assert.Equal(t, 2, s.batches[batch.ID].RemainingQuantity)
}

// TestRecordSale_ConflictoDecantBotella: un lote con decants vendidos no admite
// ventas de botella completa; las unidades restantes son fuente de decants.
func TestRecordSale_ConflictoDecantBotella(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	s.tracking[batch.ID] = &entity.DecantTracking{ID: s.id(), StockBatchID: batch.ID, PerfumeID: p.ID, DecantsSold: 4}
	uc := newUseCase(s)

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.Zero,
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeFullBottle, Quantity: 1, UnitPrice: decimal.NewFromInt(150_000)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRecordSale_DecantSinEnvaseInvalido(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	uc := newUseCase(s)

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.Zero,
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeDecant, Quantity: 1, UnitPrice: decimal.NewFromInt(25_000)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_PagoExcesivoRechazado(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	uc := newUseCase(s)

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.NewFromInt(400_000),
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeFullBottle, Quantity: 2, UnitPrice: decimal.NewFromInt(150_000)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// TestRecordSale_DecantConsumoFIFO valida que los envases se consumen por
// orden de compra: la entrada más antigua se agota antes de tocar la siguiente.
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_DecantConsumoFIFO(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	item := s.addContainerItem("Decant Bottle 10ml")
	old := s.addEntry(item.ID, 3, decimal.NewFromInt(500), time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	recent := s.addEntry(item.ID, 10, decimal.NewFromInt(600), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	uc := newUseCase(s)

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.NewFromInt(125_000),
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeDecant, Quantity: 5, UnitPrice: decimal.NewFromInt(25_000), DecantBottleItemID: intPtr(item.ID)},
		},
	})
	require.NoError(t, err)

	// La entrada vieja se agota (3), el resto (2) sale de la reciente
	assert.Equal(t, 0, s.entries[old.ID].RemainingQuantity)
	assert.Equal(t, 8, s.entries[recent.ID].RemainingQuantity)
	assert.Equal(t, 5, s.tracking[batch.ID].DecantsSold)
}

func TestRecordSale_DecantEnvasesInsuficientes(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	item := s.addContainerItem("Decant Bottle 10ml")
	s.addEntry(item.ID, 2, decimal.NewFromInt(500), time.Now())
	uc := newUseCase(s)

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.Zero,
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeDecant, Quantity: 3, UnitPrice: decimal.NewFromInt(25_000), DecantBottleItemID: intPtr(item.ID)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// TestRecordSale_EnvaseCompartidoEntreLineas: varias líneas pueden consumir el
// mismo ítem de envase; la disponibilidad se valida contra la suma, no línea
// por línea.
func TestRecordSale_EnvaseCompartidoEntreLineas(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	other := s.addPerfume("Layton", 10)
	batchA := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	batchB := s.addBatch(other.ID, 5, decimal.NewFromInt(90_000))
	item := s.addContainerItem("Decant Bottle 10ml")
	entry := s.addEntry(item.ID, 5, decimal.NewFromInt(500), time.Now())
	uc := newUseCase(s)

	// Cada línea cabe sola (3 y 3 con 5 envases), pero juntas suman 6
	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.Zero,
		Items: []dto.SaleItemInput{
			{BatchID: batchA.ID, SaleType: entity.SaleTypeDecant, Quantity: 3, UnitPrice: decimal.NewFromInt(25_000), DecantBottleItemID: intPtr(item.ID)},
			{BatchID: batchB.ID, SaleType: entity.SaleTypeDecant, Quantity: 3, UnitPrice: decimal.NewFromInt(25_000), DecantBottleItemID: intPtr(item.ID)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó consumido ni registrado
	assert.Equal(t, 5, s.entries[entry.ID].RemainingQuantity)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.saleItems)
}

// ──────────────────────────────────────────────────────────────────────────────
// TestRecordSale_BotellasAutoTerminadas: con rendimiento 10, vender 60 decants
// sobre un lote de 5 botellas deriva a lo sumo 5 botellas terminadas (el piso
// físico manda) y cada registro auto lleva secuencia y rendimiento estimado.
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_BotellasAutoTerminadas(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	item := s.addContainerItem("Decant Bottle 10ml")
	s.addEntry(item.ID, 100, decimal.NewFromInt(500), time.Now())
	uc := newUseCase(s)

	// 60 decants en tres ventas: 25 + 25 + 10
	for _, qty := range []int{25, 25, 10} {
		_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
			AmountPaid: decimal.Zero,
			Items: []dto.SaleItemInput{
				{BatchID: batch.ID, SaleType: entity.SaleTypeDecant, Quantity: qty, UnitPrice: decimal.NewFromInt(25_000), DecantBottleItemID: intPtr(item.ID)},
			},
		})
		require.NoError(t, err)
	}

	tr := s.tracking[batch.ID]
	assert.Equal(t, 60, tr.DecantsSold)
	// floor(60/10)=6 pero el lote solo tiene 5 botellas
	assert.Equal(t, 5, tr.BottlesDone)
	require.Len(t, s.logs, 5)
	for i, log := range s.logs {
		assert.Equal(t, i+1, log.BottleSequence)
		assert.Equal(t, 10, log.DecantsObtained)
		assert.Equal(t, entity.CompletionAuto, log.CompletionSource)
	}
}

// TestRecordSale_SecuenciaDesplazadaPorBotellasVendidas: las botellas vendidas
// completas desplazan la secuencia de las auto-terminadas y reducen el máximo
// decantable.
func TestRecordSale_SecuenciaDesplazadaPorBotellasVendidas(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	item := s.addContainerItem("Decant Bottle 10ml")
	s.addEntry(item.ID, 100, decimal.NewFromInt(500), time.Now())
	uc := newUseCase(s)

	// Primero 2 botellas completas
	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.NewFromInt(300_000),
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeFullBottle, Quantity: 2, UnitPrice: decimal.NewFromInt(150_000)},
		},
	})
	require.NoError(t, err)

	// Luego 10 decants: 1 botella auto-terminada con secuencia 2+1=3
	_, err = uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.NewFromInt(250_000),
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeDecant, Quantity: 10, UnitPrice: decimal.NewFromInt(25_000), DecantBottleItemID: intPtr(item.ID)},
		},
	})
	require.NoError(t, err)

	require.Len(t, s.logs, 1)
	assert.Equal(t, 3, s.logs[0].BottleSequence)
	assert.Equal(t, 1, s.tracking[batch.ID].BottlesDone)
}

// TestRecordSale_SecuenciaContinuaTrasTerminacionManual: si ya existe un
// registro manual, la secuencia auto continúa desde el máximo registrado y
// nunca repite un número dentro del lote.
func TestRecordSale_SecuenciaContinuaTrasTerminacionManual(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	item := s.addContainerItem("Decant Bottle 10ml")
	s.addEntry(item.ID, 100, decimal.NewFromInt(500), time.Now())
	s.logs = append(s.logs, &entity.DecantBottleLog{
		ID:               s.id(),
		StockBatchID:     batch.ID,
		PerfumeID:        p.ID,
		BottleSequence:   1,
		DecantsObtained:  8,
		CompletionSource: entity.CompletionManual,
		CompletedAt:      time.Now(),
	})
	uc := newUseCase(s)

	// Con rendimiento 10, vender 16 decants deriva una botella auto. La
	// secuencia 1 ya la ocupa el registro manual, así que la auto toma la 2.
	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.NewFromInt(400_000),
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeDecant, Quantity: 16, UnitPrice: decimal.NewFromInt(25_000), DecantBottleItemID: intPtr(item.ID)},
		},
	})
	require.NoError(t, err)

	require.Len(t, s.logs, 2)
	assert.Equal(t, 2, s.logs[1].BottleSequence)
	assert.Equal(t, entity.CompletionAuto, s.logs[1].CompletionSource)
}

// ── Abonos a deuda ────────────────────────────────────────────────────────────

func TestRecordDebtPayment_ReduceDeuda(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	uc := newUseCase(s)

	sale, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.NewFromInt(100_000),
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeFullBottle, Quantity: 2, UnitPrice: decimal.NewFromInt(150_000)},
		},
	})
	require.NoError(t, err)
	require.True(t, sale.DebtAmount.Equal(decimal.NewFromInt(200_000)))

	payment, err := uc.RecordDebtPayment(context.Background(), sale.ID, dto.RecordDebtPaymentRequest{
		Amount: decimal.NewFromInt(150_000),
	})
	require.NoError(t, err)
	assert.Equal(t, sale.ID, payment.SaleID)
	assert.True(t, s.sales[sale.ID].DebtAmount.Equal(decimal.NewFromInt(50_000)))
	assert.True(t, s.sales[sale.ID].AmountPaid.Equal(decimal.NewFromInt(250_000)))
}

func TestRecordDebtPayment_ExcedeDeuda(t *testing.T) {
	s := newFakeStore()
	p := s.addPerfume("Aventus", 10)
	batch := s.addBatch(p.ID, 5, decimal.NewFromInt(100_000))
	uc := newUseCase(s)

	sale, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		AmountPaid: decimal.NewFromInt(250_000),
		Items: []dto.SaleItemInput{
			{BatchID: batch.ID, SaleType: entity.SaleTypeFullBottle, Quantity: 2, UnitPrice: decimal.NewFromInt(150_000)},
		},
	})
	require.NoError(t, err)

	_, err = uc.RecordDebtPayment(context.Background(), sale.ID, dto.RecordDebtPaymentRequest{
		Amount: decimal.NewFromInt(100_000),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	// La deuda vigente queda intacta
	assert.True(t, s.sales[sale.ID].DebtAmount.Equal(decimal.NewFromInt(50_000)))
}

func TestRecordSale_SinItems(t *testing.T) {
	uc := newUseCase(newFakeStore())
	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{AmountPaid: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

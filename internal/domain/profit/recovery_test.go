package profit_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mumi-pos-api/internal/domain/profit"
)

// ──────────────────────────────────────────────────────────────────────────────
// Estos tests son el "canario en la mina" del motor contable: si alguien altera
// el orden de replay, el min/max de recuperación o el estado por lote, los
// vectores exactos de abajo fallan de inmediato.
// ──────────────────────────────────────────────────────────────────────────────

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func row(saleID, itemID, batchID int64, day int, subtotal, batchCost decimal.Decimal) profit.LineRow {
	return profit.LineRow{
		SaleID:       saleID,
		SaleDate:     time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		ItemID:       itemID,
		StockBatchID: batchID,
		PerfumeID:    1,
		PerfumeName:  "Oud Royal",
		SaleType:     "decant",
		Quantity:     1,
		UnitPrice:    subtotal,
		Subtotal:     subtotal,
		BatchCost:    batchCost,
	}
}

// Lote de 5 botellas a 100 c/u (costo 500). Venta de 60 decants a 10:
// ingreso 600 → recupera 500, ganancia 100.
func TestReplay_EscenarioCostoRecuperadoEnUnaVenta(t *testing.T) {
	res := profit.Replay([]profit.LineRow{
		row(1, 1, 10, 1, d(600), d(500)),
	})

	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].CostRecovered.Equal(d(500)), "debe recuperar exactamente el costo del lote")
	assert.True(t, res.Lines[0].Profit.Equal(d(100)), "el excedente es ganancia")
	assert.True(t, res.TotalSalesValue.Equal(d(600)))
	assert.True(t, res.TotalCost.Equal(d(500)))
	assert.True(t, res.TotalProfit.Equal(d(100)))
}

// La recuperación parcial se arrastra entre ventas: la primera venta no genera
// ganancia hasta completar el costo; la segunda termina de recuperar y el resto
// es ganancia; la tercera es ganancia pura.
func TestReplay_RecuperacionParcialEntreVentas(t *testing.T) {
	res := profit.Replay([]profit.LineRow{
		row(1, 1, 10, 1, d(300), d(500)),
		row(2, 2, 10, 2, d(300), d(500)),
		row(3, 3, 10, 3, d(250), d(500)),
	})

	require.Len(t, res.Lines, 3)

	assert.True(t, res.Lines[0].CostRecovered.Equal(d(300)))
	assert.True(t, res.Lines[0].Profit.IsZero(), "sin ganancia hasta recuperar el costo")

	assert.True(t, res.Lines[1].CostRecovered.Equal(d(200)), "solo faltaban 200 por recuperar")
	assert.True(t, res.Lines[1].Profit.Equal(d(100)))

	assert.True(t, res.Lines[2].CostRecovered.IsZero(), "costo ya recuperado")
	assert.True(t, res.Lines[2].Profit.Equal(d(250)))
}

// Conservación: Σ CostRecovered de un lote nunca excede su costo, y una vez
// alcanzado, toda línea posterior recupera cero.
func TestReplay_ConservacionDeCosto(t *testing.T) {
	rows := []profit.LineRow{
		row(1, 1, 7, 1, d(120), d(450)),
		row(2, 2, 7, 2, d(180), d(450)),
		row(3, 3, 7, 3, d(200), d(450)),
		row(4, 4, 7, 4, d(500), d(450)),
	}
	res := profit.Replay(rows)

	sum := decimal.Zero
	reachedFull := false
	for _, line := range res.Lines {
		sum = sum.Add(line.CostRecovered)
		assert.False(t, sum.GreaterThan(d(450)), "la recuperación acumulada no puede exceder el costo del lote")
		assert.False(t, line.Profit.IsNegative(), "la ganancia por línea nunca es negativa")
		if reachedFull {
			assert.True(t, line.CostRecovered.IsZero(), "tras recuperar todo, las líneas siguientes son ganancia pura")
		}
		if sum.Equal(d(450)) {
			reachedFull = true
		}
	}
	assert.True(t, sum.Equal(d(450)))
}

// Lotes independientes: el estado de recuperación no se cruza entre lotes.
func TestReplay_LotesIndependientes(t *testing.T) {
	res := profit.Replay([]profit.LineRow{
		row(1, 1, 10, 1, d(500), d(500)),
		row(2, 2, 20, 2, d(100), d(400)),
	})

	assert.True(t, res.Lines[0].CostRecovered.Equal(d(500)))
	assert.True(t, res.Lines[1].CostRecovered.Equal(d(100)), "el lote 20 arranca con recuperación cero")
	assert.True(t, res.TotalProfit.IsZero())
}

func TestReplay_SinFilas(t *testing.T) {
	res := profit.Replay(nil)
	assert.Empty(t, res.Lines)
	assert.True(t, res.TotalSalesValue.IsZero())
	assert.True(t, res.TotalCost.IsZero())
	assert.True(t, res.TotalProfit.IsZero())
}

// Las notas de cálculo siguen el formato del recibo con separador de miles.
func TestReplay_NotasDeCalculo(t *testing.T) {
	res := profit.Replay([]profit.LineRow{
		row(1, 1, 10, 1, d(600000), d(500000)), // recupera y gana
		row(2, 2, 20, 2, d(100000), d(400000)), // recuperación parcial
		row(3, 3, 10, 3, d(50000), d(500000)),  // ganancia pura
	})

	assert.Equal(t,
		"Cost recovery: UGX 500,000; Profit: UGX 100,000 (bottle cost partly recovered)",
		res.Lines[0].Note)
	assert.Equal(t,
		"Cost recovery: UGX 100,000 (UGX 300,000 left to recover)",
		res.Lines[1].Note)
	assert.Equal(t,
		"Profit: UGX 50,000 (bottle cost already recovered)",
		res.Lines[2].Note)
}

func TestFormatAmount_SeparadorDeMiles(t *testing.T) {
	assert.Equal(t, "1,250,000", profit.FormatAmount(decimal.NewFromInt(1250000)))
	assert.Equal(t, "0", profit.FormatAmount(decimal.Zero))
}

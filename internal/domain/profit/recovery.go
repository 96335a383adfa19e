// Package profit implementa la contabilidad de recuperación de costo:
// el ingreso de cada venta cubre primero el costo de adquisición de su lote;
// solo el excedente, una vez recuperado el costo completo, cuenta como ganancia.
//
// Es la única implementación del replay: tanto el desglose de ganancias como el
// resumen financiero la consumen, de modo que ambos reportes no pueden divergir.
package profit

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LineRow es una línea de venta unida a su venta y a su lote, tal como la
// entrega el repositorio de reportes, ya ordenada por
// (sale_date ASC, sale_id ASC, item_id ASC). El orden cronológico es
// obligatorio: la recuperación de costo es estado acumulado por lote.
type LineRow struct {
	SaleID       int64
	SaleDate     time.Time
	CustomerName *string
	SaleTotal    decimal.Decimal

	ItemID       int64
	StockBatchID int64
	PerfumeID    int64
	PerfumeName  string
	SaleType     string
	Quantity     int
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal

	BatchCost decimal.Decimal // subtotal_cost del lote: el monto a recuperar
}

// LineResult es el resultado del replay para una línea.
type LineResult struct {
	Row           LineRow
	CostRecovered decimal.Decimal // parte del ingreso que recupera costo
	Profit        decimal.Decimal // ingreso − CostRecovered (nunca negativo)
	Note          string          // explicación legible del cálculo
}

// Result acumula los totales globales del replay.
type Result struct {
	Lines           []LineResult
	TotalSalesValue decimal.Decimal
	TotalCost       decimal.Decimal
	TotalProfit     decimal.Decimal
}

// printer formatea montos con separador de miles, como en los recibos.
var printer = message.NewPrinter(language.English)

// FormatAmount devuelve el monto redondeado con separador de miles (ej. "1,250,000").
func FormatAmount(d decimal.Decimal) string {
	return printer.Sprintf("%d", d.Round(0).IntPart())
}

// Replay recorre las líneas en orden y asigna a cada una cuánto de su ingreso
// recupera costo y cuánto es ganancia. Garantiza que el costo de un lote se
// recupera a lo sumo una vez (repartido entre tantas ventas como haga falta) y
// que la ganancia por línea nunca es negativa.
//
// Si las filas llegan filtradas por fecha, el estado de recuperación se
// reconstruye solo dentro de la ventana: un reporte filtrado NO es un
// subconjunto del reporte completo.
func Replay(rows []LineRow) Result {
	recoveredByBatch := make(map[int64]decimal.Decimal, len(rows))

	res := Result{
		Lines:           make([]LineResult, 0, len(rows)),
		TotalSalesValue: decimal.Zero,
		TotalCost:       decimal.Zero,
		TotalProfit:     decimal.Zero,
	}

	for _, row := range rows {
		revenue := row.Subtotal
		recovered, ok := recoveredByBatch[row.StockBatchID]
		if !ok {
			recovered = decimal.Zero
		}

		costLeft := row.BatchCost.Sub(recovered)
		if costLeft.IsNegative() {
			costLeft = decimal.Zero
		}

		recovering := decimal.Min(revenue, costLeft)
		lineProfit := revenue.Sub(recovering)

		recoveredByBatch[row.StockBatchID] = recovered.Add(recovering)

		res.TotalSalesValue = res.TotalSalesValue.Add(revenue)
		res.TotalCost = res.TotalCost.Add(recovering)
		res.TotalProfit = res.TotalProfit.Add(lineProfit)

		res.Lines = append(res.Lines, LineResult{
			Row:           row,
			CostRecovered: recovering,
			Profit:        lineProfit,
			Note:          calculationNote(recovering, lineProfit, costLeft),
		})
	}
	return res
}

// calculationNote replica las notas del recibo: cuánto recuperó costo la línea,
// cuánto falta por recuperar o desde cuándo todo es ganancia.
func calculationNote(recovering, lineProfit, costLeft decimal.Decimal) string {
	switch {
	case recovering.IsPositive() && lineProfit.IsPositive():
		return printer.Sprintf("Cost recovery: UGX %d; Profit: UGX %d (bottle cost partly recovered)",
			recovering.Round(0).IntPart(), lineProfit.Round(0).IntPart())
	case recovering.IsPositive():
		left := costLeft.Sub(recovering)
		if left.IsPositive() {
			return printer.Sprintf("Cost recovery: UGX %d (UGX %d left to recover)",
				recovering.Round(0).IntPart(), left.Round(0).IntPart())
		}
		return printer.Sprintf("Cost recovery: UGX %d (bottle cost now fully recovered)",
			recovering.Round(0).IntPart())
	default:
		return printer.Sprintf("Profit: UGX %d (bottle cost already recovered)",
			lineProfit.Round(0).IntPart())
	}
}

package entity

import "time"

// Fuente de terminación de una botella decantada.
const (
	CompletionAuto   = "auto"   // derivada del contador de decants vendidos
	CompletionManual = "manual" // confirmación explícita del operador
)

// DecantTracking acumula por lote los contadores de venta y consumo.
// Existe a lo sumo una fila por StockBatch.
// Invariante: un lote con DecantsSold > 0 no admite ventas full_bottle.
type DecantTracking struct {
	ID           int64
	StockBatchID int64
	PerfumeID    int64
	DecantsSold  int
	BottlesSold  int // botellas vendidas completas
	BottlesDone  int // botellas consumidas decantando (auto + manual)
	CreatedAt    time.Time
}

// DecantBottleLog es el registro inmutable de una botella física agotada por
// decantación. BottleSequence es continuo por lote y nunca retrocede.
type DecantBottleLog struct {
	ID               int64
	StockBatchID     int64
	PerfumeID        int64
	BottleSequence   int
	DecantsObtained  int // rendimiento real de esa botella
	CompletionSource string
	CompletedAt      time.Time
}

// DeletedBottle es el registro de auditoría de botellas retiradas del
// inventario (agotadas, dañadas). No altera la base de costo del lote.
type DeletedBottle struct {
	ID              int64
	StockBatchID    int64
	PerfumeID       int64
	QuantityRemoved int
	Reason          string
	Note            *string
	RemovedAt       time.Time
}

// ReasonOutOfStock motivo estándar de retiro de botellas.
const ReasonOutOfStock = "out_of_stock"

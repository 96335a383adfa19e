package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense es un gasto operativo plano (resta de la caja líquida).
type Expense struct {
	ID          int64
	Description string
	Amount      decimal.Decimal
	Category    *string
	ExpenseDate time.Time
	CreatedAt   time.Time
}

// Origen de una inversión: manual u originada por un envío fondeado con capital.
const (
	InvestmentOriginManual          = "manual"
	InvestmentOriginShipmentCapital = "shipment_capital"
)

// Investment registra capital aportado al negocio. Las filas con
// Origin == shipment_capital son mantenidas por la sincronización de envíos
// (exactamente una por envío fondeado con capital) y no cuentan como capital manual.
type Investment struct {
	ID               int64
	Description      string
	Amount           decimal.Decimal
	InvestmentDate   time.Time
	Origin           string
	SourceShipmentID *int64 // nil para inversiones manuales
	CreatedAt        time.Time
}

// Tipos de ajuste de caja.
const (
	AdjustmentLiquidCash = "liquid_cash"
	AdjustmentCapital    = "capital"
)

// CashAdjustment reconcilia un total derivado con el monto real verificado por
// el operador, sin reescribir el historial: solo se persiste el delta y todas
// las agregaciones posteriores lo suman.
type CashAdjustment struct {
	ID             int64
	Type           string
	PreviousAmount decimal.Decimal // balance calculado antes del reset
	NewAmount      decimal.Decimal // monto objetivo ingresado
	Adjustment     decimal.Decimal // NewAmount − PreviousAmount
	Reason         *string
	AdjustedAt     time.Time
}

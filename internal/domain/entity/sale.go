package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta por línea.
const (
	SaleTypeFullBottle = "full_bottle"
	SaleTypeDecant     = "decant"
)

// Sale es la cabecera de una venta. TotalAmount = Σ subtotales de líneas;
// DebtAmount = TotalAmount − AmountPaid y nunca es negativo.
type Sale struct {
	ID            int64
	CustomerName  *string
	PaymentMethod string
	TotalAmount   decimal.Decimal
	AmountPaid    decimal.Decimal
	DebtAmount    decimal.Decimal
	SaleDate      time.Time
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem es una línea de venta, inmutable una vez creada.
type SaleItem struct {
	ID           int64
	SaleID       int64
	PerfumeID    int64
	StockBatchID int64
	SaleType     string
	Quantity     int
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal // Quantity × UnitPrice
	CreatedAt    time.Time

	// PerfumeName se completa en listados (JOIN), no se persiste aquí.
	PerfumeName string
}

// DebtPayment es un abono a la deuda de una venta; al aplicarse incrementa
// AmountPaid y reduce DebtAmount de la venta en el mismo monto.
type DebtPayment struct {
	ID            int64
	SaleID        int64
	AmountPaid    decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod string
	CreatedAt     time.Time
}

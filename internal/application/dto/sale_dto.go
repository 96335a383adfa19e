package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemInput una línea de venta dentro de POST /api/sales.
type SaleItemInput struct {
	BatchID            int64           `json:"batch_id"`
	SaleType           string          `json:"sale_type"` // full_bottle | decant
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DecantBottleItemID *int64          `json:"decant_bottle_item_id,omitempty"`
}

// RecordSaleRequest body para POST /api/sales.
type RecordSaleRequest struct {
	CustomerName  string          `json:"customer_name,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	SaleDate      string          `json:"sale_date,omitempty"` // YYYY-MM-DD, hoy si falta
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Items         []SaleItemInput `json:"items"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID          int64           `json:"id"`
	BatchID     int64           `json:"batch_id"`
	PerfumeID   int64           `json:"perfume_id"`
	PerfumeName string          `json:"perfume_name"`
	SaleType    string          `json:"sale_type"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse una venta con sus líneas.
type SaleResponse struct {
	ID            int64              `json:"id"`
	CustomerName  string             `json:"customer_name,omitempty"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	SaleDate      time.Time          `json:"sale_date"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	AmountPaid    decimal.Decimal    `json:"amount_paid"`
	DebtAmount    decimal.Decimal    `json:"debt_amount"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

// RecordDebtPaymentRequest body para POST /api/sales/:id/debt-payments.
type RecordDebtPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// DebtPaymentResponse un abono registrado contra una deuda.
type DebtPaymentResponse struct {
	ID            int64           `json:"id"`
	SaleID        int64           `json:"sale_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	RemainingDebt decimal.Decimal `json:"remaining_debt"`
}

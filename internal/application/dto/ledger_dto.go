package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	ExpenseDate string          `json:"expense_date,omitempty"`
}

// ExpenseResponse un gasto registrado.
type ExpenseResponse struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateInvestmentRequest body para POST /api/investments.
type CreateInvestmentRequest struct {
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	InvestmentDate string          `json:"investment_date,omitempty"`
}

// InvestmentResponse una inversión de capital.
type InvestmentResponse struct {
	ID               int64           `json:"id"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Origin           string          `json:"origin"`
	SourceShipmentID *int64          `json:"source_shipment_id,omitempty"`
	InvestmentDate   time.Time       `json:"investment_date"`
	CreatedAt        time.Time       `json:"created_at"`
}

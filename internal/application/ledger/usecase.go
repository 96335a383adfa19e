// Package ledger cubre los libros planos del negocio: gastos operativos e
// inversiones de capital manuales. Las inversiones shipment_capital las
// mantiene el módulo de stock; aquí solo se listan.
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

type UseCase struct {
	expenseRepo    repository.ExpenseRepository
	investmentRepo repository.InvestmentRepository
}

func NewUseCase(expenseRepo repository.ExpenseRepository, investmentRepo repository.InvestmentRepository) *UseCase {
	return &UseCase{expenseRepo: expenseRepo, investmentRepo: investmentRepo}
}

// CreateExpense registra un gasto operativo.
func (uc *UseCase) CreateExpense(ctx context.Context, in dto.CreateExpenseRequest) (*entity.Expense, error) {
	if in.Description == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDateOrToday(in.ExpenseDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	e := &entity.Expense{
		Description: in.Description,
		Amount:      in.Amount,
		ExpenseDate: date,
	}
	if in.Category != "" {
		cat := in.Category
		e.Category = &cat
	}
	if err := uc.expenseRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListExpenses gastos dentro del rango opcional.
func (uc *UseCase) ListExpenses(ctx context.Context, start, end *time.Time) ([]*entity.Expense, error) {
	return uc.expenseRepo.List(ctx, start, end)
}

// DeleteExpense elimina un gasto.
func (uc *UseCase) DeleteExpense(ctx context.Context, id int64) error {
	return uc.expenseRepo.Delete(ctx, id)
}

// CreateInvestment registra una inversión de capital manual.
func (uc *UseCase) CreateInvestment(ctx context.Context, in dto.CreateInvestmentRequest) (*entity.Investment, error) {
	if in.Description == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDateOrToday(in.InvestmentDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	inv := &entity.Investment{
		Description:    in.Description,
		Amount:         in.Amount,
		InvestmentDate: date,
		Origin:         entity.InvestmentOriginManual,
	}
	if err := uc.investmentRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListInvestments inversiones, con o sin las filas sincronizadas de envíos.
func (uc *UseCase) ListInvestments(ctx context.Context, includeAuto bool) ([]*entity.Investment, error) {
	return uc.investmentRepo.List(ctx, includeAuto)
}

func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

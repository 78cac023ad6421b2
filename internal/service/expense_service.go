package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

// ExpenseService exposes the expense ledger scoped to its owner. Reads and
// writes on a single record verify ownership after the fetch; list-shaped
// operations scope the query to the owner up front so cross-owner rows are
// never fetched at all.
type ExpenseService interface {
	Create(ctx context.Context, owner *model.User, expense *model.Expense) (*model.Expense, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Expense, error)
	GetByID(ctx context.Context, ownerID, id uint) (*model.Expense, error)
	Update(ctx context.Context, ownerID, id uint, updates *model.Expense) (*model.Expense, error)
	Delete(ctx context.Context, ownerID, id uint) error
	Filter(ctx context.Context, ownerID uint, dateFrom, dateTo *model.Date, category string) ([]model.Expense, error)
	MonthlySummary(ctx context.Context, ownerID uint) (map[string]float64, error)
}

type expenseService struct {
	expenses repository.ExpenseRepository
}

// NewExpenseService builds an ExpenseService.
func NewExpenseService(expenses repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenses: expenses}
}

func (s *expenseService) Create(ctx context.Context, owner *model.User, expense *model.Expense) (*model.Expense, error) {
	expense.ID = 0
	expense.UserID = owner.ID
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return expense, nil
}

func (s *expenseService) ListByOwner(ctx context.Context, ownerID uint) ([]model.Expense, error) {
	return s.expenses.FindByOwner(ctx, ownerID)
}

// GetByID fetches an expense owned by ownerID. An absent record and a record
// owned by someone else surface as the same not-found error.
func (s *expenseService) GetByID(ctx context.Context, ownerID, id uint) (*model.Expense, error) {
	expense, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	if expense.UserID != ownerID {
		return nil, apperrors.ErrExpenseNotFound
	}
	return expense, nil
}

func (s *expenseService) Update(ctx context.Context, ownerID, id uint, updates *model.Expense) (*model.Expense, error) {
	expense, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	expense.Title = updates.Title
	expense.Amount = updates.Amount
	expense.Category = updates.Category
	expense.Date = updates.Date
	expense.Description = updates.Description

	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return expense, nil
}

func (s *expenseService) Delete(ctx context.Context, ownerID, id uint) error {
	expense, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, expense); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (s *expenseService) Filter(ctx context.Context, ownerID uint, dateFrom, dateTo *model.Date, category string) ([]model.Expense, error) {
	filter := repository.ExpenseFilter{
		OwnerID:  ownerID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Category: category,
	}
	return s.expenses.FindFiltered(ctx, filter)
}

// MonthlySummary groups the owner's expenses by YYYY-MM and sums amounts per
// bucket. Months with no expenses are absent from the result.
func (s *expenseService) MonthlySummary(ctx context.Context, ownerID uint) (map[string]float64, error) {
	expenses, err := s.expenses.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := make(map[string]float64)
	for i := range expenses {
		summary[expenses[i].MonthKey()] += expenses[i].Amount
	}
	return summary, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"spendtrack/internal/model"
)

// ExpenseRepository defines persistence operations for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	Update(ctx context.Context, expense *model.Expense) error
	Delete(ctx context.Context, expense *model.Expense) error
	FindByID(ctx context.Context, id uint) (*model.Expense, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]model.Expense, error)
	FindFiltered(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository builds a GORM-backed repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) Update(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Delete(expense).Error
}

func (r *expenseRepository) FindByID(ctx context.Context, id uint) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) FindByOwner(ctx context.Context, ownerID uint) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) FindFiltered(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := filter.Scope(r.db.WithContext(ctx)).Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

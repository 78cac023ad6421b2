package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uint) (*model.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByOwner(ctx context.Context, ownerID uint) ([]model.Expense, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindFiltered(ctx context.Context, filter repository.ExpenseFilter) ([]model.Expense, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Expense), args.Error(1)
}

func TestExpenseService_Create_BindsOwner(t *testing.T) {
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo)

	owner := &model.User{ID: 4, Email: "alice@example.com"}
	expense := &model.Expense{Title: "Lunch", Amount: 12, Date: model.NewDate(2024, time.March, 3)}

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Expense")).Return(nil)

	created, err := service.Create(context.Background(), owner, expense)
	assert.NoError(t, err)
	assert.Equal(t, owner.ID, created.UserID)

	mockRepo.AssertExpectations(t)
}

func TestExpenseService_GetByID_OwnershipIsolation(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockExpenseRepository)
	}{
		{
			name: "absent record",
			setupMock: func(m *MockExpenseRepository) {
				m.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
			},
		},
		{
			name: "record owned by another user",
			setupMock: func(m *MockExpenseRepository) {
				m.On("FindByID", mock.Anything, uint(9)).Return(&model.Expense{ID: 9, UserID: 2}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockExpenseRepository)
			tt.setupMock(mockRepo)
			service := NewExpenseService(mockRepo)

			// Both cases surface as the same not-found error, so ownership
			// is never disclosed.
			expense, err := service.GetByID(context.Background(), 1, 9)
			assert.ErrorIs(t, err, apperrors.ErrExpenseNotFound)
			assert.Nil(t, expense)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestExpenseService_Update_ForeignRecordUntouched(t *testing.T) {
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo)

	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(&model.Expense{ID: 9, UserID: 2, Title: "theirs"}, nil)
	// No Update expectation: a foreign record must never be written.

	updates := &model.Expense{Title: "mine now"}
	expense, err := service.Update(context.Background(), 1, 9, updates)
	assert.ErrorIs(t, err, apperrors.ErrExpenseNotFound)
	assert.Nil(t, expense)

	mockRepo.AssertExpectations(t)
}

func TestExpenseService_Update_CopiesFields(t *testing.T) {
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo)

	stored := &model.Expense{ID: 5, UserID: 1, Title: "old", Amount: 1, Category: "misc", Date: model.NewDate(2024, time.January, 1)}
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)
	mockRepo.On("Update", mock.Anything, stored).Return(nil)

	updates := &model.Expense{
		Title:       "new title",
		Amount:      42.5,
		Category:    "food",
		Date:        model.NewDate(2024, time.February, 2),
		Description: "edited",
	}
	expense, err := service.Update(context.Background(), 1, 5, updates)
	assert.NoError(t, err)
	assert.Equal(t, "new title", expense.Title)
	assert.Equal(t, 42.5, expense.Amount)
	assert.Equal(t, "food", expense.Category)
	assert.Equal(t, "edited", expense.Description)
	// Ownership is never transferred by an update.
	assert.Equal(t, uint(1), expense.UserID)

	mockRepo.AssertExpectations(t)
}

func TestExpenseService_Delete_ForeignRecordUntouched(t *testing.T) {
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo)

	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(&model.Expense{ID: 9, UserID: 2}, nil)
	// No Delete expectation: a foreign record must never be removed.

	err := service.Delete(context.Background(), 1, 9)
	assert.ErrorIs(t, err, apperrors.ErrExpenseNotFound)

	mockRepo.AssertExpectations(t)
}

func TestExpenseService_Filter_BuildsScopedPredicate(t *testing.T) {
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo)

	dateFrom := model.NewDate(2024, time.February, 1)

	var captured repository.ExpenseFilter
	mockRepo.On("FindFiltered", mock.Anything, mock.AnythingOfType("repository.ExpenseFilter")).Run(func(args mock.Arguments) {
		captured = args.Get(1).(repository.ExpenseFilter)
	}).Return([]model.Expense{}, nil)

	_, err := service.Filter(context.Background(), 1, &dateFrom, nil, "")
	assert.NoError(t, err)

	// Owner scoping is always present; unset optionals stay nil so they are
	// omitted from the query rather than matched as wildcards.
	assert.Equal(t, uint(1), captured.OwnerID)
	assert.NotNil(t, captured.DateFrom)
	assert.Equal(t, dateFrom, *captured.DateFrom)
	assert.Nil(t, captured.DateTo)
	assert.Empty(t, captured.Category)

	mockRepo.AssertExpectations(t)
}

func TestExpenseService_MonthlySummary(t *testing.T) {
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo)

	mockRepo.On("FindByOwner", mock.Anything, uint(1)).Return([]model.Expense{
		{ID: 1, UserID: 1, Amount: 10.0, Date: model.NewDate(2024, time.March, 5)},
		{ID: 2, UserID: 1, Amount: 5.0, Date: model.NewDate(2024, time.March, 28)},
		{ID: 3, UserID: 1, Amount: 7.0, Date: model.NewDate(2024, time.April, 1)},
	}, nil)

	summary, err := service.MonthlySummary(context.Background(), 1)
	assert.NoError(t, err)

	assert.Len(t, summary, 2)
	assert.InEpsilon(t, 15.0, summary["2024-03"], 1e-9)
	assert.InEpsilon(t, 7.0, summary["2024-04"], 1e-9)

	mockRepo.AssertExpectations(t)
}

func TestExpenseService_MonthlySummary_Empty(t *testing.T) {
	mockRepo := new(MockExpenseRepository)
	service := NewExpenseService(mockRepo)

	mockRepo.On("FindByOwner", mock.Anything, uint(1)).Return([]model.Expense{}, nil)

	summary, err := service.MonthlySummary(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, summary)
}

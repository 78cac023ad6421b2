package repository

import (
	"gorm.io/gorm"

	"spendtrack/internal/model"
)

// ExpenseFilter is a conjunctive predicate over expenses. OwnerID is always
// applied; optional fields are omitted entirely when unset, so an empty
// filter still yields "all expenses for this owner" and nothing wider.
type ExpenseFilter struct {
	OwnerID  uint
	DateFrom *model.Date
	DateTo   *model.Date
	Category string
}

// Scope applies the predicate to a GORM query.
func (f ExpenseFilter) Scope(db *gorm.DB) *gorm.DB {
	db = db.Where("user_id = ?", f.OwnerID)
	if f.DateFrom != nil {
		db = db.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		db = db.Where("date <= ?", *f.DateTo)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	return db
}

// Matches reports whether an expense satisfies the predicate. It mirrors
// Scope exactly so filter behavior is testable without a database.
func (f ExpenseFilter) Matches(e *model.Expense) bool {
	if e.UserID != f.OwnerID {
		return false
	}
	if f.DateFrom != nil && e.Date.Before(f.DateFrom.Time) {
		return false
	}
	if f.DateTo != nil && e.Date.After(f.DateTo.Time) {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return true
}

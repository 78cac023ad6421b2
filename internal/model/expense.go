package model

import "time"

// Expense represents a single ledger entry. Ownership is fixed at creation
// and never transferred.
type Expense struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Category    string    `json:"category" gorm:"size:100;index"`
	Date        Date      `json:"date" gorm:"type:date;not null;index"`
	Description string    `json:"description,omitempty" gorm:"size:1024"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MonthKey returns the YYYY-MM bucket the expense falls into.
func (e *Expense) MonthKey() string {
	return e.Date.Format("2006-01")
}

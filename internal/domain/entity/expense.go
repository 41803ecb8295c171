// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a single recorded expense. Every expense belongs to
// exactly one user and one category owned by that same user.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal // Always positive, 2-decimal precision
	Description string
	ExpenseDate time.Time // Calendar date, no time-of-day component
	ReceiptURL  string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(
	userID uuid.UUID,
	categoryID uuid.UUID,
	amount decimal.Decimal,
	description string,
	expenseDate time.Time,
	receiptURL string,
	tags []string,
) *Expense {
	now := time.Now().UTC()
	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		ExpenseDate: expenseDate,
		ReceiptURL:  receiptURL,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ExpenseWithCategory represents an expense joined with its category record.
type ExpenseWithCategory struct {
	Expense  *Expense
	Category *Category
}

// ExpenseListResult represents the result of listing expenses.
type ExpenseListResult struct {
	Expenses   []*ExpenseWithCategory
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

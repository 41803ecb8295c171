// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

const (
	// DefaultPageLimit is the page size used when none is requested.
	DefaultPageLimit = 20
	// MaxPageLimit is the largest allowed page size.
	MaxPageLimit = 100
)

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	UserID     uuid.UUID
	Page       int
	Limit      int
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// ExpenseOutput represents a single expense in use case output.
type ExpenseOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Category    *CategoryOutput
	Amount      decimal.Decimal
	Description string
	ExpenseDate time.Time
	ReceiptURL  string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryOutput represents category information in expense output.
type CategoryOutput struct {
	ID    uuid.UUID
	Name  string
	Color string
	Icon  string
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses   []*ExpenseOutput
	Pagination PaginationOutput
}

// ListExpensesUseCase handles listing expenses logic.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the expense listing.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	// Clamp pagination values
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	filter := adapter.ExpenseFilter{
		UserID:     input.UserID,
		CategoryID: input.CategoryID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}

	pagination := adapter.ExpensePagination{
		Page:  page,
		Limit: limit,
	}

	result, err := uc.expenseRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}

	output := &ListExpensesOutput{
		Expenses: make([]*ExpenseOutput, len(result.Expenses)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}

	for i, exp := range result.Expenses {
		output.Expenses[i] = toExpenseOutput(exp)
	}

	return output, nil
}

// toExpenseOutput converts a joined expense entity to use case output.
func toExpenseOutput(exp *entity.ExpenseWithCategory) *ExpenseOutput {
	out := &ExpenseOutput{
		ID:          exp.Expense.ID,
		UserID:      exp.Expense.UserID,
		CategoryID:  exp.Expense.CategoryID,
		Amount:      exp.Expense.Amount,
		Description: exp.Expense.Description,
		ExpenseDate: exp.Expense.ExpenseDate,
		ReceiptURL:  exp.Expense.ReceiptURL,
		Tags:        exp.Expense.Tags,
		CreatedAt:   exp.Expense.CreatedAt,
		UpdatedAt:   exp.Expense.UpdatedAt,
	}

	if exp.Category != nil {
		out.Category = &CategoryOutput{
			ID:    exp.Category.ID,
			Name:  exp.Category.Name,
			Color: exp.Category.Color,
			Icon:  exp.Category.Icon,
		}
	}

	return out
}

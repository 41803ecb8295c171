// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseFilter represents filter criteria for expense queries. All
// predicates are AND-combined with the mandatory user scope.
type ExpenseFilter struct {
	UserID     uuid.UUID
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// ExpensePagination represents pagination parameters for expense queries.
type ExpensePagination struct {
	Page  int
	Limit int
}

// ExpenseRepository defines the interface for expense persistence operations.
// Lookups are scoped by user; writes that reference a category re-verify
// its ownership inside the same transaction as the mutation.
type ExpenseRepository interface {
	// Create inserts the expense after verifying, in the same transaction,
	// that its category belongs to the same user. Returns the stored expense
	// joined with its category, or domain ErrCategoryNotOwned.
	Create(ctx context.Context, expense *entity.Expense) (*entity.ExpenseWithCategory, error)

	// FindByIDAndUser retrieves an expense with its category, scoped to the user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.ExpenseWithCategory, error)

	// FindByFilter retrieves a page of expenses with categories joined,
	// ordered by expense date descending.
	FindByFilter(ctx context.Context, filter ExpenseFilter, pagination ExpensePagination) (*entity.ExpenseListResult, error)

	// Update saves the expense after re-verifying category ownership inside
	// the same transaction.
	Update(ctx context.Context, expense *entity.Expense) (*entity.ExpenseWithCategory, error)

	// DeleteByIDAndUser removes an expense scoped to the owning user.
	DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) error
}

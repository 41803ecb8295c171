// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdateExpenseInput represents the input for expense update. Nil fields are
// left unchanged.
type UpdateExpenseInput struct {
	UserID      uuid.UUID
	ExpenseID   uuid.UUID
	CategoryID  *uuid.UUID
	Amount      *decimal.Decimal
	Description *string
	ExpenseDate *time.Time
	ReceiptURL  *string
	Tags        *[]string
}

// UpdateExpenseOutput represents the output of expense update.
type UpdateExpenseOutput struct {
	Expense *ExpenseOutput
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(expenseRepo adapter.ExpenseRepository) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	// Find the existing expense scoped to the user
	existing, err := uc.expenseRepo.FindByIDAndUser(ctx, input.ExpenseID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNotFound,
				"expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	expense := existing.Expense

	// Apply provided fields only
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeInvalidAmount,
				"amount must be greater than zero",
				domainerror.ErrInvalidAmount,
			)
		}
		expense.Amount = input.Amount.Round(2)
	}

	if input.Description != nil {
		if len(*input.Description) > MaxDescriptionLength {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeDescriptionTooLong,
				fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
				domainerror.ErrDescriptionTooLong,
			)
		}
		expense.Description = *input.Description
	}

	if input.CategoryID != nil {
		expense.CategoryID = *input.CategoryID
	}

	if input.ExpenseDate != nil {
		expense.ExpenseDate = *input.ExpenseDate
	}

	if input.ReceiptURL != nil {
		expense.ReceiptURL = *input.ReceiptURL
	}

	if input.Tags != nil {
		expense.Tags = *input.Tags
	}

	expense.UpdatedAt = time.Now().UTC()

	// The repository re-verifies category ownership inside the update
	// transaction, covering repointed categories.
	updated, err := uc.expenseRepo.Update(ctx, expense)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotOwned) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeCategoryNotOwned,
				"category not found",
				domainerror.ErrCategoryNotOwned,
			)
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return &UpdateExpenseOutput{
		Expense: toExpenseOutput(updated),
	}, nil
}

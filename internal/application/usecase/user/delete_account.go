// Package user contains user-related use cases.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID uuid.UUID
}

// DeleteAccountOutput represents the output of account deletion.
type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase handles account deletion logic. Expenses and
// categories are removed together with the user row in one transaction.
type DeleteAccountUseCase struct {
	userRepo adapter.UserRepository
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(userRepo adapter.UserRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	if err := uc.userRepo.DeleteWithOwnedData(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}

	return &DeleteAccountOutput{
		Success: true,
	}, nil
}

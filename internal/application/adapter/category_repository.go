// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
// Every lookup is scoped by user: a category owned by another user is
// reported as not found.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByIDAndUser retrieves a category by ID scoped to the owning user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves all categories owned by the user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// ExistsByNameAndUser checks if a category with the given name exists for the user.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// DeleteByIDAndUser removes a category scoped to the owning user.
	DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) error

	// CountExpenses returns the number of expenses referencing the category.
	CountExpenses(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryTotal represents aggregated expense data for one category.
type CategoryTotal struct {
	Category     *entity.Category
	TotalAmount  decimal.Decimal
	ExpenseCount int
}

// DailyTotal represents aggregated expense data for one calendar date.
type DailyTotal struct {
	Date         time.Time
	TotalAmount  decimal.Decimal
	ExpenseCount int
}

// AnalyticsRepository defines the interface for expense aggregation queries.
// All queries are scoped to the given user and the inclusive date range.
type AnalyticsRepository interface {
	// GetTotals returns the summed amount and row count of matching expenses.
	GetTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, int, error)

	// GetCategoryTotals returns per-category sums and counts, ordered by
	// summed amount descending (category name ascending on ties).
	GetCategoryTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]*CategoryTotal, error)

	// GetDailyTotals returns per-date sums and counts, ordered by date
	// ascending. Dates without expenses are not synthesized.
	GetDailyTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]*DailyTotal, error)
}

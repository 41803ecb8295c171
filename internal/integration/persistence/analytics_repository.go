// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// analyticsRepository implements the adapter.AnalyticsRepository interface
// with SQL-level aggregation.
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository instance.
func NewAnalyticsRepository(db *gorm.DB) adapter.AnalyticsRepository {
	return &analyticsRepository{
		db: db,
	}
}

// rangeScope applies the mandatory user and inclusive date-range filters.
func (r *analyticsRepository) rangeScope(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("expenses.user_id = ?", userID).
		Where("expenses.expense_date >= ?", startDate).
		Where("expenses.expense_date <= ?", endDate)
}

// GetTotals returns the summed amount and row count of matching expenses.
func (r *analyticsRepository) GetTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, int, error) {
	var row struct {
		TotalAmount  decimal.Decimal
		ExpenseCount int
	}
	err := r.rangeScope(ctx, userID, startDate, endDate).
		Select("COALESCE(SUM(amount), 0) as total_amount, COUNT(id) as expense_count").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return row.TotalAmount, row.ExpenseCount, nil
}

// categoryTotalRow is the scan target for the category breakdown query.
type categoryTotalRow struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Color        string
	Icon         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	TotalAmount  decimal.Decimal
	ExpenseCount int
}

// GetCategoryTotals returns per-category sums and counts, ordered by summed
// amount descending with category name as a deterministic tiebreak.
func (r *analyticsRepository) GetCategoryTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]*adapter.CategoryTotal, error) {
	var rows []categoryTotalRow
	err := r.rangeScope(ctx, userID, startDate, endDate).
		Select("categories.id, categories.user_id, categories.name, categories.color, categories.icon, " +
			"categories.created_at, categories.updated_at, " +
			"COALESCE(SUM(expenses.amount), 0) as total_amount, COUNT(expenses.id) as expense_count").
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Group("categories.id, categories.user_id, categories.name, categories.color, categories.icon, " +
			"categories.created_at, categories.updated_at").
		Order("total_amount DESC, categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]*adapter.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = &adapter.CategoryTotal{
			Category: &entity.Category{
				ID:        row.ID,
				UserID:    row.UserID,
				Name:      row.Name,
				Color:     row.Color,
				Icon:      row.Icon,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			TotalAmount:  row.TotalAmount,
			ExpenseCount: row.ExpenseCount,
		}
	}
	return totals, nil
}

// GetDailyTotals returns per-date sums and counts, ordered by date
// ascending. Only dates with at least one expense appear.
func (r *analyticsRepository) GetDailyTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]*adapter.DailyTotal, error) {
	var rows []struct {
		ExpenseDate  time.Time
		TotalAmount  decimal.Decimal
		ExpenseCount int
	}
	err := r.rangeScope(ctx, userID, startDate, endDate).
		Select("expense_date, COALESCE(SUM(amount), 0) as total_amount, COUNT(id) as expense_count").
		Group("expense_date").
		Order("expense_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]*adapter.DailyTotal, len(rows))
	for i, row := range rows {
		totals[i] = &adapter.DailyTotal{
			Date:         row.ExpenseDate,
			TotalAmount:  row.TotalAmount,
			ExpenseCount: row.ExpenseCount,
		}
	}
	return totals, nil
}

// Package analytics contains spending aggregation use cases.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DefaultWindowDays is the size of the lookback window applied when no start
// date is requested.
const DefaultWindowDays = 30

// GetSummaryInput represents the input for the analytics summary. Nil dates
// fall back to the default window: end = today, start = end - 30 days.
type GetSummaryInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// GetSummaryOutput represents the output of the analytics summary.
type GetSummaryOutput struct {
	Summary *entity.AnalyticsSummary
}

// GetSummaryUseCase computes an aggregate spending report for a user over a
// date range: total, count, per-day average, per-category breakdown with
// percentages, and a daily time series.
type GetSummaryUseCase struct {
	analyticsRepo adapter.AnalyticsRepository
	now           func() time.Time
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(analyticsRepo adapter.AnalyticsRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		analyticsRepo: analyticsRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Execute computes the analytics summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	startDate, endDate, err := uc.resolveWindow(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	totalAmount, expenseCount, err := uc.analyticsRepo.GetTotals(ctx, input.UserID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense totals: %w", err)
	}

	// Inclusive day count. Guarded even though resolveWindow rejects
	// inverted ranges.
	daysDiff := int(endDate.Sub(startDate).Hours()/24) + 1
	averagePerDay := decimal.Zero
	if daysDiff > 0 {
		averagePerDay = totalAmount.Div(decimal.NewFromInt(int64(daysDiff))).Round(2)
	}

	categoryTotals, err := uc.analyticsRepo.GetCategoryTotals(ctx, input.UserID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	byCategory := make([]*entity.CategorySummary, len(categoryTotals))
	hundred := decimal.NewFromInt(100)
	for i, ct := range categoryTotals {
		percentage := decimal.Zero
		if totalAmount.IsPositive() {
			percentage = ct.TotalAmount.Mul(hundred).Div(totalAmount).Round(2)
		}
		byCategory[i] = &entity.CategorySummary{
			Category:     ct.Category,
			TotalAmount:  ct.TotalAmount,
			ExpenseCount: ct.ExpenseCount,
			Percentage:   percentage,
		}
	}

	dailyTotals, err := uc.analyticsRepo.GetDailyTotals(ctx, input.UserID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily totals: %w", err)
	}

	daily := make([]*entity.DailySummary, len(dailyTotals))
	for i, dt := range dailyTotals {
		daily[i] = &entity.DailySummary{
			Date:         dt.Date,
			TotalAmount:  dt.TotalAmount,
			ExpenseCount: dt.ExpenseCount,
		}
	}

	return &GetSummaryOutput{
		Summary: &entity.AnalyticsSummary{
			StartDate:     startDate,
			EndDate:       endDate,
			TotalAmount:   totalAmount,
			ExpenseCount:  expenseCount,
			AveragePerDay: averagePerDay,
			ByCategory:    byCategory,
			DailyTotals:   daily,
		},
	}, nil
}

// resolveWindow applies the default 30-day lookback and validates the range.
func (uc *GetSummaryUseCase) resolveWindow(start, end *time.Time) (time.Time, time.Time, error) {
	var endDate time.Time
	if end != nil {
		endDate = truncateToDate(*end)
	} else {
		endDate = truncateToDate(uc.now())
	}

	var startDate time.Time
	if start != nil {
		startDate = truncateToDate(*start)
	} else {
		startDate = endDate.AddDate(0, 0, -DefaultWindowDays)
	}

	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not be before start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return startDate, endDate, nil
}

// truncateToDate drops the time-of-day component.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Package analytics contains spending aggregation use cases.
package analytics

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// seededExpense is one row of input data for the fake repository.
type seededExpense struct {
	userID   uuid.UUID
	category *entity.Category
	amount   decimal.Decimal
	date     time.Time
}

// fakeAnalyticsRepository aggregates seeded expenses the same way the SQL
// queries do.
type fakeAnalyticsRepository struct {
	rows []seededExpense
}

func (r *fakeAnalyticsRepository) matching(userID uuid.UUID, startDate, endDate time.Time) []seededExpense {
	var matched []seededExpense
	for _, row := range r.rows {
		if row.userID != userID {
			continue
		}
		if row.date.Before(startDate) || row.date.After(endDate) {
			continue
		}
		matched = append(matched, row)
	}
	return matched
}

func (r *fakeAnalyticsRepository) GetTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, int, error) {
	total := decimal.Zero
	count := 0
	for _, row := range r.matching(userID, startDate, endDate) {
		total = total.Add(row.amount)
		count++
	}
	return total, count, nil
}

func (r *fakeAnalyticsRepository) GetCategoryTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]*adapter.CategoryTotal, error) {
	byCategory := make(map[uuid.UUID]*adapter.CategoryTotal)
	for _, row := range r.matching(userID, startDate, endDate) {
		ct, ok := byCategory[row.category.ID]
		if !ok {
			ct = &adapter.CategoryTotal{Category: row.category, TotalAmount: decimal.Zero}
			byCategory[row.category.ID] = ct
		}
		ct.TotalAmount = ct.TotalAmount.Add(row.amount)
		ct.ExpenseCount++
	}

	totals := make([]*adapter.CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		totals = append(totals, ct)
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].TotalAmount.Equal(totals[j].TotalAmount) {
			return totals[i].TotalAmount.GreaterThan(totals[j].TotalAmount)
		}
		return totals[i].Category.Name < totals[j].Category.Name
	})
	return totals, nil
}

func (r *fakeAnalyticsRepository) GetDailyTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]*adapter.DailyTotal, error) {
	byDate := make(map[time.Time]*adapter.DailyTotal)
	for _, row := range r.matching(userID, startDate, endDate) {
		dt, ok := byDate[row.date]
		if !ok {
			dt = &adapter.DailyTotal{Date: row.date, TotalAmount: decimal.Zero}
			byDate[row.date] = dt
		}
		dt.TotalAmount = dt.TotalAmount.Add(row.amount)
		dt.ExpenseCount++
	}

	totals := make([]*adapter.DailyTotal, 0, len(byDate))
	for _, dt := range byDate {
		totals = append(totals, dt)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date.Before(totals[j].Date)
	})
	return totals, nil
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestGetSummaryUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	food := entity.NewCategory(userID, "Food", "#FF5733", "utensils")
	transport := entity.NewCategory(userID, "Transport", "#33C1FF", "bus")

	repo := &fakeAnalyticsRepository{
		rows: []seededExpense{
			{userID: userID, category: food, amount: decimal.RequireFromString("10"), date: date("2024-01-01")},
			{userID: userID, category: food, amount: decimal.RequireFromString("20"), date: date("2024-01-02")},
			{userID: userID, category: transport, amount: decimal.RequireFromString("30"), date: date("2024-01-03")},
			// Another user's spending in the same window must not leak in.
			{userID: uuid.New(), category: food, amount: decimal.RequireFromString("500"), date: date("2024-01-02")},
		},
	}

	t.Run("aggregates totals, breakdown and daily series", func(t *testing.T) {
		uc := NewGetSummaryUseCase(repo)

		start := date("2024-01-01")
		end := date("2024-01-03")
		output, err := uc.Execute(ctx, GetSummaryInput{
			UserID:    userID,
			StartDate: &start,
			EndDate:   &end,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		summary := output.Summary
		if !summary.TotalAmount.Equal(decimal.RequireFromString("60")) {
			t.Errorf("expected total 60, got %s", summary.TotalAmount)
		}
		if summary.ExpenseCount != 3 {
			t.Errorf("expected count 3, got %d", summary.ExpenseCount)
		}
		// 3 inclusive days, 60 / 3 = 20.
		if !summary.AveragePerDay.Equal(decimal.RequireFromString("20")) {
			t.Errorf("expected average 20, got %s", summary.AveragePerDay)
		}

		if len(summary.ByCategory) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(summary.ByCategory))
		}
		// Equal totals tie-break on name ascending.
		if summary.ByCategory[0].Category.Name != "Food" {
			t.Errorf("expected Food first, got %s", summary.ByCategory[0].Category.Name)
		}
		for _, cs := range summary.ByCategory {
			if !cs.TotalAmount.Equal(decimal.RequireFromString("30")) {
				t.Errorf("expected category total 30, got %s", cs.TotalAmount)
			}
			if !cs.Percentage.Equal(decimal.RequireFromString("50")) {
				t.Errorf("expected percentage 50, got %s", cs.Percentage)
			}
		}

		if len(summary.DailyTotals) != 3 {
			t.Fatalf("expected 3 daily entries, got %d", len(summary.DailyTotals))
		}
		for i := 1; i < len(summary.DailyTotals); i++ {
			if !summary.DailyTotals[i-1].Date.Before(summary.DailyTotals[i].Date) {
				t.Fatal("expected daily totals ordered by date ascending")
			}
		}
		if !summary.DailyTotals[2].TotalAmount.Equal(decimal.RequireFromString("30")) {
			t.Errorf("expected 30 on the last day, got %s", summary.DailyTotals[2].TotalAmount)
		}
	})

	t.Run("defaults to a 30-day window ending today", func(t *testing.T) {
		uc := NewGetSummaryUseCase(repo)
		uc.now = func() time.Time { return date("2024-01-15") }

		output, err := uc.Execute(ctx, GetSummaryInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		summary := output.Summary
		if !summary.EndDate.Equal(date("2024-01-15")) {
			t.Errorf("expected end 2024-01-15, got %s", summary.EndDate)
		}
		if !summary.StartDate.Equal(date("2023-12-16")) {
			t.Errorf("expected start 2023-12-16, got %s", summary.StartDate)
		}
		if summary.ExpenseCount != 3 {
			t.Errorf("expected count 3 inside default window, got %d", summary.ExpenseCount)
		}
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		uc := NewGetSummaryUseCase(repo)

		start := date("2024-02-01")
		end := date("2024-01-01")
		_, err := uc.Execute(ctx, GetSummaryInput{
			UserID:    userID,
			StartDate: &start,
			EndDate:   &end,
		})

		var anlErr *domainerror.AnalyticsError
		if !errors.As(err, &anlErr) {
			t.Fatalf("expected AnalyticsError, got %v", err)
		}
		if anlErr.Code != domainerror.ErrCodeInvalidDateRange {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidDateRange, anlErr.Code)
		}
	})

	t.Run("empty window yields zero totals without division", func(t *testing.T) {
		uc := NewGetSummaryUseCase(&fakeAnalyticsRepository{})

		start := date("2024-01-01")
		end := date("2024-01-31")
		output, err := uc.Execute(ctx, GetSummaryInput{
			UserID:    userID,
			StartDate: &start,
			EndDate:   &end,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		summary := output.Summary
		if !summary.TotalAmount.IsZero() {
			t.Errorf("expected zero total, got %s", summary.TotalAmount)
		}
		if !summary.AveragePerDay.IsZero() {
			t.Errorf("expected zero average, got %s", summary.AveragePerDay)
		}
		if len(summary.ByCategory) != 0 {
			t.Errorf("expected no categories, got %d", len(summary.ByCategory))
		}
		if len(summary.DailyTotals) != 0 {
			t.Errorf("expected no daily totals, got %d", len(summary.DailyTotals))
		}
	})

	t.Run("single-day window divides by one day", func(t *testing.T) {
		uc := NewGetSummaryUseCase(repo)

		day := date("2024-01-03")
		output, err := uc.Execute(ctx, GetSummaryInput{
			UserID:    userID,
			StartDate: &day,
			EndDate:   &day,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		summary := output.Summary
		if !summary.TotalAmount.Equal(decimal.RequireFromString("30")) {
			t.Errorf("expected total 30, got %s", summary.TotalAmount)
		}
		if !summary.AveragePerDay.Equal(decimal.RequireFromString("30")) {
			t.Errorf("expected average 30, got %s", summary.AveragePerDay)
		}
	})
}

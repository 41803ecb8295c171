// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary represents aggregated spending for a single category
// within a date range.
type CategorySummary struct {
	Category     *Category
	TotalAmount  decimal.Decimal
	ExpenseCount int
	Percentage   decimal.Decimal // Share of the range total, 0-100
}

// DailySummary represents aggregated spending for a single calendar date.
type DailySummary struct {
	Date         time.Time
	TotalAmount  decimal.Decimal
	ExpenseCount int
}

// AnalyticsSummary represents an aggregate spending report over a date range.
type AnalyticsSummary struct {
	StartDate     time.Time
	EndDate       time.Time
	TotalAmount   decimal.Decimal
	ExpenseCount  int
	AveragePerDay decimal.Decimal
	ByCategory    []*CategorySummary
	DailyTotals   []*DailySummary
}

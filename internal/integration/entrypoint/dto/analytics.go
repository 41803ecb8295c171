// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategorySummaryResponse represents one category's share of spending.
type CategorySummaryResponse struct {
	Category     CategoryResponse `json:"category"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	ExpenseCount int              `json:"expense_count"`
	Percentage   decimal.Decimal  `json:"percentage"`
}

// DailySummaryResponse represents spending for one calendar day.
type DailySummaryResponse struct {
	Date         string          `json:"date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ExpenseCount int             `json:"expense_count"`
}

// AnalyticsSummaryResponse represents the response for the analytics summary.
type AnalyticsSummaryResponse struct {
	StartDate     string                    `json:"start_date"`
	EndDate       string                    `json:"end_date"`
	TotalAmount   decimal.Decimal           `json:"total_amount"`
	ExpenseCount  int                       `json:"expense_count"`
	AveragePerDay decimal.Decimal           `json:"average_per_day"`
	ByCategory    []CategorySummaryResponse `json:"by_category"`
	DailyTotals   []DailySummaryResponse    `json:"daily_totals"`
}

// ToAnalyticsSummaryResponse converts the domain summary to its DTO.
func ToAnalyticsSummaryResponse(summary *entity.AnalyticsSummary) AnalyticsSummaryResponse {
	byCategory := make([]CategorySummaryResponse, len(summary.ByCategory))
	for i, cs := range summary.ByCategory {
		byCategory[i] = CategorySummaryResponse{
			Category:     ToCategoryResponse(cs.Category),
			TotalAmount:  cs.TotalAmount,
			ExpenseCount: cs.ExpenseCount,
			Percentage:   cs.Percentage,
		}
	}

	daily := make([]DailySummaryResponse, len(summary.DailyTotals))
	for i, ds := range summary.DailyTotals {
		daily[i] = DailySummaryResponse{
			Date:         ds.Date.Format(DateLayout),
			TotalAmount:  ds.TotalAmount,
			ExpenseCount: ds.ExpenseCount,
		}
	}

	return AnalyticsSummaryResponse{
		StartDate:     summary.StartDate.Format(DateLayout),
		EndDate:       summary.EndDate.Format(DateLayout),
		TotalAmount:   summary.TotalAmount,
		ExpenseCount:  summary.ExpenseCount,
		AveragePerDay: summary.AveragePerDay,
		ByCategory:    byCategory,
		DailyTotals:   daily,
	}
}

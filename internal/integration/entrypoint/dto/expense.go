// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

// CreateExpenseRequest represents the request body for expense creation.
type CreateExpenseRequest struct {
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description,omitempty" binding:"omitempty,max=500"`
	ExpenseDate string          `json:"expense_date" binding:"required,datetime=2006-01-02"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
}

// UpdateExpenseRequest represents the request body for expense update.
// Absent fields are left unchanged.
type UpdateExpenseRequest struct {
	CategoryID  *string          `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty" binding:"omitempty,max=500"`
	ExpenseDate *string          `json:"expense_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	ReceiptURL  *string          `json:"receipt_url,omitempty"`
	Tags        *[]string        `json:"tags,omitempty"`
}

// ExpenseCategoryResponse represents the category summary embedded in an
// expense response.
type ExpenseCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"user_id"`
	CategoryID  string                   `json:"category_id"`
	Category    *ExpenseCategoryResponse `json:"category,omitempty"`
	Amount      decimal.Decimal          `json:"amount"`
	Description string                   `json:"description"`
	ExpenseDate string                   `json:"expense_date"`
	ReceiptURL  string                   `json:"receipt_url,omitempty"`
	Tags        []string                 `json:"tags"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// PaginationResponse represents pagination metadata in list responses.
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses   []ExpenseResponse  `json:"expenses"`
	Pagination PaginationResponse `json:"pagination"`
}

// ToExpenseResponse converts use case expense output to an ExpenseResponse DTO.
func ToExpenseResponse(out *expense.ExpenseOutput) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          out.ID.String(),
		UserID:      out.UserID.String(),
		CategoryID:  out.CategoryID.String(),
		Amount:      out.Amount,
		Description: out.Description,
		ExpenseDate: out.ExpenseDate.Format(DateLayout),
		ReceiptURL:  out.ReceiptURL,
		Tags:        out.Tags,
		CreatedAt:   out.CreatedAt,
		UpdatedAt:   out.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if out.Category != nil {
		resp.Category = &ExpenseCategoryResponse{
			ID:    out.Category.ID.String(),
			Name:  out.Category.Name,
			Color: out.Category.Color,
			Icon:  out.Category.Icon,
		}
	}
	return resp
}

// ToExpenseListResponse converts use case list output to ExpenseListResponse.
func ToExpenseListResponse(out *expense.ListExpensesOutput) ExpenseListResponse {
	expenses := make([]ExpenseResponse, len(out.Expenses))
	for i, e := range out.Expenses {
		expenses[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{
		Expenses: expenses,
		Pagination: PaginationResponse{
			Page:  out.Pagination.Page,
			Limit: out.Pagination.Limit,
			Total: out.Pagination.Total,
			Pages: out.Pagination.TotalPages,
		},
	}
}

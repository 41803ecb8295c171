// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// AnalyticsController handles analytics endpoints.
type AnalyticsController struct {
	getSummaryUseCase *analytics.GetSummaryUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(getSummaryUseCase *analytics.GetSummaryUseCase) *AnalyticsController {
	return &AnalyticsController{
		getSummaryUseCase: getSummaryUseCase,
	}
}

// Summary handles GET /analytics/summary requests. Without explicit dates the
// window defaults to the last 30 days ending today.
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := analytics.GetSummaryInput{
		UserID: userID,
	}

	startDate, ok := parseDateQuery(ctx, "start_date")
	if !ok {
		return
	}
	input.StartDate = startDate

	endDate, ok := parseDateQuery(ctx, "end_date")
	if !ok {
		return
	}
	input.EndDate = endDate

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalyticsSummaryResponse(output.Summary))
}

// handleAnalyticsError maps analytics errors to HTTP responses.
func (c *AnalyticsController) handleAnalyticsError(ctx *gin.Context, err error) {
	var anlErr *domainerror.AnalyticsError
	if errors.As(err, &anlErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: anlErr.Message,
			Code:  string(anlErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

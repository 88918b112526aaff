package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/auth"
	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/repository"
)

type StatsHandler struct {
	Stats *repository.StatsRepository
}

// NewStatsHandler создает обработчик статистики.
func NewStatsHandler(stats *repository.StatsRepository) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

type CategoryTotalsResponse struct {
	Categories []CategoryTotalItem `json:"categories"`
}

type CategoryTotalItem struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Name       *string    `json:"name"`
	TotalCents int64      `json:"total_cents"`
	Count      int        `json:"count"`
}

type OverviewResponse struct {
	ExpenseCount int     `json:"expense_count"`
	TotalCents   int64   `json:"total_cents"`
	FirstSpentAt *string `json:"first_spent_at"`
	LastSpentAt  *string `json:"last_spent_at"`
}

// TotalsByCategory возвращает суммы трат по категориям за период.
func (h *StatsHandler) TotalsByCategory(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	from, to, err := parseDateRange(c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	totals, err := h.Stats.TotalsByCategory(c.Request().Context(), userID, from, to)
	if err != nil {
		return serverError(c)
	}

	categories := make([]CategoryTotalItem, 0, len(totals))
	for _, row := range totals {
		categories = append(categories, CategoryTotalItem{
			CategoryID: row.CategoryID,
			Name:       row.Name,
			TotalCents: row.TotalCents,
			Count:      row.Count,
		})
	}

	return c.JSON(http.StatusOK, CategoryTotalsResponse{Categories: categories})
}

// Overview возвращает сводную статистику трат пользователя.
func (h *StatsHandler) Overview(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	stats, err := h.Stats.Overview(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := OverviewResponse{
		ExpenseCount: stats.ExpenseCount,
		TotalCents:   stats.TotalCents,
	}

	if stats.FirstSpentAt != nil {
		first := stats.FirstSpentAt.Format(dateLayout)
		response.FirstSpentAt = &first
	}
	if stats.LastSpentAt != nil {
		last := stats.LastSpentAt.Format(dateLayout)
		response.LastSpentAt = &last
	}

	return c.JSON(http.StatusOK, response)
}

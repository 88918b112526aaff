package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/auth"
	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/config"
	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/forecast"
	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/repository"
)

type ForecastHandler struct {
	Expenses *repository.ExpenseRepository
	Defaults config.ForecastConfig
}

// NewForecastHandler создает обработчик прогноза трат.
func NewForecastHandler(expenses *repository.ExpenseRepository, defaults config.ForecastConfig) *ForecastHandler {
	return &ForecastHandler{Expenses: expenses, Defaults: defaults}
}

type ForecastResponse struct {
	MonthsAhead int                     `json:"months_ahead"`
	Points      []ForecastPointResponse `json:"points"`
}

type ForecastPointResponse struct {
	Month         string  `json:"month"`
	ActualCents   *int64  `json:"actual_cents"`
	ForecastCents float64 `json:"forecast_cents"`
}

// Monthly строит месячный прогноз трат по полной истории пользователя.
func (h *ForecastHandler) Monthly(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	months, err := resolveMonths(c.QueryParam("months"), h.Defaults.MonthsAhead, h.Defaults.MaxMonthsAhead)
	if err != nil {
		return badRequest(c, "invalid months")
	}

	history, err := h.Expenses.History(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	records := make([]forecast.Record, 0, len(history))
	for _, record := range history {
		records = append(records, forecast.Record{
			Date:        record.SpentAt,
			AmountCents: record.AmountCents,
		})
	}

	points := forecast.Monthly(records, months)

	response := ForecastResponse{
		MonthsAhead: months,
		Points:      make([]ForecastPointResponse, 0, len(points)),
	}
	for _, point := range points {
		response.Points = append(response.Points, ForecastPointResponse{
			Month:         point.Month.Format(monthLayout),
			ActualCents:   point.ActualCents,
			ForecastCents: point.ForecastCents,
		})
	}

	return c.JSON(http.StatusOK, response)
}

// resolveMonths разбирает параметр months: пустое значение заменяется
// дефолтом, значения выше потолка обрезаются.
func resolveMonths(raw string, fallback, max int) (int, error) {
	if raw == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("months must be an integer: %w", err)
	}

	if parsed < 0 {
		return 0, fmt.Errorf("months must not be negative")
	}

	if parsed > max {
		parsed = max
	}

	return parsed, nil
}

package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/auth"
)

// ExportCSV выгружает траты пользователя за период в CSV-файл.
func (h *ExpenseHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	from, to, err := parseDateRange(c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	expenses, err := h.Expenses.ListByUser(c.Request().Context(), userID, from, to)
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"date", "category", "description", "amount_cents"}); err != nil {
		return serverError(c)
	}

	for _, expense := range expenses {
		category := ""
		if expense.CategoryName != nil {
			category = *expense.CategoryName
		}

		record := []string{
			expense.SpentAt.Format(dateLayout),
			category,
			expense.Description,
			strconv.FormatInt(expense.AmountCents, 10),
		}
		if err := writer.Write(record); err != nil {
			return serverError(c)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\"expenses.csv\"")
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

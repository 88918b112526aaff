package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/auth"
	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/models"
	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/notifications"
	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/repository"
)

type ExpenseHandler struct {
	Expenses *repository.ExpenseRepository
	Notifier *notifications.Hub
}

// NewExpenseHandler создает обработчик трат.
func NewExpenseHandler(expenses *repository.ExpenseRepository, notifier *notifications.Hub) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses, Notifier: notifier}
}

type ExpenseRequest struct {
	SpentAt     string  `json:"spent_at" validate:"required"`
	CategoryID  *string `json:"category_id"`
	Description string  `json:"description" validate:"max=500"`
	AmountCents int64   `json:"amount_cents" validate:"gte=0"`
}

type ExpenseResponse struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Category    *string    `json:"category,omitempty"`
	SpentAt     string     `json:"spent_at"`
	Description string     `json:"description"`
	AmountCents int64      `json:"amount_cents"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// List возвращает траты пользователя за необязательный период from/to.
func (h *ExpenseHandler) List(c echo.Context) error {
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

	response := make([]ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		item := toExpenseResponse(expense.Expense)
		item.Category = expense.CategoryName
		response = append(response, item)
	}

	return c.JSON(http.StatusOK, map[string][]ExpenseResponse{"expenses": response})
}

// Create добавляет трату.
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	req, spentAt, categoryID, err := h.bindExpense(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	expense, err := h.Expenses.Create(c.Request().Context(), userID, categoryID, spentAt, strings.TrimSpace(req.Description), req.AmountCents)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "unknown category")
		}
		return serverError(c)
	}

	publishEvent(h.Notifier, userID, notifications.EventExpenseCreated, toExpenseResponse(expense))

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// Update изменяет трату.
func (h *ExpenseHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	req, spentAt, categoryID, err := h.bindExpense(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	expense, err := h.Expenses.Update(c.Request().Context(), userID, expenseID, categoryID, spentAt, strings.TrimSpace(req.Description), req.AmountCents)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "unknown category")
		}
		return serverError(c)
	}

	publishEvent(h.Notifier, userID, notifications.EventExpenseUpdated, toExpenseResponse(expense))

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Delete удаляет трату.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	if err := h.Expenses.Delete(c.Request().Context(), userID, expenseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	publishEvent(h.Notifier, userID, notifications.EventExpenseDeleted, map[string]string{"id": expenseID.String()})

	return c.NoContent(http.StatusNoContent)
}

func (h *ExpenseHandler) bindExpense(c echo.Context) (ExpenseRequest, time.Time, *uuid.UUID, error) {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return req, time.Time{}, nil, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, time.Time{}, nil, errors.New("validation failed")
	}

	spentAt, err := parseDate(req.SpentAt)
	if err != nil {
		return req, time.Time{}, nil, err
	}

	var categoryID *uuid.UUID
	if req.CategoryID != nil && strings.TrimSpace(*req.CategoryID) != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(*req.CategoryID))
		if err != nil {
			return req, time.Time{}, nil, errors.New("invalid category id")
		}
		categoryID = &parsed
	}

	return req, spentAt, categoryID, nil
}

func toExpenseResponse(expense models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		CategoryID:  expense.CategoryID,
		SpentAt:     expense.SpentAt.Format(dateLayout),
		Description: expense.Description,
		AmountCents: expense.AmountCents,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

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

type CategoryHandler struct {
	Categories *repository.CategoryRepository
	Notifier   *notifications.Hub
}

// NewCategoryHandler создает обработчик категорий.
func NewCategoryHandler(categories *repository.CategoryRepository, notifier *notifications.Hub) *CategoryHandler {
	return &CategoryHandler{Categories: categories, Notifier: notifier}
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// List возвращает категории пользователя.
func (h *CategoryHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	categories, err := h.Categories.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}

	return c.JSON(http.StatusOK, map[string][]CategoryResponse{"categories": response})
}

// Create добавляет новую категорию.
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "name is required")
	}

	category, err := h.Categories.Create(c.Request().Context(), userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "category already exists")
		}
		return serverError(c)
	}

	publishEvent(h.Notifier, userID, notifications.EventCategoryCreated, toCategoryResponse(category))

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// Update переименовывает категорию.
func (h *CategoryHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid category id")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "name is required")
	}

	category, err := h.Categories.Rename(c.Request().Context(), userID, categoryID, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "category not found")
		}
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "category already exists")
		}
		return serverError(c)
	}

	publishEvent(h.Notifier, userID, notifications.EventCategoryRenamed, toCategoryResponse(category))

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// Delete удаляет категорию пользователя.
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid category id")
	}

	if err := h.Categories.Delete(c.Request().Context(), userID, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "category not found")
		}
		return serverError(c)
	}

	publishEvent(h.Notifier, userID, notifications.EventCategoryDeleted, map[string]string{"id": categoryID.String()})

	return c.NoContent(http.StatusNoContent)
}

func toCategoryResponse(category models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
	}
}

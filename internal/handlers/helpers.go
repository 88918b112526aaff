package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/notifications"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in format %s", dateLayout)
	}

	return parsed, nil
}

// parseDateRange разбирает необязательные границы периода из query-параметров.
func parseDateRange(fromRaw, toRaw string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if strings.TrimSpace(fromRaw) != "" {
		parsed, err := parseDate(fromRaw)
		if err != nil {
			return nil, nil, err
		}
		from = &parsed
	}

	if strings.TrimSpace(toRaw) != "" {
		parsed, err := parseDate(toRaw)
		if err != nil {
			return nil, nil, err
		}
		to = &parsed
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("period end must not be before period start")
	}

	return from, to, nil
}

func publishEvent(hub *notifications.Hub, userID uuid.UUID, eventType string, data interface{}) {
	if hub == nil {
		return
	}

	hub.Publish(userID, notifications.Event{Type: eventType, Data: data})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
}

func conflict(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, map[string]string{"error": message})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": message})
}

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

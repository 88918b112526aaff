package repository

import (
	"testing"
	"time"
)

// TestAppendDateRangeBoth проверяет добавление обеих границ периода.
func TestAppendDateRangeBoth(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	query, args := appendDateRange("SELECT 1 WHERE user_id = $1", []any{"u"}, "spent_at", &from, &to)

	want := "SELECT 1 WHERE user_id = $1 AND spent_at >= $2 AND spent_at <= $3"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
}

// TestAppendDateRangeOpen проверяет запрос без границ периода.
func TestAppendDateRangeOpen(t *testing.T) {
	query, args := appendDateRange("SELECT 1 WHERE user_id = $1", []any{"u"}, "spent_at", nil, nil)

	if query != "SELECT 1 WHERE user_id = $1" {
		t.Fatalf("expected query unchanged, got %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(args))
	}
}

// TestAppendDateRangeFromOnly проверяет одностороннюю границу.
func TestAppendDateRangeFromOnly(t *testing.T) {
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	query, args := appendDateRange("SELECT 1 WHERE user_id = $1", []any{"u"}, "e.spent_at", &from, nil)

	want := "SELECT 1 WHERE user_id = $1 AND e.spent_at >= $2"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
}

package handlers

import "testing"

// TestResolveMonthsDefault проверяет дефолт при пустом параметре.
func TestResolveMonthsDefault(t *testing.T) {
	got, err := resolveMonths("", 3, 24)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

// TestResolveMonthsZero проверяет допустимость нулевого горизонта.
func TestResolveMonthsZero(t *testing.T) {
	got, err := resolveMonths("0", 3, 24)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

// TestResolveMonthsCap проверяет обрезание по верхней границе.
func TestResolveMonthsCap(t *testing.T) {
	got, err := resolveMonths("120", 3, 24)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 24 {
		t.Fatalf("expected 24, got %d", got)
	}
}

// TestResolveMonthsInvalid проверяет ошибки для неверных значений.
func TestResolveMonthsInvalid(t *testing.T) {
	if _, err := resolveMonths("many", 3, 24); err == nil {
		t.Fatal("expected error for non-integer value")
	}

	if _, err := resolveMonths("-1", 3, 24); err == nil {
		t.Fatal("expected error for negative value")
	}
}

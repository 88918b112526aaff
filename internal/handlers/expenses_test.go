package handlers

import "testing"

// TestParseDateRangeValid проверяет корректный разбор периода.
func TestParseDateRangeValid(t *testing.T) {
	from, to, err := parseDateRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if from == nil || from.Format(dateLayout) != "2024-01-01" {
		t.Fatalf("unexpected from: %v", from)
	}
	if to == nil || to.Format(dateLayout) != "2024-01-31" {
		t.Fatalf("unexpected to: %v", to)
	}
}

// TestParseDateRangeOpen проверяет необязательность границ.
func TestParseDateRangeOpen(t *testing.T) {
	from, to, err := parseDateRange("", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if from != nil || to != nil {
		t.Fatalf("expected nil bounds, got %v and %v", from, to)
	}

	from, to, err = parseDateRange("2024-02-01", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if from == nil || to != nil {
		t.Fatalf("expected only from bound, got %v and %v", from, to)
	}
}

// TestParseDateRangeInvalid проверяет ошибки при неверном периоде.
func TestParseDateRangeInvalid(t *testing.T) {
	if _, _, err := parseDateRange("2024/01/01", "2024-01-31"); err == nil {
		t.Fatal("expected error for invalid from format")
	}

	if _, _, err := parseDateRange("2024-02-01", "2024-01-31"); err == nil {
		t.Fatal("expected error for to before from")
	}
}

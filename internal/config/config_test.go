package config

import (
	"testing"
	"time"
)

// TestParseIntEnv проверяет разбор целочисленной переменной окружения.
func TestParseIntEnv(t *testing.T) {
	t.Setenv("FORECAST_MONTHS_AHEAD", "6")

	got, err := parseIntEnv("FORECAST_MONTHS_AHEAD", 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
}

// TestParseIntEnvInvalid проверяет ошибки при неверных значениях.
func TestParseIntEnvInvalid(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	if _, err := parseIntEnv("SERVER_PORT", 8080); err == nil {
		t.Fatal("expected error for non-integer value")
	}

	t.Setenv("SERVER_PORT", "0")
	if _, err := parseIntEnv("SERVER_PORT", 8080); err == nil {
		t.Fatal("expected error for non-positive value")
	}
}

// TestParseIntEnvMissing проверяет значение по умолчанию.
func TestParseIntEnvMissing(t *testing.T) {
	got, err := parseIntEnv("MISSING_ENV", 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 3 {
		t.Fatalf("expected fallback 3, got %d", got)
	}
}

// TestParseDurationEnv проверяет разбор длительности из окружения.
func TestParseDurationEnv(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "30s")

	got, err := parseDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 30*time.Second {
		t.Fatalf("expected 30s, got %v", got)
	}

	t.Setenv("SERVER_READ_TIMEOUT", "fast")
	if _, err := parseDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

package util

import (
	"testing"
	"time"
)

func TestValidateClient_Valid(t *testing.T) {
	testCases := []string{"ana", "Juan Pérez", " luis "}

	for _, client := range testCases {
		if err := ValidateClient(client); err != nil {
			t.Errorf("ValidateClient(%q) error = %v, want nil", client, err)
		}
	}
}

func TestValidateClient_Empty(t *testing.T) {
	testCases := []string{"", "   ", "\t\n"}

	for _, client := range testCases {
		if err := ValidateClient(client); err == nil {
			t.Errorf("ValidateClient(%q) error = nil, want error", client)
		}
	}
}

func TestValidateDebtDate_Valid(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	testCases := []string{"2025-06-15", "2025-01-01", "1999-12-31"}

	for _, date := range testCases {
		d, err := ValidateDebtDate(date, now)
		if err != nil || d == nil {
			t.Errorf("ValidateDebtDate(%q) = %v, %v, want date and nil", date, d, err)
		}
	}
}

func TestValidateDebtDate_EmptyAllowed(t *testing.T) {
	d, err := ValidateDebtDate("", time.Now())
	if err != nil || d != nil {
		t.Errorf("ValidateDebtDate(\"\") = %v, %v, want nil, nil", d, err)
	}
}

func TestValidateDebtDate_Future(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	if _, err := ValidateDebtDate("2025-06-16", now); err == nil {
		t.Error("future date error = nil, want error")
	}
}

func TestValidateDebtDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, date := range testCases {
		if _, err := ValidateDebtDate(date, time.Now()); err == nil {
			t.Errorf("ValidateDebtDate(%q) error = nil, want error", date)
		}
	}
}

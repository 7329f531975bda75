package util

import (
	"fmt"
	"strings"
	"time"
)

// ValidateClient checks the one required field of a registration: a client
// name that is non-empty once trimmed.
func ValidateClient(client string) error {
	if strings.TrimSpace(client) == "" {
		return fmt.Errorf("client name is required")
	}
	return nil
}

// ValidateDebtDate parses a YYYY-MM-DD debt date and rejects future dates.
// An empty string is allowed and yields nil: legacy rows may carry no date.
func ValidateDebtDate(dateStr string, now time.Time) (*time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return nil, fmt.Errorf("invalid date format, want YYYY-MM-DD: %w", err)
	}
	if t.Format("2006-01-02") > now.Format("2006-01-02") {
		return nil, fmt.Errorf("debt date %s is in the future", t.Format("2006-01-02"))
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day, nil
}

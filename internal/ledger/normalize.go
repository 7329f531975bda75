package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Affirmative spellings that mark a row as paid when ingesting legacy or
// hand-edited data. Matching is case-insensitive after trimming.
var paidTokens = map[string]bool{
	"1":      true,
	"true":   true,
	"yes":    true,
	"si":     true,
	"sí":     true,
	"pagado": true,
}

// dateLayouts are tried in order when a date arrives as text.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2006/01/02",
}

// excelEpoch is day zero of the xlsx serial date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Normalize turns a raw batch into typed records. Malformed field values
// degrade to defaults rather than failing the batch: the data originates from
// ad hoc spreadsheet editing, so tolerance beats rejection here. Rows that
// are empty across all five columns are dropped entirely.
//
// The result satisfies the field-type invariants only; paid removal, ordering
// and sequencing are Reconcile's job.
func Normalize(raw []RawRow) []DebtRecord {
	records := make([]DebtRecord, 0, len(raw))
	for _, row := range raw {
		if emptyRow(row) {
			continue
		}
		rec := DebtRecord{
			Client:      NormalizeClient(coerceString(row[ColClient])),
			Date:        coerceDate(row[ColDate]),
			AmountCents: coerceAmount(row[ColAmount]),
			Paid:        coercePaid(row[ColPaid]),
		}
		if seq, ok := row[ColSequence]; ok {
			rec.Sequence = coerceSequence(seq)
		}
		records = append(records, rec)
	}
	return records
}

// NormalizeClient produces the canonical client identifier: invisible and
// zero-width characters stripped, runs of whitespace collapsed to single
// spaces, trimmed, upper-cased. Diacritics and non-Latin letters survive;
// only case changes. Two names equal after this are the same client.
func NormalizeClient(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.In(r, unicode.Cf, unicode.Cc) && !unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(strings.Join(strings.Fields(b.String()), " "))
}

// emptyRow reports whether every cell of the row is absent, nil or blank
// text. Such rows are blank spreadsheet lines, not records.
func emptyRow(row RawRow) bool {
	for _, col := range Columns {
		v, ok := row[col]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return false
	}
	return true
}

func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}

// coerceDate parses a calendar date, dropping any time-of-day component.
// Unparseable values come back nil: a missing date on a legacy row is data,
// not an error.
func coerceDate(v any) *time.Time {
	switch d := v.(type) {
	case nil:
		return nil
	case time.Time:
		return truncateDay(d)
	case *time.Time:
		if d == nil {
			return nil
		}
		return truncateDay(*d)
	case float64:
		// xlsx serial date: days since 1899-12-30
		if d <= 0 || d > 200000 {
			return nil
		}
		t := excelEpoch.AddDate(0, 0, int(d))
		return &t
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return truncateDay(t)
			}
		}
		return nil
	default:
		return nil
	}
}

func truncateDay(t time.Time) *time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

// coerceAmount parses a monetary value into cents. Accepts numbers and text
// with currency noise ("$ 1,200"). Parse failures and negatives coerce to 0.
func coerceAmount(v any) int64 {
	switch a := v.(type) {
	case nil:
		return 0
	case int:
		return clampCents(int64(a) * 100)
	case int64:
		return clampCents(a * 100)
	case float64:
		return clampCents(int64(math.Round(a * 100)))
	case string:
		s := strings.TrimSpace(a)
		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, ",", "")
		s = strings.ReplaceAll(s, " ", "")
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return clampCents(int64(math.Round(f * 100)))
	default:
		return 0
	}
}

func clampCents(c int64) int64 {
	if c < 0 {
		return 0
	}
	return c
}

func coercePaid(v any) bool {
	switch p := v.(type) {
	case nil:
		return false
	case bool:
		return p
	case float64:
		return p == 1
	case int:
		return p == 1
	case string:
		return paidTokens[strings.ToLower(strings.TrimSpace(p))]
	default:
		return false
	}
}

func coerceSequence(v any) int {
	switch s := v.(type) {
	case int:
		return s
	case int64:
		return int(s)
	case float64:
		return int(s)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// ParseDate exposes the tolerant date coercion for entry surfaces: nil on
// anything unparseable, time-of-day dropped.
func ParseDate(v any) *time.Time {
	return coerceDate(v)
}

// IsAffirmative reports whether a value spells "paid" under the
// affirmative-token rule.
func IsAffirmative(v any) bool {
	return coercePaid(v)
}

// ParseAmount converts user-facing amount text into cents using the same
// tolerant rules as ingestion, but reports failure so entry surfaces can
// distinguish "0" from garbage.
func ParseAmount(s string) (int64, error) {
	t := strings.TrimSpace(s)
	t = strings.ReplaceAll(t, "$", "")
	t = strings.ReplaceAll(t, ",", "")
	if t == "" {
		return 0, fmt.Errorf("empty amount")
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative amount %q", s)
	}
	return int64(math.Round(f * 100)), nil
}

// FormatAmount renders cents as a plain decimal string with two digits,
// matching what the spreadsheet's Valor column carries.
func FormatAmount(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100.0, 'f', 2, 64)
}

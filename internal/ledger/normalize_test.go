package ledger

import (
	"testing"
	"time"
)

func TestNormalizeClient_Canonical(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  juan   pérez ", "JUAN PÉREZ"},
		{"JUAN PÉREZ", "JUAN PÉREZ"},
		{"ana", "ANA"},
		{"Ana ", "ANA"},
		{"ma​ría", "MARÍA"},               // zero-width space stripped
		{"luis\tgarcía\n", "LUIS GARCÍA"}, // tabs and newlines collapse
		{"   ", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeClient(c.in); got != c.want {
			t.Errorf("NormalizeClient(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCoercePaid_AffirmativeTokens(t *testing.T) {
	affirmative := []any{"1", "true", "yes", "si", "sí", "pagado", "SI", " Pagado ", true, float64(1), 1}
	for _, v := range affirmative {
		if !coercePaid(v) {
			t.Errorf("coercePaid(%v) = false, want true", v)
		}
	}

	negative := []any{nil, "", "0", "no", "false", "deuda", false, float64(0), 2}
	for _, v := range negative {
		if coercePaid(v) {
			t.Errorf("coercePaid(%v) = true, want false", v)
		}
	}
}

func TestCoerceAmount(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{nil, 0},
		{float64(50000), 5000000},
		{float64(-10), 0}, // negatives coerce to 0
		{"$ 1,200", 120000},
		{"1234.50", 123450},
		{"garbage", 0},
		{"", 0},
		{int(300), 30000},
	}
	for _, c := range cases {
		if got := coerceAmount(c.in); got != c.want {
			t.Errorf("coerceAmount(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestCoerceDate(t *testing.T) {
	if d := coerceDate("2025-03-10"); d == nil || d.Format("2006-01-02") != "2025-03-10" {
		t.Errorf("coerceDate(2025-03-10) = %v", d)
	}
	if d := coerceDate("10/03/2025"); d == nil || d.Format("2006-01-02") != "2025-03-10" {
		t.Errorf("coerceDate(10/03/2025) = %v", d)
	}
	// time-of-day is dropped
	stamp := time.Date(2025, 3, 10, 17, 45, 3, 0, time.UTC)
	if d := coerceDate(stamp); d == nil || !d.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("coerceDate(%v) = %v, want midnight", stamp, d)
	}
	// unparseable is null, not an error
	for _, bad := range []any{"not-a-date", "", nil, "2025-13-40"} {
		if d := coerceDate(bad); d != nil {
			t.Errorf("coerceDate(%v) = %v, want nil", bad, d)
		}
	}
	// xlsx serial date
	if d := coerceDate(float64(45000)); d == nil {
		t.Error("coerceDate(45000) = nil, want a date")
	}
}

func TestNormalize_SynthesizesMissingFields(t *testing.T) {
	recs := Normalize([]RawRow{{ColClient: "ana"}})
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.Client != "ANA" || r.Date != nil || r.AmountCents != 0 || r.Paid {
		t.Errorf("unexpected record %+v", r)
	}
}

func TestNormalize_DropsEmptyRows(t *testing.T) {
	raw := []RawRow{
		{},
		{ColClient: nil, ColAmount: nil},
		{ColClient: "  ", ColDate: "", ColAmount: ""},
		{ColClient: "luis", ColAmount: float64(20)},
	}
	recs := Normalize(raw)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].Client != "LUIS" {
		t.Errorf("client = %q, want LUIS", recs[0].Client)
	}
}

func TestNormalize_NeverPanicsOnGarbage(t *testing.T) {
	raw := []RawRow{
		{ColSequence: "x", ColClient: 12.5, ColDate: []byte("?"), ColAmount: struct{}{}, ColPaid: 3.7},
	}
	recs := Normalize(raw)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].AmountCents != 0 || recs[0].Paid || recs[0].Date != nil {
		t.Errorf("garbage did not degrade to defaults: %+v", recs[0])
	}
}

func TestParseAmount(t *testing.T) {
	if cents, err := ParseAmount("50000"); err != nil || cents != 5000000 {
		t.Errorf("ParseAmount(50000) = %d, %v", cents, err)
	}
	if cents, err := ParseAmount("$1,200.50"); err != nil || cents != 120050 {
		t.Errorf("ParseAmount($1,200.50) = %d, %v", cents, err)
	}
	for _, bad := range []string{"", "abc", "-5"} {
		if _, err := ParseAmount(bad); err == nil {
			t.Errorf("ParseAmount(%q) error = nil, want error", bad)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(5000000); got != "50000.00" {
		t.Errorf("FormatAmount(5000000) = %q", got)
	}
	if got := FormatAmount(0); got != "0.00" {
		t.Errorf("FormatAmount(0) = %q", got)
	}
}

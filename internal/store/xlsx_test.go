package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/ledger"
)

func newTestStore(t *testing.T) *XLSXStore {
	t.Helper()
	dir := t.TempDir()
	return NewXLSXStore(filepath.Join(dir, "Deudores.xlsx"), filepath.Join(dir, "quarantine"))
}

func TestXLSXStore_MissingFileLoadsEmpty(t *testing.T) {
	s := newTestStore(t)
	raw, err := s.Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if len(raw) != 0 {
		t.Errorf("got %d rows, want 0", len(raw))
	}
}

func TestXLSXStore_SaveLoadRoundtrip(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	in := []ledger.DebtRecord{
		{Sequence: 1, Client: "ANA", Date: &date, AmountCents: 5000000},
		{Sequence: 2, Client: "LUIS", AmountCents: 2000050},
	}

	if err := s.Save(in); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	raw, err := s.Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	out, err := ledger.Reconcile(ledger.Normalize(raw), nil)
	if err != nil {
		t.Fatalf("Reconcile error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(out), out)
	}
	if out[0].Client != "ANA" || out[0].AmountCents != 5000000 {
		t.Errorf("first record = %+v", out[0])
	}
	if out[0].Date == nil || out[0].Date.Format("2006-01-02") != "2025-04-02" {
		t.Errorf("date did not roundtrip: %v", out[0].Date)
	}
	if out[1].Client != "LUIS" || out[1].AmountCents != 2000050 {
		t.Errorf("second record = %+v", out[1])
	}
}

func TestXLSXStore_CorruptFileQuarantined(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path, []byte("this is not a spreadsheet"), 0o644); err != nil {
		t.Fatal(err)
	}

	raw, err := s.Load()
	if err != nil {
		t.Fatalf("Load error = %v, want quarantine-and-empty", err)
	}
	if len(raw) != 0 {
		t.Errorf("got %d rows from corrupt file, want 0", len(raw))
	}

	// original moved aside, not destroyed
	if _, err := os.Stat(s.Path); !os.IsNotExist(err) {
		t.Error("corrupt file still present at original path")
	}
	entries, err := os.ReadDir(s.QuarantineDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("quarantine dir entries = %v, err = %v", entries, err)
	}
}

func TestEncodeXLSX_EmptySetStillHasHeader(t *testing.T) {
	content, err := EncodeXLSX(nil)
	if err != nil {
		t.Fatalf("EncodeXLSX error = %v", err)
	}
	if len(content) == 0 {
		t.Error("empty workbook encoded to zero bytes")
	}
}

package store

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/ledger"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the debtor table.
const SheetName = "Deudores"

// XLSXStore persists the ledger as a spreadsheet, the format the original
// workflow lives in. A file that cannot be opened is moved aside into the
// quarantine directory and the load continues from empty.
type XLSXStore struct {
	Path          string
	QuarantineDir string
}

func NewXLSXStore(path, quarantineDir string) *XLSXStore {
	return &XLSXStore{Path: path, QuarantineDir: quarantineDir}
}

// Load reads the spreadsheet into raw rows. A missing file is an empty
// ledger. Column order in the file does not matter; the header row decides.
func (s *XLSXStore) Load() ([]ledger.RawRow, error) {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		s.quarantine(err)
		return nil, nil
	}
	defer f.Close()

	sheet := SheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) == 0 {
		return nil, nil
	}

	// header row maps cell position to column name, order-insensitive
	colByIndex := map[int]string{}
	for i, cell := range rows[0] {
		name := strings.TrimSpace(cell)
		for _, col := range ledger.Columns {
			if strings.EqualFold(name, col) {
				colByIndex[i] = col
			}
		}
	}

	raw := make([]ledger.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := ledger.RawRow{}
		for i, cell := range cells {
			col, ok := colByIndex[i]
			if !ok || strings.TrimSpace(cell) == "" {
				continue
			}
			row[col] = cell
		}
		raw = append(raw, row)
	}
	return raw, nil
}

// Save overwrites the spreadsheet with the canonical set. The workbook is
// written to a temporary file first so a crash mid-write cannot corrupt the
// previous artifact.
func (s *XLSXStore) Save(records []ledger.DebtRecord) error {
	content, err := EncodeXLSX(records)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("replace spreadsheet: %w", err)
	}
	return nil
}

// quarantine moves the unreadable file aside under a unique name so a human
// can recover hand-entered data later, then lets the load start from empty.
func (s *XLSXStore) quarantine(cause error) {
	dir := s.QuarantineDir
	if dir == "" {
		dir = filepath.Dir(s.Path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("quarantine dir: %v", err)
		return
	}
	name := fmt.Sprintf("%s.corrupt-%s-%s",
		filepath.Base(s.Path),
		time.Now().Format("20060102-150405"),
		uuid.NewString()[:8])
	dest := filepath.Join(dir, name)
	if err := os.Rename(s.Path, dest); err != nil {
		log.Printf("quarantine %s: %v", s.Path, err)
		return
	}
	log.Printf("unreadable spreadsheet quarantined to %s: %v", dest, cause)
}

// BuildWorkbook renders the canonical set as a workbook in the persisted
// schema. Shared by the file store, the export endpoints and the GitHub
// mirror so every artifact carries identical content.
func BuildWorkbook(records []ledger.DebtRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, col := range ledger.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, col)
	}

	for idx, rec := range records {
		row := idx + 2
		dateStr := ""
		if rec.Date != nil {
			dateStr = rec.Date.Format("2006-01-02")
		}
		f.SetCellValue(SheetName, fmt.Sprintf("A%d", row), rec.Sequence)
		f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), rec.Client)
		f.SetCellValue(SheetName, fmt.Sprintf("C%d", row), dateStr)
		f.SetCellValue(SheetName, fmt.Sprintf("D%d", row), float64(rec.AmountCents)/100.0)
		f.SetCellValue(SheetName, fmt.Sprintf("E%d", row), rec.Paid)
	}

	f.SetColWidth(SheetName, "A", "A", 12)
	f.SetColWidth(SheetName, "B", "B", 28)
	f.SetColWidth(SheetName, "C", "C", 12)
	f.SetColWidth(SheetName, "D", "D", 14)
	f.SetColWidth(SheetName, "E", "E", 8)

	return f, nil
}

// EncodeXLSX is BuildWorkbook serialized to bytes.
func EncodeXLSX(records []ledger.DebtRecord) ([]byte, error) {
	f, err := BuildWorkbook(records)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

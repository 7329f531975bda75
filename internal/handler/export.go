package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/ledger"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/service"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/store"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/util"

	"github.com/gin-gonic/gin"
)

// ExportHandler renders report artifacts from the canonical active set. A
// pure consumer: nothing here mutates the ledger.
type ExportHandler struct {
	Ledger *service.Ledger
}

func NewExportHandler(svc *service.Ledger) *ExportHandler {
	return &ExportHandler{Ledger: svc}
}

const totalsSheet = "Totales"

// ExportXLSX downloads the current ledger as a spreadsheet: the debtor table
// in the persisted schema plus a per-client totals sheet.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	snapshot := h.Ledger.Snapshot()

	f, err := store.BuildWorkbook(snapshot)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "build spreadsheet failed")
		return
	}
	defer f.Close()

	totals, grand := ledger.Aggregate(snapshot)
	if _, err := f.NewSheet(totalsSheet); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "build totals sheet failed")
		return
	}
	f.SetCellValue(totalsSheet, "A1", "Cliente")
	f.SetCellValue(totalsSheet, "B1", "Total")
	row := 2
	for _, ct := range totals {
		f.SetCellValue(totalsSheet, fmt.Sprintf("A%d", row), ct.Client)
		f.SetCellValue(totalsSheet, fmt.Sprintf("B%d", row), float64(ct.AmountCents)/100.0)
		row++
	}
	f.SetCellValue(totalsSheet, fmt.Sprintf("A%d", row), "GRAN TOTAL")
	f.SetCellValue(totalsSheet, fmt.Sprintf("B%d", row), float64(grand)/100.0)
	f.SetColWidth(totalsSheet, "A", "A", 28)
	f.SetColWidth(totalsSheet, "B", "B", 14)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"deudores_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}

// ExportCSV downloads the debtor table as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	snapshot := h.Ledger.Snapshot()

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"deudores_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so Excel detects accented client names
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(ledger.Columns)
	for _, rec := range snapshot {
		dateStr := ""
		if rec.Date != nil {
			dateStr = rec.Date.Format("2006-01-02")
		}
		writer.Write([]string{
			fmt.Sprint(rec.Sequence),
			rec.Client,
			dateStr,
			ledger.FormatAmount(rec.AmountCents),
			fmt.Sprintf("%t", rec.Paid),
		})
	}
}

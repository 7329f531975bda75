package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/ledger"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/service"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/util"

	"github.com/gin-gonic/gin"
)

// DebtHandler exposes the ledger over HTTP: register, list/filter, edit,
// bulk edit and the totals view.
type DebtHandler struct {
	Ledger *service.Ledger
}

func NewDebtHandler(svc *service.Ledger) *DebtHandler {
	return &DebtHandler{Ledger: svc}
}

// ---------- request/response shapes ----------

type registerDebtReq struct {
	Client string `json:"client" binding:"required"`
	Date   string `json:"date"` // YYYY-MM-DD, defaults to today
	Amount string `json:"amount" binding:"required"`
}

type debtResp struct {
	Sequence    int    `json:"sequence"`
	Client      string `json:"client"`
	Date        string `json:"date"` // YYYY-MM-DD, empty when unknown
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"` // decimal string for direct display
	Paid        bool   `json:"paid"`
}

type updateFieldReq struct {
	Field string `json:"field" binding:"required,oneof=client date amount paid"`
	Value string `json:"value"`
}

type editedRowReq struct {
	Sequence int    `json:"sequence"`
	Client   string `json:"client"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Paid     any    `json:"paid"` // bool or an affirmative spelling
}

type bulkEditReq struct {
	// ClientFilter names the filter the edit view had active; rows hidden by
	// it are out of the edit's scope and survive the save.
	ClientFilter string         `json:"client_filter"`
	Rows         []editedRowReq `json:"rows"`
}

func toDebtResp(rec ledger.DebtRecord) debtResp {
	dateStr := ""
	if rec.Date != nil {
		dateStr = rec.Date.Format("2006-01-02")
	}
	return debtResp{
		Sequence:    rec.Sequence,
		Client:      rec.Client,
		Date:        dateStr,
		AmountCents: rec.AmountCents,
		Amount:      ledger.FormatAmount(rec.AmountCents),
		Paid:        rec.Paid,
	}
}

func totalsPayload(totals []ledger.ClientTotal, grand int64) gin.H {
	byClient := make([]gin.H, 0, len(totals))
	for _, ct := range totals {
		byClient = append(byClient, gin.H{
			"client":       ct.Client,
			"amount_cents": ct.AmountCents,
			"amount":       ledger.FormatAmount(ct.AmountCents),
		})
	}
	return gin.H{
		"by_client":         byClient,
		"grand_total_cents": grand,
		"grand_total":       ledger.FormatAmount(grand),
	}
}

// ---------- register a new debtor ----------

func (h *DebtHandler) RegisterDebt(c *gin.Context) {
	var req registerDebtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := util.ValidateClient(req.Client); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "client name is required")
		return
	}

	date, err := util.ValidateDebtDate(req.Date, time.Now())
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if date == nil {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		date = &today
	}

	amountCents, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	rec, err := h.Ledger.Register(c.Request.Context(), req.Client, date, amountCents)
	if errors.Is(err, ledger.ErrClientRequired) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodePersistErr, "save failed, retry persist")
		return
	}

	util.Success(c, util.Response{
		"debt": toDebtResp(rec),
	})
}

// ---------- active debtors ----------

// ListDebts returns the active set, optionally filtered by client. The
// totals summary always covers the whole active set, matching the original
// screen where the grand total ignores the table filter.
func (h *DebtHandler) ListDebts(c *gin.Context) {
	filter := ledger.NormalizeClient(c.Query("client"))

	snapshot := h.Ledger.Snapshot()
	items := make([]debtResp, 0, len(snapshot))
	for _, rec := range snapshot {
		if filter != "" && rec.Client != filter {
			continue
		}
		items = append(items, toDebtResp(rec))
	}

	totals, grand := h.Ledger.Totals()
	util.Success(c, util.Response{
		"items":   items,
		"total":   len(items),
		"summary": totalsPayload(totals, grand),
	})
}

// GetTotals serves the per-client totals view on its own.
func (h *DebtHandler) GetTotals(c *gin.Context) {
	totals, grand := h.Ledger.Totals()
	util.Success(c, util.Response{
		"summary": totalsPayload(totals, grand),
	})
}

// ---------- edit one field ----------

func (h *DebtHandler) UpdateDebtField(c *gin.Context) {
	seq, err := strconv.Atoi(c.Param("sequence"))
	if err != nil || seq <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid sequence")
		return
	}

	var req updateFieldReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := h.Ledger.SetField(c.Request.Context(), seq, req.Field, req.Value); err != nil {
		status, code := http.StatusInternalServerError, util.CodePersistErr
		if errors.Is(err, ledger.ErrNoSuchRecord) {
			status, code = http.StatusNotFound, util.CodeNotFound
		}
		util.Error(c, status, code, err.Error())
		return
	}

	h.respondWithSet(c)
}

// ---------- bulk table edit ----------

func (h *DebtHandler) BulkEdit(c *gin.Context) {
	var req bulkEditReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	rows := make([]ledger.EditedRow, 0, len(req.Rows))
	for _, r := range req.Rows {
		// bulk rows use ingest-grade tolerance: bad cells degrade to defaults
		amountCents, err := ledger.ParseAmount(r.Amount)
		if err != nil {
			amountCents = 0
		}
		rows = append(rows, ledger.EditedRow{
			Sequence:    r.Sequence,
			Client:      r.Client,
			Date:        ledger.ParseDate(r.Date),
			AmountCents: amountCents,
			Paid:        ledger.IsAffirmative(r.Paid),
		})
	}

	if err := h.Ledger.EditTable(c.Request.Context(), req.ClientFilter, rows); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodePersistErr, err.Error())
		return
	}

	h.respondWithSet(c)
}

// ---------- retry a failed persist ----------

func (h *DebtHandler) Persist(c *gin.Context) {
	if err := h.Ledger.Flush(c.Request.Context()); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodePersistErr, err.Error())
		return
	}
	util.Success(c, util.Response{
		"message": "persisted",
	})
}

func (h *DebtHandler) respondWithSet(c *gin.Context) {
	snapshot := h.Ledger.Snapshot()
	items := make([]debtResp, 0, len(snapshot))
	for _, rec := range snapshot {
		items = append(items, toDebtResp(rec))
	}
	totals, grand := h.Ledger.Totals()
	util.Success(c, util.Response{
		"items":   items,
		"summary": totalsPayload(totals, grand),
	})
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/ledger"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/service"

	"github.com/gin-gonic/gin"
)

type memStore struct {
	saved []ledger.DebtRecord
}

func (m *memStore) Load() ([]ledger.RawRow, error) { return nil, nil }
func (m *memStore) Save(records []ledger.DebtRecord) error {
	m.saved = append([]ledger.DebtRecord(nil), records...)
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *service.Ledger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := service.New(&memStore{}, nil)
	if err != nil {
		t.Fatalf("service.New error = %v", err)
	}
	h := NewDebtHandler(svc)

	r := gin.New()
	r.POST("/api/debts", h.RegisterDebt)
	r.GET("/api/debts", h.ListDebts)
	r.PUT("/api/debts/:sequence", h.UpdateDebtField)
	r.PUT("/api/debts", h.BulkEdit)
	r.GET("/api/totals", h.GetTotals)
	return r, svc
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterDebt_Created(t *testing.T) {
	r, svc := newTestRouter(t)

	w := do(t, r, "POST", "/api/debts", `{"client":"ana","date":"2025-01-15","amount":"50000"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Debt debtResp `json:"debt"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	d := resp.Data.Debt
	if d.Sequence != 1 || d.Client != "ANA" || d.Paid || d.AmountCents != 5000000 {
		t.Errorf("debt = %+v", d)
	}

	_, grand := svc.Totals()
	if grand != 5000000 {
		t.Errorf("grand total = %d, want 5000000", grand)
	}
}

func TestRegisterDebt_EmptyClientRejected(t *testing.T) {
	r, svc := newTestRouter(t)

	w := do(t, r, "POST", "/api/debts", `{"client":"   ","amount":"100"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(svc.Snapshot()) != 0 {
		t.Error("rejected registration changed the active set")
	}
}

func TestRegisterDebt_FutureDateRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, "POST", "/api/debts", `{"client":"ana","date":"2999-01-01","amount":"100"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateDebtField_MarkPaid(t *testing.T) {
	r, svc := newTestRouter(t)

	do(t, r, "POST", "/api/debts", `{"client":"ana","amount":"300"}`)
	do(t, r, "POST", "/api/debts", `{"client":"luis","amount":"200"}`)

	w := do(t, r, "PUT", "/api/debts/1", `{"field":"paid","value":"pagado"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	got := svc.Snapshot()
	if len(got) != 1 || got[0].Client != "LUIS" || got[0].Sequence != 1 {
		t.Errorf("active set = %+v", got)
	}
}

func TestUpdateDebtField_UnknownSequence(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, "PUT", "/api/debts/42", `{"field":"paid","value":"1"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestBulkEdit_ScopedToFilter(t *testing.T) {
	r, svc := newTestRouter(t)

	do(t, r, "POST", "/api/debts", `{"client":"ana","amount":"100"}`)
	do(t, r, "POST", "/api/debts", `{"client":"luis","amount":"200"}`)

	w := do(t, r, "PUT", "/api/debts",
		`{"client_filter":"ana","rows":[{"sequence":1,"client":"ana","amount":"999","paid":false}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	byClient := map[string]int64{}
	for _, rec := range svc.Snapshot() {
		byClient[rec.Client] = rec.AmountCents
	}
	if byClient["ANA"] != 99900 || byClient["LUIS"] != 20000 {
		t.Errorf("amounts = %v", byClient)
	}
}

func TestListDebts_FilterAndGrandTotal(t *testing.T) {
	r, _ := newTestRouter(t)

	do(t, r, "POST", "/api/debts", `{"client":"ana","amount":"300"}`)
	do(t, r, "POST", "/api/debts", `{"client":"luis","amount":"200"}`)

	w := do(t, r, "GET", "/api/debts?client=ana", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Data struct {
			Items   []debtResp `json:"items"`
			Summary struct {
				GrandTotalCents int64 `json:"grand_total_cents"`
			} `json:"summary"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Items) != 1 || resp.Data.Items[0].Client != "ANA" {
		t.Errorf("items = %+v", resp.Data.Items)
	}
	// the grand total ignores the table filter, like the original screen
	if resp.Data.Summary.GrandTotalCents != 50000 {
		t.Errorf("grand total = %d, want 50000", resp.Data.Summary.GrandTotalCents)
	}
}

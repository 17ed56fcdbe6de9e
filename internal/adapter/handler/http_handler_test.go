package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rl1809/rice-trace/internal/adapter/ledger"
	"github.com/rl1809/rice-trace/internal/adapter/ledger/ledgertest"
	"github.com/rl1809/rice-trace/internal/core/domain"
	"github.com/rl1809/rice-trace/internal/core/service"
)

type stubJournal struct {
	entries []domain.JournalEntry
	limit   int
	err     error
}

func (s *stubJournal) Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	s.limit = limit
	return s.entries, s.err
}

func newTestMux(t *testing.T, srv *ledgertest.Server, journal *stubJournal) *http.ServeMux {
	t.Helper()
	svc := service.NewActionService(ledger.NewHTTPGateway(srv.URL, nil), nil)

	var h *HTTPHandler
	if journal != nil {
		h = NewHTTPHandler(svc, journal)
	} else {
		h = NewHTTPHandler(svc, nil)
	}
	mux := http.NewServeMux()
	h.Routes(mux)
	return mux
}

func post(mux http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRunAction_Success(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Reply(http.StatusOK, `{"message":"Matched batch to order","result":"matched"}`))
	mux := newTestMux(t, srv, nil)

	rec := post(mux, "/api/actions/match-order", `{"batchID":"B100","orderID":"O7"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out domain.Outcome
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Kind != domain.OutcomeSuccess || out.Message != "Match Result: matched" {
		t.Errorf("unexpected outcome %+v", out)
	}

	calls := srv.Calls()
	if len(calls) != 1 || calls[0].Path != "/api/orders/match" {
		t.Fatalf("unexpected ledger calls %+v", calls)
	}
	if string(calls[0].Body) != `{"batchID":"B100","orderID":"O7"}` {
		t.Errorf("unexpected ledger body %s", calls[0].Body)
	}
}

func TestRunAction_NumericQuantity(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Reply(http.StatusOK, `{"message":"ok"}`))
	mux := newTestMux(t, srv, nil)

	rec := post(mux, "/api/actions/create-order", `{"orderID":"O7","variety":"Basmati","quantity":250,"millerName":"Ravi"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := string(srv.Calls()[0].Body); got != `{"orderID":"O7","variety":"Basmati","quantityInKg":"250","millerName":"Ravi"}` {
		t.Errorf("unexpected ledger body %s", got)
	}
}

func TestRunAction_Validation(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Reply(http.StatusOK, `{}`))
	mux := newTestMux(t, srv, nil)

	rec := post(mux, "/api/actions/dispatch", `{"batchID":"B100"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var out domain.Outcome
	json.NewDecoder(rec.Body).Decode(&out)
	if len(out.Missing) != 1 || out.Missing[0] != domain.FieldRetailerName {
		t.Errorf("expected retailerName missing, got %v", out.Missing)
	}
	if len(srv.Calls()) != 0 {
		t.Error("expected no ledger call")
	}
}

func TestRunAction_EmptyBody(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Reply(http.StatusOK, `{"data":"[]"}`))
	mux := newTestMux(t, srv, nil)

	rec := post(mux, "/api/actions/list-batches", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(srv.Calls()) != 1 {
		t.Error("expected one ledger call")
	}
}

func TestRunAction_LedgerFailure(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Reply(http.StatusOK, `not json`))
	mux := newTestMux(t, srv, nil)

	rec := post(mux, "/api/actions/read-batch", `{"batchID":"B100"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	var out domain.Outcome
	json.NewDecoder(rec.Body).Decode(&out)
	if out.Message != "Error while reading Rice Batch" {
		t.Errorf("unexpected message %q", out.Message)
	}
}

func TestRunAction_BadRequests(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Reply(http.StatusOK, `{}`))
	mux := newTestMux(t, srv, nil)

	if rec := post(mux, "/api/actions/delete-batch", `{}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown action: expected 404, got %d", rec.Code)
	}
	if rec := post(mux, "/api/actions/create-batch", `{"batchID":`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad json: expected 400, got %d", rec.Code)
	}
	if rec := post(mux, "/api/actions/create-batch", `{"batchID":["B1"]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("nested value: expected 400, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/actions/create-batch", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: expected 405, got %d", rec.Code)
	}

	if len(srv.Calls()) != 0 {
		t.Error("expected no ledger calls")
	}
}

func TestJournal(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Reply(http.StatusOK, `{}`))
	journal := &stubJournal{entries: []domain.JournalEntry{{ID: "e-1", Action: domain.ActionDispatch}}}
	mux := newTestMux(t, srv, journal)

	req := httptest.NewRequest(http.MethodGet, "/api/journal?limit=5", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if journal.limit != 5 {
		t.Errorf("expected limit 5, got %d", journal.limit)
	}

	var body struct {
		Entries []domain.JournalEntry `json:"entries"`
	}
	json.NewDecoder(rec.Body).Decode(&body)
	if len(body.Entries) != 1 || body.Entries[0].ID != "e-1" {
		t.Errorf("unexpected entries %+v", body.Entries)
	}
}

func TestJournal_Errors(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Reply(http.StatusOK, `{}`))

	rec := httptest.NewRecorder()
	newTestMux(t, srv, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/journal", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("no journal: expected 404, got %d", rec.Code)
	}

	failing := &stubJournal{err: errors.New("redis down")}
	rec = httptest.NewRecorder()
	newTestMux(t, srv, failing).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/journal", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("failing journal: expected 500, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	newTestMux(t, srv, failing).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/journal?limit=x", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: expected 400, got %d", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Reply(http.StatusOK, `{}`))
	rec := httptest.NewRecorder()
	newTestMux(t, srv, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

package service

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rl1809/rice-trace/internal/core/domain"
)

const (
	noticeAllRequired = "All fields are required."
	noticeBatchID     = "Enter a valid rice batch ID"
)

type actionSpec struct {
	required []string
	invalid  string
	failure  string
	request  func(v map[string]string) (domain.LedgerRequest, error)
	present  func(body ledgerBody, out *domain.Outcome)
}

var actionSpecs = map[domain.Action]actionSpec{
	domain.ActionCreateBatch: {
		required: []string{
			domain.FieldBatchID, domain.FieldVariety, domain.FieldHarvestDate,
			domain.FieldQuantity, domain.FieldFarmerName,
		},
		invalid: noticeAllRequired,
		failure: "Error while creating RiceBatch",
		request: func(v map[string]string) (domain.LedgerRequest, error) {
			return postJSON("/api/rice", domain.RiceBatch{
				BatchID:     v[domain.FieldBatchID],
				Variety:     v[domain.FieldVariety],
				HarvestDate: v[domain.FieldHarvestDate],
				Quantity:    v[domain.FieldQuantity],
				FarmerName:  v[domain.FieldFarmerName],
			})
		},
		present: func(body ledgerBody, out *domain.Outcome) {
			out.Message = body.textOr("message", "Rice Batch Created")
		},
	},
	domain.ActionReadBatch: {
		required: []string{domain.FieldBatchID},
		invalid:  noticeBatchID,
		failure:  "Error while reading Rice Batch",
		request: func(v map[string]string) (domain.LedgerRequest, error) {
			return get("/api/rice/" + url.PathEscape(v[domain.FieldBatchID])), nil
		},
		present: func(body ledgerBody, out *domain.Outcome) {
			out.Message = body.compact()
			out.Data = body.raw
		},
	},
	domain.ActionListBatches: {
		failure: "Error while listing Rice Batches",
		request: func(map[string]string) (domain.LedgerRequest, error) {
			return get("/api/rice/all"), nil
		},
		present: presentBatches("Rice Batches:\n"),
	},
	domain.ActionQueryRange: {
		required: []string{domain.FieldStart, domain.FieldEnd},
		invalid:  noticeAllRequired,
		failure:  "Error while querying Rice Batches by Range",
		request: func(v map[string]string) (domain.LedgerRequest, error) {
			// start must precede end in the query string
			path := "/api/rice/range?start=" + url.QueryEscape(v[domain.FieldStart]) +
				"&end=" + url.QueryEscape(v[domain.FieldEnd])
			return get(path), nil
		},
		present: presentBatches("Rice Batches by Range:\n"),
	},
	domain.ActionBatchHistory: {
		required: []string{domain.FieldBatchID},
		invalid:  noticeBatchID,
		failure:  "Error while reading Batch History",
		request: func(v map[string]string) (domain.LedgerRequest, error) {
			return get("/api/rice/history/" + url.PathEscape(v[domain.FieldBatchID])), nil
		},
		present: func(body ledgerBody, out *domain.Outcome) {
			display, records := normalizeData(body.field("data"))
			out.Message = "Batch History:\n" + display
			out.Data = records
			if records != nil {
				var history []domain.HistoryRecord
				if err := json.Unmarshal(records, &history); err == nil {
					out.History = history
				}
			}
		},
	},
	domain.ActionCreateOrder: {
		required: []string{
			domain.FieldOrderID, domain.FieldVariety, domain.FieldQuantity, domain.FieldMillerName,
		},
		invalid: noticeAllRequired,
		failure: "Error while creating Processing Order",
		request: func(v map[string]string) (domain.LedgerRequest, error) {
			return postJSON("/api/orders", domain.ProcessingOrder{
				OrderID:      v[domain.FieldOrderID],
				Variety:      v[domain.FieldVariety],
				QuantityInKg: v[domain.FieldQuantity],
				MillerName:   v[domain.FieldMillerName],
			})
		},
		present: func(body ledgerBody, out *domain.Outcome) {
			if msg, ok := body.text("message"); ok {
				out.Message = "Create Order: " + msg
				return
			}
			out.Message = "Processing Order Created"
		},
	},
	domain.ActionMatchOrder: {
		required: []string{domain.FieldBatchID, domain.FieldOrderID},
		invalid:  noticeAllRequired,
		failure:  "Error while matching Processing Order",
		request: func(v map[string]string) (domain.LedgerRequest, error) {
			return postJSON("/api/orders/match", domain.Match{
				BatchID: v[domain.FieldBatchID],
				OrderID: v[domain.FieldOrderID],
			})
		},
		present: func(body ledgerBody, out *domain.Outcome) {
			if result, ok := body.text("result"); ok {
				out.Message = "Match Result: " + result
				return
			}
			out.Message = body.textOr("message", "Match Submitted")
		},
	},
	domain.ActionDispatch: {
		required: []string{domain.FieldBatchID, domain.FieldRetailerName},
		invalid:  noticeAllRequired,
		failure:  "Error while dispatching Rice Batch",
		request: func(v map[string]string) (domain.LedgerRequest, error) {
			return postJSON("/api/rice/dispatch", domain.Dispatch{
				BatchID:      v[domain.FieldBatchID],
				RetailerName: v[domain.FieldRetailerName],
			})
		},
		present: func(body ledgerBody, out *domain.Outcome) {
			out.Message = body.textOr("message", "Batch Dispatched")
		},
	},
}

// Required returns the input names an action needs, or nil for an unknown action.
func Required(action domain.Action) []string {
	spec, ok := actionSpecs[action]
	if !ok {
		return nil
	}
	return append([]string(nil), spec.required...)
}

func get(path string) domain.LedgerRequest {
	return domain.LedgerRequest{Method: http.MethodGet, Path: path}
}

func postJSON(path string, payload any) (domain.LedgerRequest, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.LedgerRequest{}, err
	}
	return domain.LedgerRequest{Method: http.MethodPost, Path: path, Body: body}, nil
}

func presentBatches(prefix string) func(ledgerBody, *domain.Outcome) {
	return func(body ledgerBody, out *domain.Outcome) {
		display, records := normalizeData(body.field("data"))
		out.Message = prefix + display
		out.Data = records
		if records != nil {
			var batches []domain.LedgerBatch
			if err := json.Unmarshal(records, &batches); err == nil {
				out.Batches = batches
			}
		}
	}
}

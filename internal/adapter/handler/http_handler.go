package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rl1809/rice-trace/internal/core/domain"
	"github.com/rl1809/rice-trace/internal/core/service"
	"github.com/rl1809/rice-trace/internal/port"
)

type HTTPHandler struct {
	actionService *service.ActionService
	journal       port.JournalReader
}

type ErrorHTTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewHTTPHandler wires the action endpoints. journal may be nil.
func NewHTTPHandler(actionService *service.ActionService, journal port.JournalReader) *HTTPHandler {
	return &HTTPHandler{actionService: actionService, journal: journal}
}

// Routes registers every endpoint on mux.
func (h *HTTPHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/actions/{action}", h.RunAction)
	mux.HandleFunc("/api/journal", h.Journal)
}

// RunAction executes one action with the JSON object in the body as input.
func (h *HTTPHandler) RunAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	action := domain.Action(r.PathValue("action"))
	if !action.Valid() {
		writeJSON(w, http.StatusNotFound, ErrorHTTPResponse{
			Success: false,
			Message: "unknown action",
		})
		return
	}

	fields, err := decodeFields(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	out := h.actionService.Run(r.Context(), action, fields)
	writeJSON(w, outcomeStatus(out), out)
}

func (h *HTTPHandler) Journal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.journal == nil {
		writeJSON(w, http.StatusNotFound, ErrorHTTPResponse{
			Success: false,
			Message: "journal not configured",
		})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{
				Success: false,
				Message: "invalid limit",
			})
			return
		}
		limit = n
	}

	entries, err := h.journal.Recent(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorHTTPResponse{
			Success: false,
			Message: "internal error",
		})
		return
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeFields reads a flat JSON object. Numbers and booleans are kept as
// their literal text; null reads as empty.
func decodeFields(r *http.Request) (domain.Fields, error) {
	fields := domain.Fields{}
	if r.Body == nil || r.ContentLength == 0 {
		return fields, nil
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	for name, v := range raw {
		switch val := v.(type) {
		case nil:
			fields[name] = ""
		case string:
			fields[name] = val
		case json.Number:
			fields[name] = val.String()
		case bool:
			fields[name] = strconv.FormatBool(val)
		default:
			return nil, fmt.Errorf("field %s: unsupported value", name)
		}
	}
	return fields, nil
}

func outcomeStatus(out domain.Outcome) int {
	switch out.Kind {
	case domain.OutcomeSuccess:
		return http.StatusOK
	case domain.OutcomeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

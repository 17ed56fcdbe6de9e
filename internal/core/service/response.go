package service

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ledgerBody is a decoded ledger response. fields is nil when the body is
// valid JSON but not an object.
type ledgerBody struct {
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

func decodeBody(b []byte) (ledgerBody, error) {
	b = bytes.TrimSpace(b)
	if !json.Valid(b) {
		return ledgerBody{}, ErrDecode
	}
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(b, &fields)
	return ledgerBody{raw: json.RawMessage(b), fields: fields}, nil
}

func (b ledgerBody) field(name string) json.RawMessage {
	return b.fields[name]
}

// text returns a field as display text. Absent, null and empty-string
// fields report false.
func (b ledgerBody) text(name string) (string, bool) {
	raw := bytes.TrimSpace(b.fields[name])
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	return string(raw), true
}

func (b ledgerBody) textOr(name, fallback string) string {
	if s, ok := b.text(name); ok {
		return s
	}
	return fallback
}

func (b ledgerBody) compact() string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, b.raw); err != nil {
		return string(b.raw)
	}
	return buf.String()
}

// normalizeData turns a `data` field that may be a stringified list or a
// structured value into display text plus the structured records, if any.
func normalizeData(raw json.RawMessage) (string, json.RawMessage) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		trimmed := strings.TrimSpace(s)
		if trimmed != "" && (trimmed[0] == '[' || trimmed[0] == '{') && json.Valid([]byte(trimmed)) {
			return s, json.RawMessage(trimmed)
		}
		return s, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw), raw
	}
	return buf.String(), raw
}

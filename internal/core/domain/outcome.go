package domain

import "encoding/json"

type OutcomeKind string

const (
	OutcomeValidation OutcomeKind = "validation"
	OutcomeSuccess    OutcomeKind = "success"
	OutcomeFailure    OutcomeKind = "failure"
)

// Outcome is the single result reported to the actor for one action.
type Outcome struct {
	Action     Action          `json:"action"`
	Kind       OutcomeKind     `json:"kind"`
	Message    string          `json:"message"`
	Missing    []string        `json:"missing,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Batches    []LedgerBatch   `json:"batches,omitempty"`
	History    []HistoryRecord `json:"history,omitempty"`

	// Err carries the diagnostic cause for validation and failure outcomes.
	Err error `json:"-"`
}

func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

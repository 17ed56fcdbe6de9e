package domain

import "time"

// JournalEntry is a diagnostic record of one action invocation.
type JournalEntry struct {
	ID         string      `json:"id"`
	Action     Action      `json:"action"`
	Kind       OutcomeKind `json:"kind"`
	Message    string      `json:"message"`
	Error      string      `json:"error,omitempty"`
	Method     string      `json:"method,omitempty"`
	Path       string      `json:"path,omitempty"`
	StatusCode int         `json:"statusCode,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

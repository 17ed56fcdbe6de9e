package port

import (
	"context"

	"github.com/rl1809/rice-trace/internal/core/domain"
)

type Journal interface {
	// Record appends a diagnostic entry for one action invocation
	Record(ctx context.Context, entry domain.JournalEntry) error
}

type JournalReader interface {
	// Recent returns up to limit entries, newest first
	Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}

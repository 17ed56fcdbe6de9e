package storage

import (
	"context"
	"errors"

	"github.com/rl1809/rice-trace/internal/core/domain"
	"github.com/rl1809/rice-trace/internal/port"
)

// MultiJournal records every entry to each journal in order and reports all
// failures together.
type MultiJournal []port.Journal

func (m MultiJournal) Record(ctx context.Context, entry domain.JournalEntry) error {
	var errs []error
	for _, j := range m {
		if err := j.Record(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

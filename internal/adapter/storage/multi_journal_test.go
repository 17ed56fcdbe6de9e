package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/rl1809/rice-trace/internal/core/domain"
)

type recordingJournal struct {
	entries []domain.JournalEntry
	err     error
}

func (r *recordingJournal) Record(ctx context.Context, entry domain.JournalEntry) error {
	r.entries = append(r.entries, entry)
	return r.err
}

func TestMultiJournal_RecordsToAll(t *testing.T) {
	failing := &recordingJournal{err: errors.New("redis down")}
	healthy := &recordingJournal{}

	err := MultiJournal{failing, healthy}.Record(context.Background(), domain.JournalEntry{ID: "e-1"})
	if err == nil || err.Error() != "redis down" {
		t.Errorf("expected joined redis error, got %v", err)
	}
	if len(failing.entries) != 1 || len(healthy.entries) != 1 {
		t.Error("expected both journals to receive the entry")
	}
}

func TestMultiJournal_Empty(t *testing.T) {
	if err := (MultiJournal{}).Record(context.Background(), domain.JournalEntry{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

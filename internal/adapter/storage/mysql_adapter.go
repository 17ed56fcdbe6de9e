package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rl1809/rice-trace/internal/core/domain"
	"github.com/rl1809/rice-trace/internal/port"
)

var (
	_ port.Journal       = (*MySQLAdapter)(nil)
	_ port.JournalReader = (*MySQLAdapter)(nil)
)

const createJournalTable = `
CREATE TABLE IF NOT EXISTS action_journal (
	id          CHAR(36)     NOT NULL PRIMARY KEY,
	action      VARCHAR(32)  NOT NULL,
	kind        VARCHAR(16)  NOT NULL,
	message     TEXT         NOT NULL,
	error_text  TEXT         NOT NULL,
	method      VARCHAR(8)   NOT NULL,
	path        VARCHAR(512) NOT NULL,
	status_code INT          NOT NULL,
	occurred_at DATETIME(6)  NOT NULL,
	INDEX idx_action_journal_occurred (occurred_at)
)`

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// EnsureSchema creates the journal table if it does not exist.
func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, createJournalTable); err != nil {
		return fmt.Errorf("create action_journal: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) Record(ctx context.Context, entry domain.JournalEntry) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO action_journal (id, action, kind, message, error_text, method, path, status_code, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Action, entry.Kind, entry.Message, entry.Error,
		entry.Method, entry.Path, entry.StatusCode, entry.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT id, action, kind, message, error_text, method, path, status_code, occurred_at
		FROM action_journal
		ORDER BY occurred_at DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.Kind, &e.Message, &e.Error,
			&e.Method, &e.Path, &e.StatusCode, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

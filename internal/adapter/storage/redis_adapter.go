package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/rice-trace/internal/core/domain"
	"github.com/rl1809/rice-trace/internal/port"
)

const (
	journalRecentKey      = "journal:recent"
	journalCountKeyPrefix = "journal:count:"
	defaultRecentLimit    = 200
)

var (
	_ port.Journal       = (*RedisAdapter)(nil)
	_ port.JournalReader = (*RedisAdapter)(nil)
)

// Push the entry, cap the list and bump the per-action kind counter in one step.
var recordEntryScript = redis.NewScript(`
local recent = KEYS[1]
local counts = KEYS[2]
local entry = ARGV[1]
local limit = tonumber(ARGV[2])
local kind = ARGV[3]

redis.call('LPUSH', recent, entry)
redis.call('LTRIM', recent, 0, limit - 1)
redis.call('HINCRBY', counts, kind, 1)

return 1
`)

type RedisAdapter struct {
	client *redis.Client
	limit  int
}

// NewRedisAdapter keeps at most limit recent entries; limit <= 0 uses the default.
func NewRedisAdapter(client *redis.Client, limit int) *RedisAdapter {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return &RedisAdapter{client: client, limit: limit}
}

func (r *RedisAdapter) Record(ctx context.Context, entry domain.JournalEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	keys := []string{journalRecentKey, journalCountKeyPrefix + string(entry.Action)}
	return recordEntryScript.Run(ctx, r.client, keys, data, r.limit, string(entry.Kind)).Err()
}

func (r *RedisAdapter) Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 || limit > r.limit {
		limit = r.limit
	}

	raw, err := r.client.LRange(ctx, journalRecentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.JournalEntry, 0, len(raw))
	for _, item := range raw {
		var entry domain.JournalEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("decode journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Counts returns how many outcomes of each kind were recorded for action.
func (r *RedisAdapter) Counts(ctx context.Context, action domain.Action) (map[domain.OutcomeKind]int64, error) {
	raw, err := r.client.HGetAll(ctx, journalCountKeyPrefix+string(action)).Result()
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.OutcomeKind]int64, len(raw))
	for kind, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode count %s: %w", kind, err)
		}
		counts[domain.OutcomeKind(kind)] = n
	}
	return counts, nil
}

// Reset drops the journal keys for the given actions and the recent list.
func (r *RedisAdapter) Reset(ctx context.Context, actions ...domain.Action) error {
	keys := []string{journalRecentKey}
	for _, a := range actions {
		keys = append(keys, journalCountKeyPrefix+string(a))
	}
	return r.client.Del(ctx, keys...).Err()
}

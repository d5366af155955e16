package score

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a Store backed by a slice. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
	ids     map[string]struct{}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[string]struct{})}
}

func (m *MemoryStore) Save(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := record.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.ids[record.ID]; dup {
		return fmt.Errorf("save %s: %w", record.ID, ErrAlreadyExists)
	}
	m.ids[record.ID] = struct{}{}
	record.CreatedAt = record.CreatedAt.UTC()
	m.records = append(m.records, record)
	return nil
}

func (m *MemoryStore) Top(ctx context.Context, limit int, since time.Time) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	m.mu.Lock()
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		if since.IsZero() || !r.CreatedAt.Before(since) {
			out = append(out, r)
		}
	}
	m.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Wealth != out[j].Wealth {
			return out[i].Wealth > out[j].Wealth
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return truncate(out, limit), nil
}

func (m *MemoryStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	m.mu.Lock()
	out := append([]Record(nil), m.records...)
	m.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return truncate(out, limit), nil
}

func truncate(records []Record, limit int) []Record {
	if len(records) > limit {
		return records[:limit]
	}
	return records
}

var _ Store = (*MemoryStore)(nil)

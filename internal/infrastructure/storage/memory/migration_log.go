package memory

import (
	"context"
	"sync"

	"laundrydesk/internal/domain/backfill"
)

// MigrationLog is an append-only in-memory backfill.AuditLog.
type MigrationLog struct {
	mu      sync.RWMutex
	entries []*backfill.MigrationSummary
}

// NewMigrationLog creates an empty log.
func NewMigrationLog() *MigrationLog {
	return &MigrationLog{}
}

// Append implements backfill.AuditLog.
func (l *MigrationLog) Append(_ context.Context, s *backfill.MigrationSummary) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := *s
	l.entries = append(l.entries, &c)
	return nil
}

// List implements backfill.AuditLog. Newest first.
func (l *MigrationLog) List(_ context.Context, limit int) ([]*backfill.MigrationSummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*backfill.MigrationSummary, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		c := *l.entries[i]
		out = append(out, &c)
	}
	return out, nil
}

// Package numerator provides sequential human-readable codes (HTL-00001).
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
)

// DefaultPadWidth is the minimum width of the numeric part.
const DefaultPadWidth = 5

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service allocates numbers from the sys_sequences table.
// Every call is a single UPSERT ... RETURNING, so numbers never repeat
// across processes.
type Service struct {
	querier  Querier
	padWidth int
}

// New creates a new numerator service.
func New(querier Querier) *Service {
	return &Service{querier: querier, padWidth: DefaultPadWidth}
}

// Next returns the next code for prefix.
func (s *Service) Next(ctx context.Context, prefix string) (string, error) {
	if s == nil || s.querier == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	var num int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`, prefix).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next %s: %w", prefix, err)
	}
	return Format(prefix, s.padWidth, num), nil
}

// Memory is an in-process counter with the same output format.
// Used by the in-memory store and tests.
type Memory struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewMemory creates an empty in-process numerator.
func NewMemory() *Memory {
	return &Memory{counters: make(map[string]int64)}
}

// Next returns the next code for prefix.
func (m *Memory) Next(_ context.Context, prefix string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[prefix]++
	return Format(prefix, DefaultPadWidth, m.counters[prefix]), nil
}

// Format creates the final code string.
func Format(prefix string, padWidth int, num int64) string {
	if padWidth <= 0 {
		padWidth = DefaultPadWidth
	}
	return fmt.Sprintf("%s-%0*d", prefix, padWidth, num)
}

// ParseNumber extracts numeric part from a formatted code.
// Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	i := strings.LastIndexByte(formatted, '-')
	if i < 0 {
		return -1
	}
	num, err := strconv.ParseInt(formatted[i+1:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}

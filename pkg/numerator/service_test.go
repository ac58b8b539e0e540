package numerator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if ptr, ok := dest[0].(*int64); ok {
		*ptr = m.val
	}
	return nil
}

type mockQuerier struct {
	mu     sync.Mutex
	values map[string]int64
	err    error
}

func (m *mockQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return &mockRow{err: m.err}
	}
	key := args[0].(string)
	m.values[key]++
	return &mockRow{val: m.values[key]}
}

func TestService_Next(t *testing.T) {
	q := &mockQuerier{values: map[string]int64{}}
	svc := New(q)
	ctx := context.Background()

	first, err := svc.Next(ctx, "HTL")
	require.NoError(t, err)
	second, err := svc.Next(ctx, "HTL")
	require.NoError(t, err)
	other, err := svc.Next(ctx, "SRV")
	require.NoError(t, err)

	assert.Equal(t, "HTL-00001", first)
	assert.Equal(t, "HTL-00002", second)
	assert.Equal(t, "SRV-00001", other)
}

func TestService_NextPropagatesError(t *testing.T) {
	svc := New(&mockQuerier{err: errors.New("relation does not exist")})
	_, err := svc.Next(context.Background(), "HTL")
	assert.ErrorContains(t, err, "relation does not exist")

	var nilSvc *Service
	_, err = nilSvc.Next(context.Background(), "HTL")
	assert.Error(t, err)
}

func TestMemory_ConcurrentUnique(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, _ := m.Next(context.Background(), "HTL")
			_, dup := seen.LoadOrStore(code, true)
			assert.False(t, dup, code)
		}()
	}
	wg.Wait()

	next, _ := m.Next(context.Background(), "HTL")
	assert.Equal(t, "HTL-00051", next)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, int64(42), ParseNumber("HTL-00042"))
	assert.Equal(t, int64(-1), ParseNumber("garbage"))
}

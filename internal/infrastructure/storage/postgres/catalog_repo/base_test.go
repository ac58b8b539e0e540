package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/domain"
)

func testRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "cat_test", "test", []string{"id", "code", "name", "deletion_mark"}, func() any { return nil })
}

func TestListQuery(t *testing.T) {
	repo := testRepo()
	target := id.New()

	tests := []struct {
		name     string
		filter   domain.ListFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "defaults hide deleted",
			filter:   domain.ListFilter{},
			wantSQL:  "SELECT id, code, name, deletion_mark FROM cat_test WHERE deletion_mark = $1",
			wantArgs: []any{false},
		},
		{
			name:     "include deleted",
			filter:   domain.ListFilter{IncludeDeleted: true},
			wantSQL:  "SELECT id, code, name, deletion_mark FROM cat_test",
			wantArgs: nil,
		},
		{
			name:     "search",
			filter:   domain.ListFilter{Search: "sol"},
			wantSQL:  "SELECT id, code, name, deletion_mark FROM cat_test WHERE deletion_mark = $1 AND (name ILIKE $2 OR code ILIKE $3)",
			wantArgs: []any{false, "%sol%", "%sol%"},
		},
		{
			name:     "ids",
			filter:   domain.ListFilter{IncludeDeleted: true, IDs: []id.ID{target}},
			wantSQL:  "SELECT id, code, name, deletion_mark FROM cat_test WHERE id IN ($1)",
			wantArgs: []any{target},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := repo.listQuery(tt.filter).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
				return
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := testRepo()

	got, err := repo.parseOrderBy("")
	require.NoError(t, err)
	assert.Equal(t, "name ASC", got)

	got, err = repo.parseOrderBy("-code")
	require.NoError(t, err)
	assert.Equal(t, "code DESC", got)

	_, err = repo.parseOrderBy("name; DROP TABLE cat_test")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

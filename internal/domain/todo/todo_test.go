package todo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/todos-backend/internal/domain/shared"
)

func dueDate() time.Time {
	return time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
}

func TestNewTodo(t *testing.T) {
	eta := decimal.NewFromFloat(1.5)
	todo, err := NewTodo("user-1", "ciphertext-title", "ciphertext-comments", "In Progress", "feature", eta, dueDate(), nil)
	require.NoError(t, err)

	assert.Equal(t, "user-1", todo.OwnerID)
	assert.Equal(t, 1, todo.Version)
	assert.True(t, todo.ActualEffort.IsZero())
	assert.False(t, todo.IsCompleted())
}

func TestNewTodo_Validation(t *testing.T) {
	eta := decimal.NewFromFloat(0.5)

	tests := []struct {
		name     string
		owner    string
		title    string
		status   string
		eta      decimal.Decimal
		wantCode string
	}{
		{"missing owner", "", "t", "New", eta, "INVALID_OWNER"},
		{"missing title", "user-1", "", "New", eta, "INVALID_TITLE"},
		{"missing status", "user-1", "t", "  ", eta, "INVALID_STATUS"},
		{"eta below minimum", "user-1", "t", "New", decimal.NewFromFloat(0.1), "INVALID_EFFORT"},
		{"eta above maximum", "user-1", "t", "New", decimal.NewFromInt(9), "INVALID_EFFORT"},
		{"eta off the quarter grid", "user-1", "t", "New", decimal.NewFromFloat(1.3), "INVALID_EFFORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTodo(tt.owner, tt.title, "", tt.status, "", tt.eta, dueDate(), nil)
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestTodo_Update(t *testing.T) {
	eta := decimal.NewFromInt(2)
	todo, err := NewTodo("user-1", "t", "", "New", "", eta, dueDate(), nil)
	require.NoError(t, err)

	ata := decimal.NewFromFloat(1.25)
	require.NoError(t, todo.Update("t2", "c2", "In Progress", "chore", ata, nil))

	assert.Equal(t, "t2", todo.Title)
	assert.Equal(t, "In Progress", todo.Status)
	assert.Equal(t, 2, todo.Version)
	assert.True(t, ata.Equal(todo.ActualEffort))
}

func TestTodo_Update_TerminalStatusRequiresActualEffort(t *testing.T) {
	eta := decimal.NewFromInt(2)

	for _, status := range []string{StatusCompleted, StatusOnHold} {
		t.Run(status, func(t *testing.T) {
			todo, err := NewTodo("user-1", "t", "", "New", "", eta, dueDate(), nil)
			require.NoError(t, err)

			err = todo.Update("t", "", status, "", decimal.Zero, nil)
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_EFFORT", domainErr.Code)

			require.NoError(t, todo.Update("t", "", status, "", decimal.NewFromInt(1), nil))
		})
	}
}

func TestTodo_Update_RejectsNegativeActualEffort(t *testing.T) {
	eta := decimal.NewFromInt(1)
	todo, err := NewTodo("user-1", "t", "", "New", "", eta, dueDate(), nil)
	require.NoError(t, err)

	err = todo.Update("t", "", "New", "", decimal.NewFromInt(-1), nil)
	require.Error(t, err)
}

func TestTagIDs_ValueAndScan(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()

	v, err := TagIDs{id1, id2}.Value()
	require.NoError(t, err)

	var scanned TagIDs
	require.NoError(t, scanned.Scan(v))
	require.Len(t, scanned, 2)
	assert.True(t, scanned.Contains(id1))
	assert.True(t, scanned.Contains(id2))
	assert.False(t, scanned.Contains(uuid.New()))
}

func TestTagIDs_EmptyValue(t *testing.T) {
	v, err := TagIDs{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var scanned TagIDs
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"), zap.NewNop())
}

func demoIdentity() *model.Identity {
	return &model.Identity{
		ID:       1,
		Username: "demo",
		FullName: "Demo User",
		Balance:  decimal.NewFromInt(10000),
	}
}

func TestStore_RestoreWithoutState(t *testing.T) {
	store := newTestStore(t)

	assert.Nil(t, store.Restore())
	assert.False(t, store.Authenticated())
}

func TestStore_SetThenRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path, zap.NewNop())
	store.Set(demoIdentity())

	// A fresh store over the same file is indistinguishable from one
	// that just completed the same login.
	restored := NewStore(path, zap.NewNop())
	id := restored.Restore()
	require.NotNil(t, id)
	assert.Equal(t, int64(1), id.ID)
	assert.Equal(t, "demo", id.Username)
	assert.Equal(t, "Demo User", id.FullName)
	assert.True(t, id.Balance.Equal(decimal.NewFromInt(10000)))
}

func TestStore_RestoreMalformedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(path, zap.NewNop())
	assert.Nil(t, store.Restore())
	assert.False(t, store.Authenticated())
}

func TestStore_SetBalancePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path, zap.NewNop())
	store.Set(demoIdentity())
	store.SetBalance(decimal.NewFromInt(9000))

	assert.True(t, store.Current().Balance.Equal(decimal.NewFromInt(9000)))
	assert.Equal(t, "demo", store.Current().Username)

	restored := NewStore(path, zap.NewNop())
	id := restored.Restore()
	require.NotNil(t, id)
	assert.True(t, id.Balance.Equal(decimal.NewFromInt(9000)))
}

func TestStore_SetBalanceWithoutSession(t *testing.T) {
	store := newTestStore(t)
	store.SetBalance(decimal.NewFromInt(9000))
	assert.Nil(t, store.Current())
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path, zap.NewNop())
	store.Set(demoIdentity())
	store.Clear()

	assert.Nil(t, store.Current())
	assert.False(t, store.Authenticated())

	// A subsequent restore attempt finds no session.
	restored := NewStore(path, zap.NewNop())
	assert.Nil(t, restored.Restore())
}

package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessiond/sessiond/internal/model"
)

func TestUserStore_CreateAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewUserStore()

	user := model.User{ID: uuid.New(), Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	saved, err := store.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user, saved)

	byName, err := store.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byID, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserStore_Get_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewUserStore()

	_, err := store.GetByUsername(ctx, "ghost")
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = store.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserStore_Create_DuplicateUsername(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewUserStore()

	first := model.User{ID: uuid.New(), Username: "alice", Email: "a@x.com"}
	_, err := store.Create(ctx, first)
	require.NoError(t, err)

	second := model.User{ID: uuid.New(), Username: "alice", Email: "other@x.com"}
	_, err = store.Create(ctx, second)
	require.ErrorIs(t, err, model.ErrUsernameTaken)

	// the original record is untouched
	got, err := store.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestUserStore_Create_UsernameCaseSensitive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewUserStore()

	_, err := store.Create(ctx, model.User{ID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	_, err = store.Create(ctx, model.User{ID: uuid.New(), Username: "Alice"})
	require.NoError(t, err)
}

func TestUserStore_Create_ConcurrentSameUsername(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewUserStore()

	const workers = 100
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, model.User{ID: uuid.New(), Username: "alice"})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, taken int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, model.ErrUsernameTaken):
			taken++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, taken)
}

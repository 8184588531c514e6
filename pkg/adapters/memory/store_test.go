package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunListingStoreContract(t, store)
}

func TestMemoryStore_SaveCopiesInput(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	l := &domain.Listing{Strings: []string{"a", "b"}}
	require.NoError(t, store.Save(ctx, "k", l))
	l.Strings[0] = "mutated"

	got, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Strings)
}

func TestMemoryStore_ListSorted(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	for _, k := range []string{"c", "a", "b"} {
		require.NoError(t, store.Save(ctx, k, &domain.Listing{}))
	}
	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestMemoryLocker_Contract(t *testing.T) {
	ports.RunLockerContract(t, memory.NewLocker())
}

func TestMemoryLocker_UnlockIsIdempotent(t *testing.T) {
	locker := memory.NewLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "k", 0)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
	require.NoError(t, unlock(ctx))

	// A double unlock must not release someone else's hold.
	held, err := locker.Lock(ctx, "k", 0)
	require.NoError(t, err)
	defer func() { _ = held(ctx) }()
	require.NoError(t, unlock(ctx))

	short, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(short, "k", 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

package ports

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunListingStoreContract runs a suite of tests to verify that a ListingStore
// implementation adheres to the defined interface contract.
func RunListingStoreContract(t *testing.T, store ListingStore) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405")

	listing := func(strings ...string) *domain.Listing {
		return &domain.Listing{
			MachineID: "fingerprint",
			Policy:    domain.EnumerationPolicy{Ceiling: 50, AdmitPerRound: 1},
			Strings:   strings,
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		want := listing("", "1", "00")
		require.NoError(t, store.Save(ctx, key, want), "Save should not return error")

		got, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, want.MachineID, got.MachineID)
		assert.Equal(t, want.Policy, got.Policy)
		assert.Equal(t, want.Strings, got.Strings, "the empty string must survive the round trip")
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		longer := listing("", "1", "00", "11")
		longer.Exhausted = true
		require.NoError(t, store.Save(ctx, key, longer))

		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Len(t, got.Strings, 4)
		assert.True(t, got.Exhausted)
	})

	t.Run("Load Returns a Copy", func(t *testing.T) {
		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		got.Strings[0] = "mutated"

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "", again.Strings[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrListingNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key), "Delete should not return error")

		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrListingNotFound, "Load after Delete should return ErrListingNotFound")

		assert.NoError(t, store.Delete(ctx, key), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := key + "-1"
		id2 := key + "-2"
		require.NoError(t, store.Save(ctx, id1, listing("a")))
		require.NoError(t, store.Save(ctx, id2, listing("b")))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, id1)
		assert.Contains(t, keys, id2)
	})
}

// RunLockerContract verifies mutual exclusion and release for a DistributedLocker.
func RunLockerContract(t *testing.T, locker DistributedLocker) {
	ctx := context.Background()
	key := fmt.Sprintf("contract-lock-%d", time.Now().UnixNano())

	t.Run("Lock and Unlock", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, key, 5*time.Second)
		require.NoError(t, err)
		require.NotNil(t, unlock)
		require.NoError(t, unlock(ctx))

		// The key is free again.
		unlock, err = locker.Lock(ctx, key, 5*time.Second)
		require.NoError(t, err)
		require.NoError(t, unlock(ctx))
	})

	t.Run("Contention", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, key, 5*time.Second)
		require.NoError(t, err)

		short, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(short, key, 5*time.Second)
		assert.ErrorIs(t, err, context.DeadlineExceeded, "a held lock must block other holders")

		var acquired atomic.Bool
		done := make(chan struct{})
		go func() {
			defer close(done)
			second, err := locker.Lock(ctx, key, 5*time.Second)
			if err == nil {
				acquired.Store(true)
				_ = second(ctx)
			}
		}()

		require.NoError(t, unlock(ctx))
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("waiter was not released after unlock")
		}
		assert.True(t, acquired.Load())
	})

	t.Run("Independent Keys", func(t *testing.T) {
		a, err := locker.Lock(ctx, key+"-a", 5*time.Second)
		require.NoError(t, err)
		defer func() { _ = a(ctx) }()

		short, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		b, err := locker.Lock(short, key+"-b", 5*time.Second)
		require.NoError(t, err)
		require.NoError(t, b(ctx))
	})
}

package turing_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresMachine(t *testing.T) {
	_, err := turing.New(nil)
	assert.Error(t, err)
}

func TestEngine_Run(t *testing.T) {
	engine, err := turing.New(testutils.EvenZeros(t))
	require.NoError(t, err)
	ctx := context.Background()

	out, err := engine.Run(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictAccepted, out.Verdict)

	out, err = engine.Run(ctx, "0")
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictRejected, out.Verdict)
	assert.Empty(t, out.Trace)

	_, err = engine.Run(ctx, "012")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEngine_RunStepLimit(t *testing.T) {
	engine, err := turing.New(testutils.PrefixLooper(t), turing.WithStepLimit(50))
	require.NoError(t, err)
	ctx := context.Background()

	out, err := engine.Run(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictStepLimitExceeded, out.Verdict)
	assert.Equal(t, uint64(50), out.Steps)

	out, err = engine.Run(ctx, "b", turing.WithRunStepLimit(7))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), out.Steps)

	out, err = engine.Run(ctx, "ab")
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictAccepted, out.Verdict)
}

func TestEngine_RunTrace(t *testing.T) {
	engine, err := turing.New(testutils.EvenZeros(t))
	require.NoError(t, err)

	out, err := engine.Run(context.Background(), "00", turing.WithTrace(0))
	require.NoError(t, err)
	require.Len(t, out.Trace, int(out.Steps))
	assert.Equal(t, domain.State("q_even"), out.Trace[0].State)
	assert.Equal(t, "00", out.Trace[0].Cells)
	assert.Equal(t, domain.State("accept"), out.Trace[len(out.Trace)-1].State)
}

func TestEngine_EnumerateWithoutStore(t *testing.T) {
	engine, err := turing.New(testutils.EvenZeros(t))
	require.NoError(t, err)

	got, err := engine.Enumerate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "1", "00", "11", "001", "010", "100"}, got)

	got, err = engine.Enumerate(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

type enumerationLog struct {
	mu     sync.Mutex
	cached []bool
}

func (l *enumerationLog) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEnumerationEnd: func(_ context.Context, e *domain.EnumerationEvent) {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.cached = append(l.cached, e.Cached)
		},
	}
}

func TestEngine_EnumerateUsesListingStore(t *testing.T) {
	store := memory.NewStore()
	log := &enumerationLog{}
	engine, err := turing.New(testutils.EvenZeros(t),
		turing.WithListingStore(store),
		turing.WithLifecycleHooks(log.hooks()),
	)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := engine.Enumerate(ctx, 5)
	require.NoError(t, err)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{domain.ListingKey(engine.MachineID(), engine.Policy())}, keys)

	again, err := engine.Enumerate(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	prefix, err := engine.Enumerate(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, first[:3], prefix)

	more, err := engine.Enumerate(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, first, more[:5])

	assert.Equal(t, []bool{false, true, true, false}, log.cached)

	l, err := store.Load(ctx, keys[0])
	require.NoError(t, err)
	assert.Len(t, l.Strings, 7)
	assert.False(t, l.Exhausted)
}

func TestEngine_EnumerateExhaustedListingCoversAnyCount(t *testing.T) {
	log := &enumerationLog{}
	engine, err := turing.New(testutils.NoInput(t),
		turing.WithListingStore(memory.NewStore()),
		turing.WithLifecycleHooks(log.hooks()),
	)
	require.NoError(t, err)
	ctx := context.Background()

	got, err := engine.Enumerate(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, got)

	got, err = engine.Enumerate(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, got)
	assert.Equal(t, []bool{false, true}, log.cached)
}

func TestEngine_EnumerateRoundLimitIsNotCached(t *testing.T) {
	store := memory.NewStore()
	engine, err := turing.New(testutils.Palindromes(t),
		turing.WithListingStore(store),
		turing.WithPolicy(domain.EnumerationPolicy{Ceiling: 12, MaxRounds: 300}),
	)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = engine.Enumerate(ctx, 20)
	require.Error(t, err)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestEngine_EnumerateConcurrentCallersShareOneComputation(t *testing.T) {
	var computed atomic.Int32
	hooks := domain.LifecycleHooks{
		OnEnumerationEnd: func(_ context.Context, e *domain.EnumerationEvent) {
			if !e.Cached {
				computed.Add(1)
			}
		},
	}
	engine, err := turing.New(testutils.Palindromes(t),
		turing.WithListingStore(memory.NewStore()),
		turing.WithLocker(memory.NewLocker(), 0),
		turing.WithLifecycleHooks(hooks),
	)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := engine.Enumerate(context.Background(), 9)
			assert.NoError(t, err)
			results[i] = out
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), computed.Load())
	for _, r := range results {
		assert.Equal(t, []string{"", "0", "1", "00", "11", "000", "010", "101", "111"}, r)
	}
}

type failingStore struct{ *memory.Store }

func (failingStore) Save(context.Context, string, *domain.Listing) error {
	return errors.New("disk full")
}

func TestEngine_EnumerateSurvivesStoreFailure(t *testing.T) {
	engine, err := turing.New(testutils.EvenZeros(t), turing.WithListingStore(failingStore{Store: memory.NewStore()}))
	require.NoError(t, err)

	got, err := engine.Enumerate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "1", "00"}, got)
}

func TestEngine_Enumerator(t *testing.T) {
	engine, err := turing.New(testutils.EvenZeros(t))
	require.NoError(t, err)

	en := engine.Enumerator()
	var got []string
	for w, err := range en.All(context.Background()) {
		require.NoError(t, err)
		got = append(got, w)
		if len(got) == 4 {
			break
		}
	}
	assert.Equal(t, []string{"", "1", "00", "11"}, got)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "even-zeros.tm")
	require.NoError(t, os.WriteFile(path, []byte(testutils.EvenZerosTM), 0o644))

	engine, err := turing.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "even-zeros", engine.Name)
	assert.Equal(t, testutils.EvenZeros(t).Fingerprint(), engine.MachineID())

	_, err = turing.Load(filepath.Join(t.TempDir(), "missing.tm"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, turing.Version)
}

package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func encrypted(t *testing.T, cfg middleware.EncryptionConfig, next ports.ListingStore) ports.ListingStore {
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return mw(next)
}

func sampleListing() *domain.Listing {
	return &domain.Listing{
		MachineID: "fingerprint",
		Policy:    domain.EnumerationPolicy{Ceiling: 50, AdmitPerRound: 1},
		Strings:   []string{"", "1", "00"},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	store := encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, memory.NewStore())
	ports.RunListingStoreContract(t, store)
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	secure := encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, underlying)

	want := sampleListing()
	require.NoError(t, secure.Save(ctx, "k", want))

	stored, err := underlying.Load(ctx, "k")
	require.NoError(t, err)
	require.Len(t, stored.Strings, 1)
	assert.True(t, strings.HasPrefix(stored.Strings[0], "enc:v1:"))
	assert.NotContains(t, stored.Strings, "00")
	assert.Equal(t, want.MachineID, stored.MachineID, "metadata stays readable")
	assert.Equal(t, want.Policy, stored.Policy)

	got, err := secure.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, want.Strings, got.Strings)
	assert.Equal(t, []string{"", "1", "00"}, want.Strings, "Save must not modify its argument")
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	oldStore := encrypted(t, middleware.EncryptionConfig{ActiveKey: oldKey}, underlying)
	require.NoError(t, oldStore.Save(ctx, "k", sampleListing()))

	newStore := encrypted(t, middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	}, underlying)

	got, err := newStore.Load(ctx, "k")
	require.NoError(t, err, "fallback key should decrypt old listings")
	assert.Equal(t, []string{"", "1", "00"}, got.Strings)

	require.NoError(t, newStore.Save(ctx, "k", got))
	_, err = oldStore.Load(ctx, "k")
	assert.Error(t, err, "the old key alone cannot read listings sealed with the new key")
}

func TestEncryptionMiddleware_PlainListing(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	require.NoError(t, underlying.Save(ctx, "plain", sampleListing()))

	secure := encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, underlying)
	_, err := secure.Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	assert.Error(t, err)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.Error(t, err)
}

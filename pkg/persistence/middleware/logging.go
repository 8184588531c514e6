package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ListingStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store operation at debug level and failures at warn.
// A missing listing is a normal cache miss and is logged at debug.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return func(next ports.ListingStore) ports.ListingStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, key string, start time.Time, err error, attrs ...any) {
	attrs = append(attrs, "op", op, "key", key, "duration", time.Since(start))
	switch {
	case err == nil || errors.Is(err, domain.ErrListingNotFound):
		m.logger.DebugContext(ctx, "listing store", append(attrs, "error", err)...)
	default:
		m.logger.WarnContext(ctx, "listing store failed", append(attrs, "error", err)...)
	}
}

func (m *loggingMiddleware) Save(ctx context.Context, key string, listing *domain.Listing) error {
	start := time.Now()
	err := m.next.Save(ctx, key, listing)
	m.log(ctx, "save", key, start, err, "strings", len(listing.Strings))
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, key string) (*domain.Listing, error) {
	start := time.Now()
	l, err := m.next.Load(ctx, key)
	m.log(ctx, "load", key, start, err)
	return l, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := m.next.Delete(ctx, key)
	m.log(ctx, "delete", key, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := m.next.List(ctx)
	m.log(ctx, "list", "*", start, err, "count", len(keys))
	return keys, err
}

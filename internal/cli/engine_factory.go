package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/adapters/file"
	"github.com/aretw0/turing/internal/adapters/redis"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
)

// Cache is an opened listing store with its locker.
type Cache struct {
	Store  ports.ListingStore
	Locker ports.DistributedLocker
	closer io.Closer
}

// Close releases backend connections.
func (c *Cache) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// OpenCache builds the listing store selected by cfg. The none backend
// returns a nil *Cache. With encryption keys configured the stored strings
// are sealed with the first key and read with any of them.
func OpenCache(cfg CacheConfig) (*Cache, error) {
	cache, err := openBackend(cfg)
	if err != nil || cache == nil || len(cfg.EncryptionKeys) == 0 {
		return cache, err
	}

	enc, err := encryptionMiddleware(cfg.EncryptionKeys)
	if err != nil {
		_ = cache.Close()
		return nil, err
	}
	cache.Store = enc(cache.Store)
	return cache, nil
}

func encryptionMiddleware(encoded []string) (middleware.Middleware, error) {
	keys := make([][]byte, 0, len(encoded))
	for i, k := range encoded {
		key, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return nil, fmt.Errorf("invalid cache.encryption_keys[%d]: %w", i, err)
		}
		keys = append(keys, key)
	}
	return middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    keys[0],
		FallbackKeys: keys[1:],
	})
}

func openBackend(cfg CacheConfig) (*Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "none":
		return nil, nil
	case "memory":
		return &Cache{Store: memory.NewStore(), Locker: memory.NewLocker()}, nil
	case "file":
		// Locking a directory across processes is out of reach without a
		// shared backend; the in-process locker still guards `turing serve`.
		return &Cache{Store: file.New(cfg.Dir), Locker: memory.NewLocker()}, nil
	case "redis":
		if cfg.URL == "" {
			return nil, errors.New("cache.url is required for the redis backend")
		}
		ttl, err := cfg.ttl()
		if err != nil {
			return nil, err
		}
		opts := []redis.Option{redis.WithTTL(ttl)}
		if cfg.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Prefix))
		}
		store, err := redis.Open(cfg.URL, opts...)
		if err != nil {
			return nil, err
		}
		lockPrefix := cfg.Prefix
		if lockPrefix == "" {
			lockPrefix = "turing:"
		}
		return &Cache{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), lockPrefix),
			closer: store,
		}, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q (expected none, memory, file or redis)", cfg.Backend)
}

// NewEngine loads the machine at path and wires it with cfg.
func NewEngine(path string, cfg Config, logger *slog.Logger, cache *Cache, extra ...turing.Option) (*turing.Engine, error) {
	if path == "" {
		return nil, errors.New("a machine file is required (-f)")
	}
	opts := []turing.Option{
		turing.WithLogger(logger),
		turing.WithPolicy(cfg.Enumerate),
		turing.WithStepLimit(cfg.Run.StepLimit),
	}
	if cache != nil {
		lockTTL, err := cfg.Cache.lockTTL()
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			turing.WithListingStore(middleware.NewLoggingMiddleware(logger)(cache.Store)),
			turing.WithLocker(cache.Locker, lockTTL),
		)
	}
	opts = append(opts, extra...)

	engine, err := turing.Load(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

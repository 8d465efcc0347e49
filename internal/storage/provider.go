package storage

import (
	"context"
	"fmt"
	"meetup/internal/providers"
	"meetup/internal/structures"
)

// NewStoreProvider opens the store selected by storage.driver and wraps it
// with metrics. The returned cleanup closes the store.
func NewStoreProvider(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (KeyValueStore, func(), error) {
	var (
		inner KeyValueStore
		err   error
	)

	switch conf.Storage.Driver {
	case DriverMemory:
		inner = NewMemoryStore()
	case DriverFile:
		compressor, cerr := NewSnapshotCodec()
		if cerr != nil {
			return nil, nil, cerr
		}
		inner, err = NewFileStore(conf.Storage.FilePath, compressor, logger)
		if err != nil {
			compressor.Close()
		}
	case DriverRedis:
		inner, err = NewRedisStore(context.Background(), RedisOptions{
			Addrs:    conf.Storage.Redis.Addrs,
			Password: conf.Storage.Redis.Password,
			Prefix:   conf.Storage.Redis.Prefix,
		})
	case DriverSQLite:
		inner, err = NewSQLiteStore(conf.Storage.SQLitePath)
	default:
		err = fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", conf.Storage.Driver, err)
	}

	logger.Infof(providers.TypeApp, "Using %s storage", conf.Storage.Driver)

	store := NewInstrumentedStore(inner, metrics, logger)
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Closing store: %s", err)
		}
	}
	return store, cleanup, nil
}

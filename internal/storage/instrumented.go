package storage

import (
	"meetup/internal/providers"
	"time"
)

// InstrumentedStore records the duration and failures of every store call.
type InstrumentedStore struct {
	inner   KeyValueStore
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewInstrumentedStore(inner KeyValueStore, metrics providers.MetricsProviderInterface, logger providers.Logger) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, metrics: metrics, logger: logger}
}

func (s *InstrumentedStore) Get(key string) ([]byte, bool, error) {
	start := time.Now()
	val, ok, err := s.inner.Get(key)
	s.metrics.ObservePersistenceDuration("get", time.Since(start))
	if err != nil {
		s.metrics.IncPersistenceFailures("get")
		s.logger.Errorf(providers.TypeStore, "Get %s failed: %s", key, err)
	}
	return val, ok, err
}

func (s *InstrumentedStore) Set(key string, value []byte) error {
	start := time.Now()
	err := s.inner.Set(key, value)
	s.metrics.ObservePersistenceDuration("set", time.Since(start))
	if err != nil {
		s.metrics.IncPersistenceFailures("set")
		s.logger.Errorf(providers.TypeStore, "Set %s failed: %s", key, err)
	}
	return err
}

func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}

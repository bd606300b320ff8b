package store

import (
	"time"

	"SwingSentinel/internal/model"
)

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) LoadCloses(_ string) ([]model.PricePoint, time.Time, error) {
	return nil, time.Time{}, nil
}
func (n *NoopStore) SaveCloses(_ string, _ []model.PricePoint) error { return nil }
func (n *NoopStore) Close() error                                      { return nil }

package store

import (
	"time"

	"SwingSentinel/internal/model"
)

// Store caches fetched daily closes per symbol so a report run does not hit
// the data source more than once a day.
type Store interface {
	// LoadCloses returns the cached closes in ascending date order and the
	// time they were last refreshed. A symbol with no cache returns no points
	// and a zero time.
	LoadCloses(symbol string) ([]model.PricePoint, time.Time, error)
	// SaveCloses upserts points and marks the symbol as refreshed.
	SaveCloses(symbol string, points []model.PricePoint) error
	Close() error
}

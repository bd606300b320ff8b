package model

import "time"

// LevelKind distinguishes support levels from resistance levels.
type LevelKind string

const (
	Support    LevelKind = "SUPPORT"
	Resistance LevelKind = "RESISTANCE"
)

// ExtremumFlag marks whether a date is a local minimum and/or maximum of its window.
// Both are true only when every close in the window is equal.
type ExtremumFlag struct {
	IsLocalMin bool
	IsLocalMax bool
}

// Level is a candidate support or resistance price.
type Level struct {
	Date  time.Time
	Price float64
	Kind  LevelKind
}

// RankedLevel is a Level with its recency rank among all candidates of the same kind.
// Rank 1 is the most recent; tied candidates share the mean rank of their group.
type RankedLevel struct {
	Level
	DaysAgo int
	Rank    float64
}

// DisplayRank returns the rank truncated to an integer.
func (r RankedLevel) DisplayRank() int { return int(r.Rank) }

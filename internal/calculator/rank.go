package calculator

import (
	"fmt"
	"sort"
	"time"

	"SwingSentinel/internal/model"
)

// DefaultTopK is how many of the most recent levels of each kind are kept.
const DefaultTopK = 2

// DaysBetween returns the number of calendar days from `from` to `to`.
func DaysBetween(from, to time.Time) int {
	return int(model.DateOf(to).Sub(model.DateOf(from)).Hours() / 24)
}

// RankLevels ranks the levels of the given kind by recency relative to asOf.
// Rank 1 is the smallest DaysAgo. Levels with equal DaysAgo share the mean of
// the ranks they occupy. The result keeps the input order.
func RankLevels(levels []model.Level, asOf time.Time, kind model.LevelKind) ([]model.RankedLevel, error) {
	var ranked []model.RankedLevel
	for _, l := range levels {
		if l.Kind != kind {
			continue
		}
		days := DaysBetween(l.Date, asOf)
		if days < 0 {
			return nil, fmt.Errorf("%w: level date %s is after %s", ErrInvalidInput,
				l.Date.Format("2006-01-02"), asOf.Format("2006-01-02"))
		}
		ranked = append(ranked, model.RankedLevel{Level: l, DaysAgo: days})
	}

	order := make([]int, len(ranked))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ranked[order[a]].DaysAgo < ranked[order[b]].DaysAgo
	})

	for start := 0; start < len(order); {
		end := start + 1
		for end < len(order) && ranked[order[end]].DaysAgo == ranked[order[start]].DaysAgo {
			end++
		}
		// positions start..end-1 hold ranks start+1..end
		mean := float64(start+1+end) / 2
		for _, idx := range order[start:end] {
			ranked[idx].Rank = mean
		}
		start = end
	}
	return ranked, nil
}

// SelectTop keeps every level whose truncated rank is at most k. Ties at the
// boundary are all admitted, so the result may hold more than k levels.
func SelectTop(ranked []model.RankedLevel, k int) []model.RankedLevel {
	var top []model.RankedLevel
	for _, r := range ranked {
		if r.DisplayRank() <= k {
			top = append(top, r)
		}
	}
	return top
}

package calculator

import (
	"fmt"
	"time"

	"SwingSentinel/internal/model"
)

// FindCrossovers returns every index i >= 1 where MACD moves from at/below
// the signal line to strictly above it. Index 0 has no prior bar and never
// qualifies.
func FindCrossovers(macd, signal []float64) ([]int, error) {
	if len(macd) != len(signal) {
		return nil, fmt.Errorf("%w: macd has %d values, signal has %d", ErrInvalidInput, len(macd), len(signal))
	}
	var idx []int
	for i := 1; i < len(macd); i++ {
		if macd[i] > signal[i] && macd[i-1] <= signal[i-1] {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

// DetectLastCrossover returns the most recent bullish crossover. The bool is
// false when no crossover exists anywhere in the series.
func DetectLastCrossover(dates []time.Time, macd, signal []float64) (model.CrossoverEvent, bool, error) {
	if len(dates) != len(macd) {
		return model.CrossoverEvent{}, false,
			fmt.Errorf("%w: %d dates for %d macd values", ErrInvalidInput, len(dates), len(macd))
	}
	idx, err := FindCrossovers(macd, signal)
	if err != nil {
		return model.CrossoverEvent{}, false, err
	}
	if len(idx) == 0 {
		return model.CrossoverEvent{}, false, nil
	}
	last := idx[len(idx)-1]
	return model.CrossoverEvent{Index: last, Date: dates[last]}, true, nil
}

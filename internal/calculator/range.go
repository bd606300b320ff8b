package calculator

import (
	"fmt"
	"math"

	"SwingSentinel/internal/model"
)

// DefaultWindowSize is the number of daily bars in the extrema window.
const DefaultWindowSize = 45

// windowBounds returns the inclusive index range of the centered window around
// i, clipped to the series. The window spans size/2 bars on each side.
func windowBounds(i, n, size int) (lo, hi int) {
	half := size / 2
	lo = i - half
	if lo < 0 {
		lo = 0
	}
	hi = i + half
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

// windowRange scans closes[lo..hi] and returns the high and low.
func windowRange(closes []float64, lo, hi int) (high, low float64) {
	high = math.Inf(-1)
	low = math.Inf(1)
	for j := lo; j <= hi; j++ {
		if closes[j] > high {
			high = closes[j]
		}
		if closes[j] < low {
			low = closes[j]
		}
	}
	return high, low
}

// DetectExtrema flags every bar whose close equals the minimum or maximum of
// its centered window. Windows near either end of the series are clipped
// rather than discarded, and equal prices on a plateau all qualify.
func DetectExtrema(closes []float64, windowSize int) ([]model.ExtremumFlag, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidInput, windowSize)
	}
	n := len(closes)
	flags := make([]model.ExtremumFlag, n)
	for i := 0; i < n; i++ {
		lo, hi := windowBounds(i, n, windowSize)
		high, low := windowRange(closes, lo, hi)
		flags[i] = model.ExtremumFlag{
			IsLocalMin: closes[i] == low,
			IsLocalMax: closes[i] == high,
		}
	}
	return flags, nil
}

// DetectLevels returns a support Level for every local minimum and a
// resistance Level for every local maximum, in date order.
func DetectLevels(series model.PriceSeries, windowSize int) ([]model.Level, error) {
	flags, err := DetectExtrema(series.Closes(), windowSize)
	if err != nil {
		return nil, err
	}
	var levels []model.Level
	for i, f := range flags {
		p := series.Points[i]
		if f.IsLocalMin {
			levels = append(levels, model.Level{Date: p.Date, Price: p.Close, Kind: model.Support})
		}
		if f.IsLocalMax {
			levels = append(levels, model.Level{Date: p.Date, Price: p.Close, Kind: model.Resistance})
		}
	}
	return levels, nil
}

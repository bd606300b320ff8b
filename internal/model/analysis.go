package model

import "time"

// IndicatorSeries holds MACD values aligned 1:1 with the input series.
type IndicatorSeries struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// CrossoverEvent marks a bar where MACD moved from at/below the signal line to above it.
type CrossoverEvent struct {
	Index int
	Date  time.Time
}

// Analysis is the complete result of one pipeline run over a PriceSeries.
type Analysis struct {
	Symbol string
	AsOf   time.Time
	Series PriceSeries

	Indicators IndicatorSeries

	// All candidates, ranked over their own kind.
	Supports    []RankedLevel
	Resistances []RankedLevel

	TopSupports    []RankedLevel
	TopResistances []RankedLevel

	LastCrossover *CrossoverEvent // nil when MACD never crossed above signal

	// InsufficientHistory is advisory: the series is shorter than the extrema
	// window, so every window was clipped.
	InsufficientHistory bool
}

// LastClose returns the close at AsOf.
func (a *Analysis) LastClose() float64 {
	return a.Series.Last().Close
}

// LastIndicators returns MACD, signal and histogram at AsOf.
func (a *Analysis) LastIndicators() (macd, signal, hist float64) {
	n := len(a.Indicators.MACD) - 1
	return a.Indicators.MACD[n], a.Indicators.Signal[n], a.Indicators.Histogram[n]
}

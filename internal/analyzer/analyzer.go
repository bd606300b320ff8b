package analyzer

import (
	"fmt"

	"SwingSentinel/internal/calculator"
	"SwingSentinel/internal/model"
)

// Options controls the extrema window and the number of levels kept per kind.
type Options struct {
	WindowSize int
	TopK       int
}

// DefaultOptions returns the fixed production settings.
func DefaultOptions() Options {
	return Options{WindowSize: calculator.DefaultWindowSize, TopK: calculator.DefaultTopK}
}

// Analyze runs the full pipeline with the default options.
func Analyze(series model.PriceSeries) (*model.Analysis, error) {
	return AnalyzeWith(series, DefaultOptions())
}

// AnalyzeWith validates the series and derives MACD, ranked support and
// resistance levels and the last bullish crossover. The most recent date of
// the series is the as-of date for ranking. Invalid input yields no analysis.
func AnalyzeWith(series model.PriceSeries, opts Options) (*model.Analysis, error) {
	if err := calculator.ValidateSeries(series); err != nil {
		return nil, err
	}
	if opts.TopK < 1 {
		return nil, fmt.Errorf("%w: top k must be positive, got %d", calculator.ErrInvalidInput, opts.TopK)
	}
	asOf := series.Last().Date

	// Step a: momentum
	ind, err := calculator.CalculateMACD(series.Closes())
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}

	// Step b: candidates
	levels, err := calculator.DetectLevels(series, opts.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("detect levels: %w", err)
	}

	// Step c: recency ranking
	supports, err := calculator.RankLevels(levels, asOf, model.Support)
	if err != nil {
		return nil, fmt.Errorf("rank supports: %w", err)
	}
	resistances, err := calculator.RankLevels(levels, asOf, model.Resistance)
	if err != nil {
		return nil, fmt.Errorf("rank resistances: %w", err)
	}

	a := &model.Analysis{
		Symbol:              series.Symbol,
		AsOf:                asOf,
		Series:              series,
		Indicators:          ind,
		Supports:            supports,
		Resistances:         resistances,
		TopSupports:         calculator.SelectTop(supports, opts.TopK),
		TopResistances:      calculator.SelectTop(resistances, opts.TopK),
		InsufficientHistory: series.Len() < opts.WindowSize,
	}

	// Step d: last bullish crossover
	ev, ok, err := calculator.DetectLastCrossover(series.Dates(), ind.MACD, ind.Signal)
	if err != nil {
		return nil, fmt.Errorf("crossover: %w", err)
	}
	if ok {
		a.LastCrossover = &ev
	}

	return a, nil
}

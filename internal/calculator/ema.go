package calculator

import (
	"fmt"

	"SwingSentinel/internal/model"
)

// Fixed MACD spans.
const (
	FastSpan   = 12
	SlowSpan   = 26
	SignalSpan = 9
)

// CalculateEMA returns the exponential moving average of values over span.
// The average is seeded with the first value, so every output is defined:
// ema[0] = v[0], ema[i] = a*v[i] + (1-a)*ema[i-1] with a = 2/(span+1).
func CalculateEMA(values []float64, span int) ([]float64, error) {
	if span < 1 {
		return nil, fmt.Errorf("%w: span must be positive, got %d", ErrInvalidInput, span)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values for EMA", ErrInvalidInput)
	}
	alpha := 2.0 / float64(span+1)
	ema := make([]float64, len(values))
	ema[0] = values[0]
	for i := 1; i < len(values); i++ {
		ema[i] = alpha*values[i] + (1-alpha)*ema[i-1]
	}
	return ema, nil
}

// CalculateMACD computes the MACD line, its signal line and the histogram
// with the fixed 12/26/9 spans. All three series have the input's length.
func CalculateMACD(closes []float64) (model.IndicatorSeries, error) {
	if len(closes) == 0 {
		return model.IndicatorSeries{}, fmt.Errorf("%w: no closes for MACD", ErrInvalidInput)
	}
	fast, err := CalculateEMA(closes, FastSpan)
	if err != nil {
		return model.IndicatorSeries{}, err
	}
	slow, err := CalculateEMA(closes, SlowSpan)
	if err != nil {
		return model.IndicatorSeries{}, err
	}

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}
	signal, err := CalculateEMA(macd, SignalSpan)
	if err != nil {
		return model.IndicatorSeries{}, err
	}
	hist := make([]float64, len(closes))
	for i := range macd {
		hist[i] = macd[i] - signal[i]
	}

	return model.IndicatorSeries{MACD: macd, Signal: signal, Histogram: hist}, nil
}

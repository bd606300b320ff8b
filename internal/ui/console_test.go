package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"SwingSentinel/internal/model"
)

func TestPrintAnalysis(t *testing.T) {
	color.NoColor = true
	d := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	a := &model.Analysis{
		Symbol: "AAPL",
		AsOf:   d,
		Series: model.PriceSeries{Points: []model.PricePoint{{Date: d, Close: 194.5}}},
		Indicators: model.IndicatorSeries{
			MACD: []float64{0.4}, Signal: []float64{0.1}, Histogram: []float64{0.3},
		},
		TopSupports: []model.RankedLevel{
			{Level: model.Level{Date: d.AddDate(0, 0, -9), Price: 180.25, Kind: model.Support}, DaysAgo: 9, Rank: 1},
		},
		InsufficientHistory: true,
	}

	var buf bytes.Buffer
	(&ConsoleUI{Out: &buf}).PrintAnalysis(a)
	out := buf.String()

	assert.Contains(t, out, "AAPL | as of 2024-06-05 | close 194.50")
	assert.Contains(t, out, "Hist +0.300")
	assert.Contains(t, out, "Resistance\n  none\n")
	assert.Contains(t, out, "[1] 180.25  2024-05-27")
	assert.Contains(t, out, "MACD crossover: none")
	assert.Contains(t, out, "warning: 1 bars")
}

package collector

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"SwingSentinel/internal/model"
	"SwingSentinel/internal/store"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	End       time.Time // last bar date, defaults to today
	DailyData []model.OHLCV
	Calls     int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) ([]model.OHLCV, error) {
	m.Calls++
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	end := m.End
	if end.IsZero() {
		end = time.Now()
	}
	return generateMockBars(m.Price, days, end), nil
}

// generateMockBars builds count weekday bars ending at end, swinging around basePrice.
func generateMockBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	d := model.DateOf(end)
	for i := count - 1; i >= 0; i-- {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, -1)
		}
		p := basePrice * (1 + 0.08*math.Sin(float64(i)/8) + float64(i-count/2)*0.0005)
		bars[i] = model.OHLCV{
			Time:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
		d = d.AddDate(0, 0, -1)
	}
	return bars
}

// Collector fetches daily bars for one symbol and turns them into a PriceSeries,
// going through the store so the source is queried at most once per day.
type Collector struct {
	Fetcher Fetcher
	Store   store.Store
	Symbol  string
	Days    int

	now func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, st store.Store, symbol string, days int) *Collector {
	if st == nil {
		st = store.NewNoopStore()
	}
	return &Collector{Fetcher: fetcher, Store: st, Symbol: symbol, Days: days, now: time.Now}
}

// Collect returns the most recent Days closes of the symbol.
func (c *Collector) Collect(ctx context.Context) (model.PriceSeries, error) {
	cached, refreshed, err := c.Store.LoadCloses(c.Symbol)
	if err != nil {
		log.Printf("[WARN] load cached closes for %s: %v", c.Symbol, err)
	} else if len(cached) > 0 && sameDay(refreshed, c.now()) {
		log.Printf("[INFO] using %d cached closes for %s", len(cached), c.Symbol)
		return model.PriceSeries{Symbol: c.Symbol, Points: tail(cached, c.Days)}, nil
	}

	bars, err := c.Fetcher.FetchDailyBars(ctx, c.Symbol, c.Days)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("fetch daily bars: %w", err)
	}
	points := toPoints(bars)
	if len(points) == 0 {
		return model.PriceSeries{}, fmt.Errorf("fetch daily bars: %s returned no usable closes for %s", c.Fetcher.Name(), c.Symbol)
	}

	if err := c.Store.SaveCloses(c.Symbol, points); err != nil {
		log.Printf("[WARN] cache closes for %s: %v", c.Symbol, err)
	}
	return model.PriceSeries{Symbol: c.Symbol, Points: tail(points, c.Days)}, nil
}

// toPoints normalizes bars to one close per UTC date in ascending order.
// Bars without a positive close are dropped; for repeated dates the later bar wins.
func toPoints(bars []model.OHLCV) []model.PricePoint {
	sorted := make([]model.OHLCV, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	points := make([]model.PricePoint, 0, len(sorted))
	for _, b := range sorted {
		if !(b.Close > 0) || math.IsInf(b.Close, 0) {
			continue
		}
		p := model.PricePoint{Date: model.DateOf(b.Time), Close: b.Close}
		if n := len(points); n > 0 && points[n-1].Date.Equal(p.Date) {
			log.Printf("[WARN] duplicate bar for %s, keeping the later one", p.Date.Format("2006-01-02"))
			points[n-1] = p
			continue
		}
		points = append(points, p)
	}
	return points
}

func tail(points []model.PricePoint, n int) []model.PricePoint {
	if n > 0 && len(points) > n {
		return points[len(points)-n:]
	}
	return points
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

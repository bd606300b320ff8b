package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingSentinel/internal/calculator"
	"SwingSentinel/internal/model"
)

type memStore struct {
	points    map[string][]model.PricePoint
	refreshed map[string]time.Time
	now       time.Time
}

func newMemStore(now time.Time) *memStore {
	return &memStore{points: map[string][]model.PricePoint{}, refreshed: map[string]time.Time{}, now: now}
}

func (m *memStore) LoadCloses(symbol string) ([]model.PricePoint, time.Time, error) {
	return m.points[symbol], m.refreshed[symbol], nil
}

func (m *memStore) SaveCloses(symbol string, points []model.PricePoint) error {
	m.points[symbol] = points
	m.refreshed[symbol] = m.now
	return nil
}

func (m *memStore) Close() error { return nil }

const yahooBody = `{"chart":{"result":[{"timestamp":[1717162200,1716989400,1717075800,1717421400],
"indicators":{"quote":[{"open":[191.4,190.1,null,194.0],"high":[192.6,191.0,null,194.9],
"low":[190.2,189.5,null,193.1],"close":[192.25,190.29,null,194.03],"volume":[75158300,53068000,null,47471400]}]}}],
"error":null}}`

func TestYahooFetcher_FetchDailyBars(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(yahooBody))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	bars, err := f.FetchDailyBars(context.Background(), "SPX500", 252)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/^GSPC", gotPath)
	assert.Equal(t, "interval=1d&range=1y", gotQuery)
	require.Len(t, bars, 3) // null bar skipped
	assert.Equal(t, 190.29, bars[0].Close)
	assert.Equal(t, 192.25, bars[1].Close)
	assert.Equal(t, 194.03, bars[2].Close)
}

func TestYahooFetcher_NullFields(t *testing.T) {
	body := `{"chart":{"result":[{"timestamp":[1716989400,1717075800,1717162200],
"indicators":{"quote":[{"open":[190.1,191.0,null],"high":[191.0,192.2,null],
"low":[189.5,190.7,null],"close":[190.29,null,192.25],"volume":[53068000,48000000,null]}]}}],
"error":null}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	bars, err := f.FetchDailyBars(context.Background(), "AAPL", 30)
	require.NoError(t, err)

	// a bar without a close is dropped even when the other fields are set
	require.Len(t, bars, 2)
	assert.Equal(t, 190.29, bars[0].Close)
	// a close without open/high/low/volume is kept
	assert.Equal(t, 192.25, bars[1].Close)
	assert.Zero(t, bars[1].Open)
	assert.Zero(t, bars[1].Volume)
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchDailyBars(context.Background(), "NOPE", 252)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delisted")
}

func TestYahooRange(t *testing.T) {
	assert.Equal(t, "1mo", yahooRange(20))
	assert.Equal(t, "6mo", yahooRange(100))
	assert.Equal(t, "1y", yahooRange(252))
	assert.Equal(t, "2y", yahooRange(300))
	assert.Equal(t, "5y", yahooRange(1000))
}

func TestVsTraderFetcher_FetchDailyBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		w.Write([]byte(`[{"timestamp":1717162200,"close":192.25},{"timestamp":1716989400,"close":190.29}]`))
	}))
	defer srv.Close()

	f := NewVsTraderFetcher(srv.URL, "secret", "")
	bars, err := f.FetchDailyBars(context.Background(), "AAPL", 10)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.True(t, bars[0].Time.Before(bars[1].Time))
}

func TestToPoints_Normalizes(t *testing.T) {
	d := time.Date(2024, 5, 29, 13, 30, 0, 0, time.UTC)
	bars := []model.OHLCV{
		{Time: d.AddDate(0, 0, 1), Close: 11},
		{Time: d, Close: 10},
		{Time: d.AddDate(0, 0, 1).Add(2 * time.Hour), Close: 11.5}, // same date, later
		{Time: d.AddDate(0, 0, 2), Close: 0},
		{Time: d.AddDate(0, 0, 3), Close: 12},
	}
	points := toPoints(bars)
	require.Len(t, points, 3)
	assert.Equal(t, model.DateOf(d), points[0].Date)
	assert.Equal(t, 11.5, points[1].Close)
	assert.Equal(t, 12.0, points[2].Close)

	require.NoError(t, calculator.ValidateSeries(model.PriceSeries{Points: points}))
}

func TestCollector_UsesCacheSameDay(t *testing.T) {
	now := time.Date(2024, 6, 3, 22, 30, 0, 0, time.UTC)
	st := newMemStore(now)
	mock := &MockFetcher{Price: 100, End: now}
	col := NewCollector(mock, st, "AAPL", 60)
	col.now = func() time.Time { return now }

	first, err := col.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 60, first.Len())
	assert.Equal(t, "AAPL", first.Symbol)
	require.NoError(t, calculator.ValidateSeries(first))

	second, err := col.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, mock.Calls)
	assert.Equal(t, first, second)

	col.now = func() time.Time { return now.AddDate(0, 0, 1) }
	_, err = col.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, mock.Calls)
}

func TestCollector_NoUsableData(t *testing.T) {
	mock := &MockFetcher{DailyData: []model.OHLCV{{Time: time.Now(), Close: 0}}}
	col := NewCollector(mock, nil, "AAPL", 10)
	_, err := col.Collect(context.Background())
	assert.Error(t, err)
}

func TestGenerateMockBars_Weekdays(t *testing.T) {
	end := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC) // Sunday
	bars := generateMockBars(100, 30, end)
	require.Len(t, bars, 30)
	for i, b := range bars {
		assert.NotEqual(t, time.Saturday, b.Time.Weekday())
		assert.NotEqual(t, time.Sunday, b.Time.Weekday())
		if i > 0 {
			assert.True(t, b.Time.After(bars[i-1].Time))
		}
	}
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), bars[29].Time)
}

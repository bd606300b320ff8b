package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingSentinel/internal/model"
)

func sampleAnalysis() *model.Analysis {
	d := func(day int) time.Time { return time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC) }
	series := model.PriceSeries{Symbol: "AAPL", Points: []model.PricePoint{
		{Date: d(3), Close: 190}, {Date: d(4), Close: 188}, {Date: d(5), Close: 194.5},
	}}
	return &model.Analysis{
		Symbol: "AAPL",
		AsOf:   d(5),
		Series: series,
		Indicators: model.IndicatorSeries{
			MACD:      []float64{0, -0.1, 0.4},
			Signal:    []float64{0, -0.02, 0.06},
			Histogram: []float64{0, -0.08, 0.34},
		},
		TopSupports: []model.RankedLevel{
			{Level: model.Level{Date: d(4), Price: 188, Kind: model.Support}, DaysAgo: 1, Rank: 1},
		},
		TopResistances: []model.RankedLevel{
			{Level: model.Level{Date: d(3), Price: 190, Kind: model.Resistance}, DaysAgo: 2, Rank: 2.5},
			{Level: model.Level{Date: d(5), Price: 194.5, Kind: model.Resistance}, DaysAgo: 0, Rank: 1},
		},
		LastCrossover:       &model.CrossoverEvent{Index: 2, Date: d(5)},
		InsufficientHistory: true,
	}
}

func TestFormatReport(t *testing.T) {
	report := FormatReport(sampleAnalysis())

	assert.Contains(t, report, "AAPL swing report</b> | 2024-06-05")
	assert.Contains(t, report, "Close: 194.50")
	assert.Contains(t, report, "MACD: +0.400 | Signal: +0.060 | Hist: +0.340 (MACD above signal)")
	assert.Contains(t, report, "#2 190.00 (2024-06-03, 2d ago)")
	assert.Contains(t, report, "#1 188.00 (2024-06-04, 1d ago)")
	assert.Contains(t, report, "Last MACD crossover:</b> 2024-06-05 (0 days ago)")
	assert.Contains(t, report, "Only 3 bars of history")
}

func TestFormatReport_NoCrossoverNoLevels(t *testing.T) {
	a := sampleAnalysis()
	a.LastCrossover = nil
	a.TopSupports = nil
	a.InsufficientHistory = false

	report := FormatReport(a)
	assert.Contains(t, report, "none in range")
	assert.Contains(t, report, "Support:</b>\n  none\n")
	assert.NotContains(t, report, "clipped windows")
}

func TestTelegramNotifier_SendWithRetry(t *testing.T) {
	var calls int
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/bottoken/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("token", "42", "")
	tn.APIBase = srv.URL
	require.NoError(t, tn.SendWithRetry(context.Background(), "hello", 1))
	assert.Equal(t, 2, calls)
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestTelegramNotifier_SendWithRetryExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("token", "42", "")
	tn.APIBase = srv.URL
	err := tn.SendWithRetry(context.Background(), "hello", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retries exhausted")
}

func TestTelegramNotifier_PollOnce(t *testing.T) {
	var mu sync.Mutex
	var sent []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			assert.Equal(t, "7", r.URL.Query().Get("offset"))
			w.Write([]byte(`{"ok":true,"result":[
				{"update_id":7,"message":{"text":" /report ","chat":{"id":42}}},
				{"update_id":8,"message":{"text":"/report","chat":{"id":99}}},
				{"update_id":9}
			]}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var p map[string]string
			json.NewDecoder(r.Body).Decode(&p)
			mu.Lock()
			sent = append(sent, p["text"])
			mu.Unlock()
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("token", "42", "")
	tn.APIBase = srv.URL

	var commands []string
	next, err := tn.pollOnce(context.Background(), srv.Client(), 7, func(_ context.Context, cmd string) string {
		commands = append(commands, cmd)
		return "reply to " + cmd
	})
	require.NoError(t, err)
	assert.Equal(t, 10, next)
	assert.Equal(t, []string{"/report"}, commands)
	assert.Equal(t, []string{"reply to /report"}, sent)
}

func TestFormatReport_EscapesSymbol(t *testing.T) {
	a := sampleAnalysis()
	a.Symbol = "M&M<X>"
	report := FormatReport(a)
	assert.Contains(t, report, "<b>M&amp;M&lt;X&gt; swing report</b>")
	assert.NotContains(t, report, "M&M<X>")
}

func TestFormatError_EscapesUpstreamBody(t *testing.T) {
	err := errors.New(`yahoo: status 502, body: <html>Bad Gateway & retry</html>`)
	msg := FormatError("Daily report failed", err)
	assert.Equal(t, "❌ Daily report failed: yahoo: status 502, body: &lt;html&gt;Bad Gateway &amp; retry&lt;/html&gt;", msg)
}

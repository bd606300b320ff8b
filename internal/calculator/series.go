package calculator

import (
	"errors"
	"fmt"
	"math"

	"SwingSentinel/internal/model"
)

// ErrInvalidInput is returned when a series or parameter cannot be analyzed.
// Callers should test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ValidateSeries checks that the series is non-empty, strictly increasing by
// calendar date and carries finite closes.
func ValidateSeries(series model.PriceSeries) error {
	if len(series.Points) == 0 {
		return fmt.Errorf("%w: empty price series", ErrInvalidInput)
	}
	for i, p := range series.Points {
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			return fmt.Errorf("%w: non-finite close at %s", ErrInvalidInput, p.Date.Format("2006-01-02"))
		}
		if i == 0 {
			continue
		}
		// dates compare by calendar day, time of day is ignored
		cur := model.DateOf(p.Date)
		prev := model.DateOf(series.Points[i-1].Date)
		if cur.Equal(prev) {
			return fmt.Errorf("%w: duplicate date %s", ErrInvalidInput, p.Date.Format("2006-01-02"))
		}
		if cur.Before(prev) {
			return fmt.Errorf("%w: date %s is not after %s", ErrInvalidInput,
				p.Date.Format("2006-01-02"), prev.Format("2006-01-02"))
		}
	}
	return nil
}

package notifier

import (
	"fmt"
	"html"
	"strings"

	"SwingSentinel/internal/model"
)

const dateLayout = "2006-01-02"

// FormatReport formats an analysis into a Telegram HTML message.
func FormatReport(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s swing report</b> | %s\n\n", html.EscapeString(a.Symbol), a.AsOf.Format(dateLayout)))
	b.WriteString(fmt.Sprintf("Close: %.2f\n", a.LastClose()))

	b.WriteString(FormatMACD(a))
	b.WriteString("\n")
	b.WriteString(FormatLevels(a))
	b.WriteString("\n")

	if a.LastCrossover != nil {
		days := int(a.AsOf.Sub(a.LastCrossover.Date).Hours() / 24)
		b.WriteString(fmt.Sprintf("🟣 <b>Last MACD crossover:</b> %s (%d days ago)\n",
			a.LastCrossover.Date.Format(dateLayout), days))
	} else {
		b.WriteString("🟣 <b>Last MACD crossover:</b> none in range\n")
	}

	if a.InsufficientHistory {
		b.WriteString(fmt.Sprintf("\n⚠️ Only %d bars of history, levels use clipped windows\n", a.Series.Len()))
	}

	return b.String()
}

// FormatError formats a failure notice. The error text may carry upstream
// response bodies, so it is escaped for HTML parse mode.
func FormatError(action string, err error) string {
	return fmt.Sprintf("❌ %s: %s", action, html.EscapeString(err.Error()))
}

// FormatMACD formats the indicator values at the as-of date.
func FormatMACD(a *model.Analysis) string {
	macd, signal, hist := a.LastIndicators()
	trend := "below"
	if macd > signal {
		trend = "above"
	}
	return fmt.Sprintf("MACD: %+.3f | Signal: %+.3f | Hist: %+.3f (MACD %s signal)\n", macd, signal, hist, trend)
}

// FormatLevels lists the top support and resistance levels with their rank.
func FormatLevels(a *model.Analysis) string {
	var b strings.Builder
	b.WriteString("🟥 <b>Resistance:</b>\n")
	writeLevels(&b, a.TopResistances)
	b.WriteString("🟩 <b>Support:</b>\n")
	writeLevels(&b, a.TopSupports)
	return b.String()
}

func writeLevels(b *strings.Builder, levels []model.RankedLevel) {
	if len(levels) == 0 {
		b.WriteString("  none\n")
		return
	}
	for _, l := range levels {
		b.WriteString(fmt.Sprintf("  #%d %.2f (%s, %dd ago)\n",
			l.DisplayRank(), l.Price, l.Date.Format(dateLayout), l.DaysAgo))
	}
}

package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"SwingSentinel/internal/model"
)

var (
	Green   = color.New(color.FgGreen).SprintfFunc()
	Red     = color.New(color.FgRed).SprintfFunc()
	Yellow  = color.New(color.FgYellow).SprintfFunc()
	Cyan    = color.New(color.FgCyan).SprintfFunc()
	Magenta = color.New(color.FgMagenta).SprintfFunc()

	BoldCyan = color.New(color.FgCyan, color.Bold).SprintfFunc()
)

// ConsoleUI renders an analysis for the terminal.
type ConsoleUI struct {
	Out io.Writer
}

func NewConsoleUI() *ConsoleUI {
	return &ConsoleUI{Out: os.Stdout}
}

// PrintAnalysis prints the close, MACD state, top levels and last crossover.
func (ui *ConsoleUI) PrintAnalysis(a *model.Analysis) {
	w := ui.Out
	fmt.Fprintln(w, Cyan("============================================================"))
	fmt.Fprintf(w, "%s | as of %s | close %.2f\n", BoldCyan(a.Symbol), a.AsOf.Format("2006-01-02"), a.LastClose())
	fmt.Fprintln(w, Cyan("============================================================"))

	macd, signal, hist := a.LastIndicators()
	histText := Red("%+.3f", hist)
	if hist > 0 {
		histText = Green("%+.3f", hist)
	}
	fmt.Fprintf(w, "MACD %+.3f  Signal %+.3f  Hist %s\n\n", macd, signal, histText)

	fmt.Fprintln(w, "Resistance")
	ui.printLevels(a.TopResistances, Red)
	fmt.Fprintln(w, "Support")
	ui.printLevels(a.TopSupports, Green)

	if a.LastCrossover != nil {
		fmt.Fprintf(w, "\n%s %s\n", Magenta("MACD crossover:"), a.LastCrossover.Date.Format("2006-01-02"))
	} else {
		fmt.Fprintf(w, "\n%s none\n", Magenta("MACD crossover:"))
	}
	if a.InsufficientHistory {
		fmt.Fprintln(w, Yellow("warning: %d bars is shorter than the extrema window", a.Series.Len()))
	}
}

func (ui *ConsoleUI) printLevels(levels []model.RankedLevel, paint func(string, ...interface{}) string) {
	if len(levels) == 0 {
		fmt.Fprintln(ui.Out, "  none")
		return
	}
	for _, l := range levels {
		fmt.Fprintf(ui.Out, "  [%d] %s  %s\n", l.DisplayRank(), paint("%.2f", l.Price), l.Date.Format("2006-01-02"))
	}
}

// LogError prints an error line.
func (ui *ConsoleUI) LogError(msg string) {
	fmt.Fprintf(ui.Out, "%s | %s\n", Red("ERROR"), msg)
}

package scheduler

import (
	"context"
	"fmt"
	"log"

	"SwingSentinel/internal/analyzer"
	"SwingSentinel/internal/collector"
	"SwingSentinel/internal/model"
	"SwingSentinel/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Sender delivers a formatted report.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the daily report job and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Sender    Sender
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, sender Sender) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Sender:    sender,
		Ctx:       ctx,
	}
}

// Register adds the daily report job.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyReport); err != nil {
		return fmt.Errorf("register daily report: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunReportNow executes the daily report immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunReportNow() {
	s.dailyReport()
}

// Analyze collects the configured symbol and runs the analysis pipeline.
func (s *Scheduler) Analyze(ctx context.Context) (*model.Analysis, error) {
	series, err := s.Collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	a, err := analyzer.Analyze(series)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", series.Symbol, err)
	}
	if a.InsufficientHistory {
		log.Printf("[WARN] %s has %d bars, shorter than the extrema window", a.Symbol, a.Series.Len())
	}
	return a, nil
}

func (s *Scheduler) dailyReport() {
	log.Println("[INFO] running daily report")
	a, err := s.Analyze(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] daily report: %v", err)
		s.trySend(notifier.FormatError("Daily report failed", err))
		return
	}
	s.trySend(notifier.FormatReport(a))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	switch command {
	case "/report":
		s.dailyReport()
		return ""
	case "/levels", "/macd":
		a, err := s.Analyze(ctx)
		if err != nil {
			log.Printf("[ERROR] command %s: %v", command, err)
			return notifier.FormatError(command+" failed", err)
		}
		if command == "/levels" {
			return notifier.FormatLevels(a)
		}
		return notifier.FormatMACD(a)
	default:
		return "Available commands:\n• /report\n• /levels\n• /macd"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Sender.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SwingSentinel/internal/analyzer"
	"SwingSentinel/internal/collector"
	"SwingSentinel/internal/config"
	"SwingSentinel/internal/notifier"
	"SwingSentinel/internal/scheduler"
	"SwingSentinel/internal/store"
	"SwingSentinel/internal/ui"
)

func main() {
	once := flag.Bool("once", false, "analyze once, print to the terminal and exit")
	symbol := flag.String("symbol", "", "override data_source.symbol")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SwingSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if *symbol != "" {
		cfg.DataSource.Symbol = *symbol
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewVsTraderFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init price cache
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
		}
	} else {
		st = store.NewNoopStore()
	}
	defer st.Close()

	col := collector.NewCollector(fetcher, st, cfg.DataSource.Symbol, cfg.DataSource.Days)

	if *once {
		if err := runOnce(col); err != nil {
			st.Close()
			os.Exit(1)
		}
		return
	}

	if err := cfg.ValidateTelegram(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, tn)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, sending report now")
		go sched.RunReportNow()
	}

	log.Printf("[INFO] SwingSentinel is watching %s. Press Ctrl+C to stop.", cfg.DataSource.Symbol)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SwingSentinel stopped")
}

func runOnce(col *collector.Collector) error {
	console := ui.NewConsoleUI()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	series, err := col.Collect(ctx)
	if err != nil {
		console.LogError(err.Error())
		return err
	}
	a, err := analyzer.Analyze(series)
	if err != nil {
		console.LogError(err.Error())
		return err
	}
	console.PrintAnalysis(a)
	return nil
}

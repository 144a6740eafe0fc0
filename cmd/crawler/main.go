package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polwatch/nec-crawler/browser"
	"github.com/polwatch/nec-crawler/config"
	"github.com/polwatch/nec-crawler/crawler"
	"github.com/polwatch/nec-crawler/models"
)

func main() {
	defaults := config.DefaultConfig()

	listURLDefault := defaults.ListURL
	if value, ok := config.EnvString("NEC_LIST_URL"); ok {
		listURLDefault = value
	}
	outputDefault := defaults.OutputFile
	if value, ok := config.EnvString("NEC_OUTPUT"); ok {
		outputDefault = value
	}
	metricsDefault := defaults.MetricsAddr
	if value, ok := config.EnvString("NEC_METRICS_ADDR"); ok {
		metricsDefault = value
	}
	timeoutDefault := defaults.Timeout
	if value, ok, err := config.EnvDuration("NEC_TIMEOUT"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid NEC_TIMEOUT: %v\n", err)
		os.Exit(1)
	} else if ok {
		timeoutDefault = value
	}
	maxRetriesDefault := defaults.MaxRetries
	if value, ok, err := config.EnvInt("NEC_MAX_RETRIES"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid NEC_MAX_RETRIES: %v\n", err)
		os.Exit(1)
	} else if ok {
		maxRetriesDefault = value
	}

	listURL := flag.String("list-url", listURLDefault, "Listing page URL to crawl")
	timeout := flag.Duration("timeout", timeoutDefault, "Per-step network timeout")
	maxRetries := flag.Int("max-retries", maxRetriesDefault, "Maximum navigation retry attempts")
	retryDelay := flag.Duration("retry-delay", defaults.RetryDelay, "Base delay for linear retry backoff")
	waitTime := flag.Duration("wait", defaults.WaitTime, "Post-navigation settle delay")
	headless := flag.Bool("headless", defaults.Headless, "Run the browser headless")
	followDetail := flag.Bool("follow-detail", defaults.FollowDetail, "Follow per-item detail links")
	static := flag.Bool("static", false, "Fetch over plain HTTP instead of headless Chrome")
	outputFile := flag.String("output", outputDefault, "Snapshot output path")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger := newLogger(*verbose)
	slog.SetDefault(logger)

	cfg := config.DefaultConfig()
	cfg.ListURL = *listURL
	cfg.Timeout = *timeout
	cfg.MaxRetries = *maxRetries
	cfg.RetryDelay = *retryDelay
	cfg.WaitTime = *waitTime
	cfg.Headless = *headless
	cfg.FollowDetail = *followDetail
	cfg.OutputFile = *outputFile
	cfg.MetricsAddr = *metricsAddr
	cfg.Verbose = *verbose

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	opts := []crawler.Option{}
	if *static {
		opts = append(opts, crawler.WithBrowserFactory(func() (browser.Browser, error) {
			return browser.NewStatic(cfg.UserAgent, cfg.Timeout), nil
		}))
	}

	metrics := crawler.NewMetrics()
	opts = append(opts, crawler.WithMetrics(metrics))

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	slog.Info("starting crawl",
		slog.String("list_url", cfg.ListURL),
		slog.Bool("headless", cfg.Headless),
		slog.Bool("static", *static),
	)

	result := crawler.CrawlAndSaveNEC(context.Background(), cfg.OutputFile, cfg, opts...)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(result, cfg.OutputFile)
	if !result.Success {
		os.Exit(1)
	}
}

func printSummary(result *models.CrawlResult, outputFile string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	if result.Success {
		fmt.Println("Crawl complete")
	} else {
		fmt.Println("Crawl failed")
		if result.Err != nil {
			fmt.Printf("  Error:         %s\n", result.Err.Error())
			fmt.Printf("  Retryable:     %t\n", result.Err.Retryable)
		}
	}
	fmt.Printf("  Collected:     %d\n", result.Stats.ItemsCollected)
	fmt.Printf("  Failed items:  %d\n", result.Stats.ItemsFailed)
	fmt.Printf("  Retries:       %d\n", result.Stats.RetryCount)
	fmt.Printf("  Duration:      %dms\n", result.Stats.Duration)
	if result.Success {
		fmt.Printf("  Output file:   %s\n", outputFile)
	}
	fmt.Println(separator)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

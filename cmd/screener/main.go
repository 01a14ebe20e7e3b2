package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/ducminhle1904/crypto-signal-engine/internal/advisor"
	"github.com/ducminhle1904/crypto-signal-engine/internal/analysis"
	"github.com/ducminhle1904/crypto-signal-engine/internal/config"
	"github.com/ducminhle1904/crypto-signal-engine/internal/exchange/bybit"
	"github.com/ducminhle1904/crypto-signal-engine/internal/monitoring"
	"github.com/ducminhle1904/crypto-signal-engine/internal/storage"
	"github.com/ducminhle1904/crypto-signal-engine/pkg/data"
	"github.com/ducminhle1904/crypto-signal-engine/pkg/logger"
	"github.com/ducminhle1904/crypto-signal-engine/pkg/reporting"
	"github.com/ducminhle1904/crypto-signal-engine/pkg/types"
)

func main() {
	var (
		envFile   = flag.String("env", ".env", "Environment file path (default: .env)")
		source    = flag.String("source", "", "Data source override: bybit, csv or demo")
		excelPath = flag.String("excel", "", "Write an Excel report to this path")
		noStore   = flag.Bool("no-store", false, "Skip SQLite persistence")
	)
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load env file: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()
	if *source != "" {
		cfg.Data.Source = *source
	}
	if *excelPath != "" {
		cfg.Reporting.ExcelPath = *excelPath
	}
	if *noStore {
		cfg.Storage.DatabasePath = ""
	}

	log, err := logger.New(&logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("screener run failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}
	log.Info("screener starting",
		logger.String("provider", provider.GetName()),
		logger.Strings("symbols", cfg.Screener.Symbols),
		logger.Int("bars", cfg.Screener.Bars),
	)

	if cfg.Monitoring.PrometheusPort > 0 {
		go serveMetrics(cfg.Monitoring.PrometheusPort, log)
	}

	start := time.Now()
	seriesBySymbol, fetchErrs := data.FetchAll(ctx, provider, cfg.Screener.Symbols, cfg.Screener.Bars)
	for symbol, fetchErr := range fetchErrs {
		monitoring.RecordError("fetch")
		log.Warn("fetch failed", logger.String("symbol", symbol), logger.Error(fetchErr))
	}
	if len(seriesBySymbol) == 0 {
		return fmt.Errorf("no price data fetched for any symbol")
	}

	selected := analysis.NewIndicatorSet(cfg.Screener.Indicators...)
	evals := analysis.NewEvaluator().EvaluateAll(seriesBySymbol, selected)
	monitoring.ObserveBatchDuration(time.Since(start))

	scores := make([]analysis.SymbolScore, 0, len(evals))
	for symbol, eval := range evals {
		scores = append(scores, analysis.SymbolScore{Symbol: symbol, Score: eval.Score})
		if close, ok := eval.Snapshot.LastClose(); ok {
			monitoring.RecordEvaluation(symbol, string(eval.Signal.Direction), eval.Score, close)
		}
	}
	// Map iteration order is random; sort by symbol so equal scores rank
	// deterministically.
	sort.Slice(scores, func(i, j int) bool { return scores[i].Symbol < scores[j].Symbol })
	ranked := analysis.Rank(scores, cfg.Screener.TopN)

	advisories := make(map[string]advisor.Report, len(ranked))
	for _, score := range ranked {
		eval := evals[score.Symbol]
		advisories[score.Symbol] = advisor.Analyze(marketContext(score.Symbol, seriesBySymbol[score.Symbol], cfg.Screener.Interval), eval.Snapshot)
	}

	entries := reporting.BuildEntries(ranked, evals, advisories)
	reporting.NewConsoleReporter().RenderAll(entries)

	if cfg.Reporting.ExcelPath != "" {
		if err := reporting.NewExcelReporter().WriteWorkbook(cfg.Reporting.ExcelPath, entries); err != nil {
			monitoring.RecordError("report")
			return fmt.Errorf("failed to write Excel report: %w", err)
		}
		log.Info("excel report written", logger.String("path", cfg.Reporting.ExcelPath))
	}

	if cfg.Storage.DatabasePath != "" {
		if err := persist(cfg.Storage.DatabasePath, seriesBySymbol, evals, ranked, log); err != nil {
			monitoring.RecordError("store")
			return err
		}
	}

	log.Info("screener finished",
		logger.Int("evaluated", len(evals)),
		logger.Int("ranked", len(ranked)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// buildProvider creates the configured data source, wrapped in a cache so
// repeated fetches within one run do not hit the source twice.
func buildProvider(cfg *config.Config) (data.Provider, error) {
	var provider data.Provider
	switch cfg.Data.Source {
	case "bybit":
		client := bybit.NewClient(bybit.Config{
			APIKey:    cfg.Exchange.APIKey,
			APISecret: cfg.Exchange.Secret,
			Testnet:   cfg.Exchange.Testnet,
		})
		provider = bybit.NewProvider(client, bybit.KlineInterval(cfg.Screener.Interval))
	case "csv":
		provider = data.NewCSVProvider(cfg.Data.CSVDir)
	case "demo":
		provider = data.NewDemoProvider()
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
	return data.NewCachedProvider(provider), nil
}

func serveMetrics(port int, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())

	addr := fmt.Sprintf(":%d", port)
	log.Info("metrics server listening", logger.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn("metrics server stopped", logger.Error(err))
	}
}

// marketContext derives the advisory inputs from the tail of a price series.
// Change percentages fall back to zero when the series is shorter than the
// lookback window.
func marketContext(symbol string, series types.PriceSeries, interval string) advisor.MarketContext {
	mc := advisor.MarketContext{Symbol: symbol}
	if len(series) == 0 {
		return mc
	}

	perDay := barsPerDay(interval)
	mc.CurrentPrice = series[len(series)-1].Close
	mc.Change24h = percentChange(series, perDay)
	mc.Change7d = percentChange(series, perDay*7)
	return mc
}

// barsPerDay converts a kline interval string to the number of bars per day.
func barsPerDay(interval string) int {
	if interval == "D" {
		return 1
	}
	minutes, err := strconv.Atoi(interval)
	if err != nil || minutes <= 0 {
		return 24 // hourly fallback
	}
	return (24 * 60) / minutes
}

// percentChange returns the close-to-close change over the last n bars.
func percentChange(series types.PriceSeries, n int) float64 {
	if n <= 0 || len(series) <= n {
		return 0
	}
	prev := series[len(series)-1-n].Close
	if prev == 0 {
		return 0
	}
	return (series[len(series)-1].Close - prev) / prev * 100
}

// persist writes the run's price history, indicator values and ranked
// signals to SQLite.
func persist(path string, seriesBySymbol map[string]types.PriceSeries, evals map[string]*analysis.Evaluation, ranked []analysis.SymbolScore, log *logger.Logger) error {
	store, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	now := time.Now()
	for _, score := range ranked {
		eval := evals[score.Symbol]
		series := seriesBySymbol[score.Symbol]

		if err := store.SavePriceHistory(score.Symbol, series); err != nil {
			return fmt.Errorf("failed to save price history for %s: %w", score.Symbol, err)
		}
		if err := store.SaveIndicators(score.Symbol, series, eval.Snapshot); err != nil {
			return fmt.Errorf("failed to save indicators for %s: %w", score.Symbol, err)
		}

		price, _ := eval.Snapshot.LastClose()
		if err := store.SaveSignal(score.Symbol, eval.Signal, price, now); err != nil {
			return fmt.Errorf("failed to save signal for %s: %w", score.Symbol, err)
		}
	}

	log.Info("results persisted", logger.String("database", path), logger.Int("symbols", len(ranked)))
	return nil
}

// Package config loads the screener configuration from environment
// variables, with optional .env file support.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the full screener configuration.
type Config struct {
	Environment string
	LogLevel    string
	LogFormat   string

	Screener struct {
		Symbols    []string
		Indicators []string
		Interval   string // kline interval, e.g. "60" for hourly
		Bars       int
		TopN       int
	}

	Data struct {
		Source string // bybit, csv or demo
		CSVDir string
	}

	Exchange struct {
		APIKey  string
		Secret  string
		Testnet bool
	}

	Storage struct {
		DatabasePath string
	}

	Monitoring struct {
		PrometheusPort int
	}

	Reporting struct {
		ExcelPath string
	}
}

// LoadEnvFile loads a .env file into the process environment. A missing file
// is not an error; explicit environment variables always win.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Load reads the configuration from the environment.
func Load() *Config {
	cfg := &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),
	}

	cfg.Screener.Symbols = getEnvList("SCREENER_SYMBOLS", []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"})
	cfg.Screener.Indicators = getEnvList("SCREENER_INDICATORS", []string{"RSI", "MACD", "Bollinger Bands", "EMA", "SMA"})
	cfg.Screener.Interval = getEnv("SCREENER_INTERVAL", "60")
	cfg.Screener.Bars = getEnvInt("SCREENER_BARS", 250)
	cfg.Screener.TopN = getEnvInt("SCREENER_TOP_N", 10)

	cfg.Data.Source = getEnv("DATA_SOURCE", "demo")
	cfg.Data.CSVDir = getEnv("DATA_CSV_DIR", "data")

	cfg.Exchange.APIKey = getEnv("BYBIT_API_KEY", "")
	cfg.Exchange.Secret = getEnv("BYBIT_API_SECRET", "")
	cfg.Exchange.Testnet = getEnvBool("BYBIT_TESTNET", true)

	cfg.Storage.DatabasePath = getEnv("DATABASE_PATH", "crypto_analysis.db")

	cfg.Monitoring.PrometheusPort = getEnvInt("PROMETHEUS_PORT", 8080)

	cfg.Reporting.ExcelPath = getEnv("EXCEL_REPORT_PATH", "")

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvList reads a comma-separated list, trimming whitespace around each
// entry and dropping empty ones.
func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

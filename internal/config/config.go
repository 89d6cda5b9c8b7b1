package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

// FileEnvVar names the environment variable holding an optional YAML config
// file. Keys in the file are the lower-case forms of the variables below.
const FileEnvVar = "TXREPORT_CONFIG"

const (
	keyAPIKey                = "api_key"
	keyRatesURL              = "rates_url"
	keyRatesTimeout          = "rates_timeout"
	keyRatesCacheTTL         = "rates_cache_ttl"
	keyReferenceCurrency     = "reference_currency"
	keyConvertibleCurrencies = "convertible_currencies"
	keyLogLevel              = "log_level"
	keyLogFile               = "log_file"
	keyJSONPath              = "json_path"
	keyCSVPath               = "csv_path"
	keyXLSXPath              = "xlsx_path"
	keyReportCategories      = "report_categories"
)

var knownKeys = []string{
	keyAPIKey,
	keyRatesURL,
	keyRatesTimeout,
	keyRatesCacheTTL,
	keyReferenceCurrency,
	keyConvertibleCurrencies,
	keyLogLevel,
	keyLogFile,
	keyJSONPath,
	keyCSVPath,
	keyXLSXPath,
	keyReportCategories,
}

// In all cases the defaults should work for a checkout run from the repo root.
var defaults = map[string]interface{}{
	keyRatesURL:              "https://api.apilayer.com/exchangerates_data/latest",
	keyRatesTimeout:          "10s",
	keyRatesCacheTTL:         "1h",
	keyReferenceCurrency:     "RUB",
	keyConvertibleCurrencies: "USD,EUR",
	keyLogLevel:              "info",
	keyLogFile:               "logs/txreport.log",
	keyJSONPath:              "data/operations.json",
	keyCSVPath:               "data/transactions.csv",
	keyXLSXPath:              "data/transactions_excel.xlsx",
	keyReportCategories:      "",
}

type Config struct {
	APIKey                string
	RatesURL              string
	RatesTimeout          time.Duration
	RatesCacheTTL         time.Duration
	ReferenceCurrency     string
	ConvertibleCurrencies []string
	LogLevel              string
	LogFile               string
	JSONPath              string
	CSVPath               string
	XLSXPath              string
	ReportCategories      []string
}

// ProcessEnvironmentVariables builds the configuration from, in increasing
// priority, built-in defaults, the YAML file named by TXREPORT_CONFIG and
// the environment. A .env file in the working directory is loaded into the
// environment first if present.
func ProcessEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv(FileEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	return fromKoanf(k)
}

// envKey maps API_KEY to api_key and drops variables that are not settings.
func envKey(name string) string {
	key := strings.ToLower(name)
	for _, known := range knownKeys {
		if key == known {
			return key
		}
	}
	return ""
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	var errs []error

	timeout, err := time.ParseDuration(k.String(keyRatesTimeout))
	if err != nil {
		errs = append(errs, fmt.Errorf("RATES_TIMEOUT: %w", err))
	}
	cacheTTL, err := time.ParseDuration(k.String(keyRatesCacheTTL))
	if err != nil {
		errs = append(errs, fmt.Errorf("RATES_CACHE_TTL: %w", err))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	convertible := list(k, keyConvertibleCurrencies)
	for i, code := range convertible {
		convertible[i] = strings.ToUpper(code)
	}

	return &Config{
		APIKey:                k.String(keyAPIKey),
		RatesURL:              k.String(keyRatesURL),
		RatesTimeout:          timeout,
		RatesCacheTTL:         cacheTTL,
		ReferenceCurrency:     strings.ToUpper(strings.TrimSpace(k.String(keyReferenceCurrency))),
		ConvertibleCurrencies: convertible,
		LogLevel:              k.String(keyLogLevel),
		LogFile:               k.String(keyLogFile),
		JSONPath:              k.String(keyJSONPath),
		CSVPath:               k.String(keyCSVPath),
		XLSXPath:              k.String(keyXLSXPath),
		ReportCategories:      list(k, keyReportCategories),
	}, nil
}

// list reads either a YAML sequence or a comma separated string.
func list(k *koanf.Koanf, key string) []string {
	var raw []string
	if _, ok := k.Get(key).([]interface{}); ok {
		raw = k.Strings(key)
	} else {
		raw = strings.Split(k.String(key), ",")
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if !isCurrencyCode(c.ReferenceCurrency) {
		errs = append(errs, fmt.Errorf("REFERENCE_CURRENCY %q is not a currency code", c.ReferenceCurrency))
	}
	for _, code := range c.ConvertibleCurrencies {
		if !isCurrencyCode(code) {
			errs = append(errs, fmt.Errorf("CONVERTIBLE_CURRENCIES entry %q is not a currency code", code))
		}
	}
	if c.RatesURL == "" {
		errs = append(errs, errors.New("RATES_URL is empty"))
	}
	if c.RatesTimeout <= 0 {
		errs = append(errs, fmt.Errorf("RATES_TIMEOUT must be positive, got %v", c.RatesTimeout))
	}
	if c.RatesCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("RATES_CACHE_TTL must not be negative, got %v", c.RatesCacheTTL))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	return errors.Join(errs...)
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

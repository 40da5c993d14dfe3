// Package config loads the bot configuration from YAML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"TradeSentinel/internal/model"
	"TradeSentinel/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Product    string `yaml:"product"`
	DryRun     bool   `yaml:"dry_run"`
	RunOnStart bool   `yaml:"run_on_start"`
	Exchange   struct {
		Name       string `yaml:"name"` // coinbase or mock
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"api_key"`
		APISecret  string `yaml:"api_secret"`
		Passphrase string `yaml:"passphrase"`
	} `yaml:"exchange"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		CycleCron string `yaml:"cycle_cron"`
	} `yaml:"schedule"`
	Strategy Strategy `yaml:"strategy"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Strategy holds the risk model and market-data window.
type Strategy struct {
	RiskPercent     float64 `yaml:"risk_percent"`
	RewardRiskRatio float64 `yaml:"reward_risk_ratio"`
	ROCLookback     int     `yaml:"roc_lookback"`
	QuotePrecision  int32   `yaml:"quote_precision"`
	BasePrecision   int32   `yaml:"base_precision"`
	BaseMinimum     float64 `yaml:"base_minimum"`
	BaseMaximum     float64 `yaml:"base_maximum"`
	HistoryBars     int     `yaml:"history_bars"`
	Granularity     int     `yaml:"granularity"` // seconds per candle
}

// Params converts the strategy section into sizing parameters.
func (s Strategy) Params() strategy.Params {
	return strategy.Params{
		RiskPercent:     decimal.NewFromFloat(s.RiskPercent),
		RewardRiskRatio: decimal.NewFromFloat(s.RewardRiskRatio),
		QuotePrecision:  s.QuotePrecision,
		BasePrecision:   s.BasePrecision,
		BaseMinimum:     decimal.NewFromFloat(s.BaseMinimum),
		BaseMaximum:     decimal.NewFromFloat(s.BaseMaximum),
	}
}

// GranularityDuration returns the candle width.
func (s Strategy) GranularityDuration() time.Duration {
	return time.Duration(s.Granularity) * time.Second
}

// LoadDotEnv loads .env style files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"COINBASE_API_KEY":    &c.Exchange.APIKey,
		"COINBASE_API_SECRET": &c.Exchange.APISecret,
		"COINBASE_PASSPHRASE": &c.Exchange.Passphrase,
		"COINBASE_BASE_URL":   &c.Exchange.BaseURL,
		"EXCHANGE":            &c.Exchange.Name,
		"TELEGRAM_BOT_TOKEN":  &c.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":    &c.Telegram.ChatID,
		"SQLITE_PATH":         &c.Database.SQLitePath,
		"REDIS_ADDR":          &c.Redis.Addr,
		"REDIS_PASSWORD":      &c.Redis.Password,
		"CRON_CYCLE":          &c.Schedule.CycleCron,
		"PRODUCT":             &c.Product,
		"METRICS_ADDR":        &c.Metrics.Addr,
		"HTTPS_PROXY":         &c.Proxy,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"DRY_RUN":      &c.DryRun,
		"RUN_ON_START": &c.RunOnStart,
	}
	for key, dst := range bools {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Product == "" {
		c.Product = "BTC-USD"
	}
	if c.Exchange.Name == "" {
		c.Exchange.Name = "coinbase"
	}
	if c.Schedule.CycleCron == "" {
		c.Schedule.CycleCron = "0 0 * * * *"
	}
	if c.Database.SQLitePath == "" && c.Redis.Addr == "" {
		c.Database.SQLitePath = "data/trade_sentinel.db"
	}

	s := &c.Strategy
	if s.RiskPercent == 0 {
		s.RiskPercent = 0.01
	}
	if s.RewardRiskRatio == 0 {
		s.RewardRiskRatio = 2
	}
	if s.ROCLookback == 0 {
		s.ROCLookback = 20
	}
	if s.QuotePrecision == 0 {
		s.QuotePrecision = 2
	}
	if s.BasePrecision == 0 {
		s.BasePrecision = 8
	}
	if s.BaseMinimum == 0 {
		s.BaseMinimum = 0.001
	}
	if s.BaseMaximum == 0 {
		s.BaseMaximum = 10000
	}
	if s.HistoryBars == 0 {
		s.HistoryBars = 100
	}
	if s.Granularity == 0 {
		s.Granularity = 86400
	}
}

// ProductID parses the configured product.
func (c *Config) ProductID() (model.Product, error) {
	return model.ParseProduct(c.Product)
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if _, err := c.ProductID(); err != nil {
		return fmt.Errorf("product: %w", err)
	}
	switch c.Exchange.Name {
	case "mock":
	case "coinbase":
		if !c.DryRun && (c.Exchange.APIKey == "" || c.Exchange.APISecret == "" || c.Exchange.Passphrase == "") {
			return fmt.Errorf("exchange credentials are required unless dry_run is set")
		}
	default:
		return fmt.Errorf("exchange.name %q is not supported", c.Exchange.Name)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if err := c.Strategy.Params().Validate(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	if c.Strategy.ROCLookback < 1 {
		return fmt.Errorf("strategy.roc_lookback must be positive")
	}
	// 52 bars feed the Ichimoku span B window.
	if c.Strategy.HistoryBars < 52 || c.Strategy.HistoryBars > 300 {
		return fmt.Errorf("strategy.history_bars must be within [52, 300], got %d", c.Strategy.HistoryBars)
	}
	if c.Strategy.Granularity <= 0 {
		return fmt.Errorf("strategy.granularity must be positive")
	}
	return nil
}

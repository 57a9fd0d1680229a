// Package config provides configuration management for the backtester.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Backtest   BacktestConfig   `mapstructure:"backtest"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Storage    StorageConfig    `mapstructure:"storage"`
}

// BacktestConfig holds the strategy and account parameters.
type BacktestConfig struct {
	Side             string  `mapstructure:"side"`               // "call" or "put"
	InitialCash      float64 `mapstructure:"initial_cash"`       // starting account balance
	MovingAverageLag int     `mapstructure:"moving_average_lag"` // SMA window, trading days
	VolatilityWindow int     `mapstructure:"volatility_window"`  // realized-vol window, trading days
	MinDaysToExpiry  int     `mapstructure:"min_days_to_expiry"` // minimum horizon for contract selection
	StrikeSpacing    float64 `mapstructure:"strike_spacing"`     // strike grid increment
	StrikesAway      int     `mapstructure:"strikes_away"`       // grid steps out-of-the-money
	CashReserve      float64 `mapstructure:"cash_reserve"`       // fraction of cash kept un-deployed
	RiskFreeRate     float64 `mapstructure:"risk_free_rate"`     // annualized
}

// SimulationConfig holds the synthetic price path parameters.
type SimulationConfig struct {
	StartPrice float64 `mapstructure:"start_price"`
	MeanLevel  float64 `mapstructure:"mean_level"`
	Reversion  float64 `mapstructure:"reversion"`
	Sigma      float64 `mapstructure:"sigma"`
	Length     int     `mapstructure:"length"`
	Seed       int64   `mapstructure:"seed"` // 0 seeds from the clock
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Path string `mapstructure:"path"` // SQLite database path
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-backtester"
	}
	return filepath.Join(home, ".config", "options-backtester")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backtest: BacktestConfig{
			Side:             "call",
			InitialCash:      50000,
			MovingAverageLag: 200,
			VolatilityWindow: 20,
			MinDaysToExpiry:  90,
			StrikeSpacing:    2.5,
			StrikesAway:      1,
			CashReserve:      0.9,
			RiskFreeRate:     0.03,
		},
		Simulation: SimulationConfig{
			StartPrice: 30,
			MeanLevel:  50,
			Reversion:  0.01,
			Sigma:      0.5,
			Length:     2000,
		},
		Storage: StorageConfig{
			Path: filepath.Join(DefaultConfigDir(), "backtester.db"),
		},
	}
}

// Load reads configuration from config.yaml in the given directory,
// falling back to defaults for anything unset. An empty configDir uses the
// default config directory; a missing file is not an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("backtest.side", def.Backtest.Side)
	v.SetDefault("backtest.initial_cash", def.Backtest.InitialCash)
	v.SetDefault("backtest.moving_average_lag", def.Backtest.MovingAverageLag)
	v.SetDefault("backtest.volatility_window", def.Backtest.VolatilityWindow)
	v.SetDefault("backtest.min_days_to_expiry", def.Backtest.MinDaysToExpiry)
	v.SetDefault("backtest.strike_spacing", def.Backtest.StrikeSpacing)
	v.SetDefault("backtest.strikes_away", def.Backtest.StrikesAway)
	v.SetDefault("backtest.cash_reserve", def.Backtest.CashReserve)
	v.SetDefault("backtest.risk_free_rate", def.Backtest.RiskFreeRate)
	v.SetDefault("simulation.start_price", def.Simulation.StartPrice)
	v.SetDefault("simulation.mean_level", def.Simulation.MeanLevel)
	v.SetDefault("simulation.reversion", def.Simulation.Reversion)
	v.SetDefault("simulation.sigma", def.Simulation.Sigma)
	v.SetDefault("simulation.length", def.Simulation.Length)
	v.SetDefault("simulation.seed", def.Simulation.Seed)
	v.SetDefault("storage.path", def.Storage.Path)
}

// Validate fails fast on parameter ranges that would only blow up deep in
// the run loop otherwise.
func (c *Config) Validate() error {
	b := c.Backtest
	if b.Side != "call" && b.Side != "put" {
		return fmt.Errorf("backtest.side must be \"call\" or \"put\", got %q", b.Side)
	}
	if b.InitialCash <= 0 {
		return fmt.Errorf("backtest.initial_cash must be positive, got %v", b.InitialCash)
	}
	if b.MovingAverageLag <= 0 {
		return fmt.Errorf("backtest.moving_average_lag must be positive, got %d", b.MovingAverageLag)
	}
	if b.VolatilityWindow < 2 {
		return fmt.Errorf("backtest.volatility_window must be at least 2, got %d", b.VolatilityWindow)
	}
	if b.MinDaysToExpiry <= 0 {
		return fmt.Errorf("backtest.min_days_to_expiry must be positive, got %d", b.MinDaysToExpiry)
	}
	if b.StrikeSpacing <= 0 {
		return fmt.Errorf("backtest.strike_spacing must be positive, got %v", b.StrikeSpacing)
	}
	if b.StrikesAway < 1 {
		return fmt.Errorf("backtest.strikes_away must be at least 1, got %d", b.StrikesAway)
	}
	if b.CashReserve < 0 || b.CashReserve > 1 {
		return fmt.Errorf("backtest.cash_reserve must be within [0,1], got %v", b.CashReserve)
	}

	s := c.Simulation
	if s.Length < 2 {
		return fmt.Errorf("simulation.length must be at least 2, got %d", s.Length)
	}
	if s.Sigma < 0 {
		return fmt.Errorf("simulation.sigma must be non-negative, got %v", s.Sigma)
	}
	return nil
}

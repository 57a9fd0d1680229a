package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// An empty directory has no config.yaml; everything falls back to the
	// built-in defaults.
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	def := Default()
	if cfg.Backtest != def.Backtest {
		t.Errorf("backtest config = %+v, want defaults %+v", cfg.Backtest, def.Backtest)
	}
	if cfg.Simulation != def.Simulation {
		t.Errorf("simulation config = %+v, want defaults %+v", cfg.Simulation, def.Simulation)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
backtest:
  side: put
  moving_average_lag: 50
simulation:
  seed: 42
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backtest.Side != "put" {
		t.Errorf("side = %q, want put", cfg.Backtest.Side)
	}
	if cfg.Backtest.MovingAverageLag != 50 {
		t.Errorf("moving_average_lag = %d, want 50", cfg.Backtest.MovingAverageLag)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Simulation.Seed)
	}
	// Unset keys keep their defaults.
	if cfg.Backtest.InitialCash != 50000 {
		t.Errorf("initial_cash = %v, want default 50000", cfg.Backtest.InitialCash)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	yaml := "backtest:\n  side: straddle\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("expected a validation error for an unknown side")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero initial cash", func(c *Config) { c.Backtest.InitialCash = 0 }},
		{"volatility window of one", func(c *Config) { c.Backtest.VolatilityWindow = 1 }},
		{"negative min days to expiry", func(c *Config) { c.Backtest.MinDaysToExpiry = -1 }},
		{"zero strike spacing", func(c *Config) { c.Backtest.StrikeSpacing = 0 }},
		{"zero strikes away", func(c *Config) { c.Backtest.StrikesAway = 0 }},
		{"reserve above one", func(c *Config) { c.Backtest.CashReserve = 1.01 }},
		{"simulation too short", func(c *Config) { c.Simulation.Length = 1 }},
		{"negative simulation sigma", func(c *Config) { c.Simulation.Sigma = -0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

package depot

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by DEPOT_* environment variables.
// It holds the reference data of a run: the held positions, the cash
// position, and where the ownership ledger lives.
type Config struct {
	Currency   string           `toml:"currency"`
	Cash       float64          `toml:"cash"`
	LedgerFile string           `toml:"ledger_file"`
	EodhdKey   string           `toml:"eodhd_api_key"`
	Positions  []PositionConfig `toml:"positions"`

	// Stakeholders is the documented fallback ownership, used when the
	// ledger file is absent or unreadable. Values are percent points.
	Stakeholders map[string]float64 `toml:"stakeholders"`
}

// PositionConfig declares one held position.
type PositionConfig struct {
	Ticker     string  `toml:"ticker"`
	Name       string  `toml:"name"`
	Quantity   float64 `toml:"quantity"`
	IntradayID string  `toml:"intraday_id"`
}

// DefaultConfig returns the built-in defaults applied before the TOML file is
// read.
func DefaultConfig() Config {
	return Config{
		Currency:   "EUR",
		LedgerFile: "ledger.jsonl",
	}
}

// LoadConfig reads a TOML configuration file at path, merges it on top of the
// built-in defaults, and applies DEPOT_* environment variable overrides. An
// optional .env file is loaded first (silently ignored if missing).
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config %q: %w", path, err)
	}

	// Load .env file if present, so the API key does not have to live in
	// the config file.
	_ = godotenv.Load()

	if v := os.Getenv("DEPOT_EODHD_API_KEY"); v != "" {
		cfg.EodhdKey = v
	}
	if v := os.Getenv("DEPOT_LEDGER_FILE"); v != "" {
		cfg.LedgerFile = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if len(c.Positions) == 0 {
		return fmt.Errorf("at least one position is required")
	}
	for i, p := range c.Positions {
		if p.Ticker == "" {
			return fmt.Errorf("position %d has no ticker", i)
		}
		if p.Quantity <= 0 {
			return fmt.Errorf("position %q quantity must be positive", p.Ticker)
		}
	}
	for name, pct := range c.Stakeholders {
		if err := Percent(pct).Check(); err != nil {
			return fmt.Errorf("stakeholder %q: %w", name, err)
		}
	}
	return nil
}

// Portfolio builds the portfolio described by the configuration.
func (c *Config) Portfolio() Portfolio {
	p := Portfolio{Cash: M(c.Cash, c.Currency)}
	for _, pc := range c.Positions {
		p.Positions = append(p.Positions, Position{
			Ticker:     pc.Ticker,
			Name:       pc.Name,
			Quantity:   Q(pc.Quantity),
			IntradayID: pc.IntradayID,
		})
	}
	return p
}

// FallbackLedger builds the default ownership ledger from the configuration.
func (c *Config) FallbackLedger() *Ledger {
	stakes := make(map[string]Percent, len(c.Stakeholders))
	for name, pct := range c.Stakeholders {
		stakes[name] = Percent(pct)
	}
	return NewLedger(c.Currency, stakes)
}

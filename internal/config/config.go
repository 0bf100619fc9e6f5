package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/networth/internal/ledger"
)

// DefaultFile is the config file name written by "networth init".
const DefaultFile = "networth.yaml"

// Environment variables that override the config file.
const (
	EnvLedger     = "NETWORTH_LEDGER"
	EnvLedgerFile = "NETWORTH_LEDGER_FILE"
	EnvCurrency   = "NETWORTH_CURRENCY"
	EnvLogLevel   = "NETWORTH_LOG_LEVEL"
)

// Config represents networth.yaml.
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Log    LogConfig    `yaml:"log"`
}

// LedgerConfig describes how the ledger executable is invoked.
type LedgerConfig struct {
	Path     string   `yaml:"path"`
	File     string   `yaml:"file,omitempty"` // passed as -f; empty lets ledger pick its own
	Accounts []string `yaml:"accounts"`
	Currency string   `yaml:"currency"`
	Real     bool     `yaml:"real"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads a networth.yaml file from disk. Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration matching the stock invocation:
// /usr/bin/ledger bal Assets Liabilities -X $ --real.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Path:     ledger.DefaultPath,
			Accounts: append([]string(nil), ledger.DefaultAccounts...),
			Currency: ledger.DefaultCurrency,
			Real:     true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ApplyEnv loads a .env file from the working directory if one exists, then
// overrides cfg with any NETWORTH_* variables that are set.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	c.Ledger.Path = getEnv(EnvLedger, c.Ledger.Path)
	c.Ledger.File = getEnv(EnvLedgerFile, c.Ledger.File)
	c.Ledger.Currency = getEnv(EnvCurrency, c.Ledger.Currency)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
}

// Validate checks that the ledger invocation is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Ledger.Path) == "" {
		return fmt.Errorf("ledger.path is required")
	}
	if strings.TrimSpace(c.Ledger.Currency) == "" {
		return fmt.Errorf("ledger.currency is required")
	}
	if len(c.Ledger.Accounts) == 0 {
		return fmt.Errorf("ledger.accounts must name at least one account")
	}
	return nil
}

// CLI builds the ledger reporter described by c.
func (c *Config) CLI() *ledger.CLI {
	cli := ledger.NewCLI(c.Ledger.Path)
	cli.File = c.Ledger.File
	cli.Accounts = c.Ledger.Accounts
	cli.Currency = c.Ledger.Currency
	cli.Real = c.Ledger.Real
	return cli
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

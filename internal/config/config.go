// Package config loads holdem.hcl and applies HOLDEM_* environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
)

// DefaultFile is the configuration file looked for in the working directory
const DefaultFile = "holdem.hcl"

// HumanStrategy marks a seat played from the terminal
const HumanStrategy = "human"

const (
	defaultSmallBlind = 20
	defaultBigBlind   = 40
	defaultStack      = 2000
	defaultTimeout    = "30s"
	defaultHistoryDir = "hands"
	defaultListen     = "127.0.0.1:8000"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	maxSeats          = 9
)

// Config is the complete configuration
type Config struct {
	Table   *TableConfig   `hcl:"table,block"`
	History *HistoryConfig `hcl:"history,block"`
	Log     *LogConfig     `hcl:"log,block"`
}

// TableConfig describes the table and who sits at it
type TableConfig struct {
	SmallBlind    int          `hcl:"small_blind,optional"`
	BigBlind      int          `hcl:"big_blind,optional"`
	ActionTimeout string       `hcl:"action_timeout,optional"`
	Hands         int          `hcl:"hands,optional"`
	Seed          int64        `hcl:"seed,optional"`
	Seats         []SeatConfig `hcl:"seat,block"`
}

// SeatConfig is one player
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Stack    int    `hcl:"stack,optional"`
	Strategy string `hcl:"strategy,optional"`
}

// HistoryConfig controls where finished hands go
type HistoryConfig struct {
	Dir    string `hcl:"dir,optional"`
	Listen string `hcl:"listen,optional"`
	Remote string `hcl:"remote,optional"`
}

// LogConfig controls logging
type LogConfig struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Default returns the configuration used when no file exists: a heads-up
// table of 2000 chip stacks at 20/40 against a call bot.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads filename, falling back to defaults when it does not exist,
// then applies environment overrides.
func Load(filename string) (*Config, error) {
	cfg, err := parse(filename)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func parse(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return &cfg, nil
}

// LoadDotEnv loads KEY=value files into the environment. Missing files are
// skipped and variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableConfig{}
	}
	if c.History == nil {
		c.History = &HistoryConfig{}
	}
	if c.Log == nil {
		c.Log = &LogConfig{}
	}

	t := c.Table
	if t.SmallBlind == 0 && t.BigBlind == 0 {
		t.SmallBlind, t.BigBlind = defaultSmallBlind, defaultBigBlind
	}
	if t.ActionTimeout == "" {
		t.ActionTimeout = defaultTimeout
	}
	if len(t.Seats) == 0 {
		t.Seats = []SeatConfig{
			{Name: "You", Strategy: HumanStrategy},
			{Name: "Bot", Strategy: "call"},
		}
	}
	for i := range t.Seats {
		if t.Seats[i].Stack == 0 {
			t.Seats[i].Stack = defaultStack
		}
		if t.Seats[i].Strategy == "" {
			t.Seats[i].Strategy = "call"
		}
	}

	if c.History.Dir == "" {
		c.History.Dir = defaultHistoryDir
	}
	if c.History.Listen == "" {
		c.History.Listen = defaultListen
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("HOLDEM_HISTORY_DIR"); ok && v != "" {
		c.History.Dir = v
	}
	if v, ok := lookup("HOLDEM_LISTEN_ADDR"); ok && v != "" {
		c.History.Listen = v
	}
	if v, ok := lookup("HOLDEM_HISTORY_URL"); ok && v != "" {
		c.History.Remote = v
	}
	if v, ok := lookup("HOLDEM_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// Timeout returns the parsed action timeout
func (t *TableConfig) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(t.ActionTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid action_timeout %q: %w", t.ActionTimeout, err)
	}
	return d, nil
}

// Validate checks the configuration for values the table cannot run with
func (c *Config) Validate() error {
	t := c.Table
	if t.SmallBlind <= 0 || t.BigBlind <= 0 {
		return fmt.Errorf("blinds must be positive, got %d/%d", t.SmallBlind, t.BigBlind)
	}
	if t.SmallBlind > t.BigBlind {
		return fmt.Errorf("small blind %d is larger than big blind %d", t.SmallBlind, t.BigBlind)
	}
	if d, err := t.Timeout(); err != nil {
		return err
	} else if d < 0 {
		return fmt.Errorf("action_timeout must not be negative")
	}
	if t.Hands < 0 {
		return fmt.Errorf("hands must not be negative")
	}
	if n := len(t.Seats); n < 2 || n > maxSeats {
		return fmt.Errorf("table needs 2 to %d seats, got %d", maxSeats, n)
	}

	names := make(map[string]bool, len(t.Seats))
	humans := 0
	for _, s := range t.Seats {
		if s.Name == "" {
			return fmt.Errorf("seat with an empty name")
		}
		if names[s.Name] {
			return fmt.Errorf("seat %q is listed twice", s.Name)
		}
		names[s.Name] = true
		if s.Stack <= 0 {
			return fmt.Errorf("seat %q: stack must be positive, got %d", s.Name, s.Stack)
		}
		if s.Strategy == HumanStrategy {
			humans++
		}
	}
	if humans > 1 {
		return fmt.Errorf("only one seat can be played from the terminal, got %d", humans)
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}

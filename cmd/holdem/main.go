package main

import (
	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/lox/holdem-engine/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config    string   `short:"c" default:"${config_file}" help:"Path to the HCL configuration file"`
	EnvFile   []string `name:"env-file" help:"Files of KEY=value pairs loaded before the configuration (default .env)"`
	LogLevel  string   `name:"log-level" help:"Override the configured log level (trace, debug, info, warn, error)"`
	LogFormat string   `name:"log-format" help:"Override the configured log format (console or json)"`
}

// load reads the configuration and applies the flag overrides
func (g *Globals) load() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadDotEnv(g.EnvFile...); err != nil {
		return nil, zerolog.Nop(), err
	}
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), err
	}
	logger, err := setupLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger, nil
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play at the configured table from the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Play bot-only tables and report the results"`
	Serve    ServeCmd         `cmd:"" help:"Run the hand history service"`
	Replay   ReplayCmd        `cmd:"" help:"Replay a saved hand and check its payoffs"`
	Export   ExportCmd        `cmd:"" help:"Export a saved hand as a PHH file"`
	History  HistoryCmd       `cmd:"" help:"List saved hands"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("No-limit Texas Hold'em at a single table"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/pokerodds/analysis"
	"github.com/lox/pokerodds/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	ConfigFile string           `name:"config" help:"Path to HCL config file" default:"pokerodds.hcl" type:"path"`
	Debug      bool             `help:"Enable debug logging"`
	NoColor    bool             `name:"no-color" help:"Disable colored output"`
	Version    kong.VersionFlag `short:"v" help:"Show version"`
}

type CLI struct {
	Globals

	Equity  EquityCmd  `cmd:"" help:"Estimate hero equity against a hand or a range"`
	Combos  CombosCmd  `cmd:"" help:"Expand a range and count its combos"`
	Eval    EvalCmd    `cmd:"" help:"Evaluate five to seven cards"`
	Preflop PreflopCmd `cmd:"" help:"Rank every starting hand against a random hand"`
	Config  ConfigCmd  `cmd:"" help:"Manage the configuration file"`
}

// env carries the resolved configuration and output handles into commands.
type env struct {
	cfgPath string
	cfg     *config.Config
	logger  *log.Logger
	out     io.Writer
	clock   quartz.Clock
}

func newEnv(g *Globals, out, errOut io.Writer, clock quartz.Clock) (*env, error) {
	cfg, err := config.Load(g.ConfigFile)
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(errOut, log.Options{Level: cfg.LogLevel()})
	if g.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	logger.Debug("Loaded configuration", "path", g.ConfigFile,
		"trials", cfg.Simulation.Trials, "workers", cfg.Simulation.Workers)

	return &env{
		cfgPath: g.ConfigFile,
		cfg:     cfg,
		logger:  logger,
		out:     out,
		clock:   clock,
	}, nil
}

// simulator builds a simulator from config, letting explicit flags win.
func (e *env) simulator(seed *int64, workers int) *analysis.Simulator {
	opts := []analysis.Option{
		analysis.WithLogger(e.logger),
		analysis.WithClock(e.clock),
		analysis.WithWorkers(e.cfg.Simulation.Workers),
	}
	if workers > 0 {
		opts = append(opts, analysis.WithWorkers(workers))
	}
	switch {
	case seed != nil:
		opts = append(opts, analysis.WithSeed(*seed))
	case e.cfg.Simulation.Seed != nil:
		opts = append(opts, analysis.WithSeed(*e.cfg.Simulation.Seed))
	}
	return analysis.NewSimulator(opts...)
}

func (e *env) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerodds"),
		kong.Description("Monte Carlo equity calculator for Texas Hold'em hands and ranges"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	e, err := newEnv(&cli.Globals, os.Stdout, os.Stderr, quartz.NewReal())
	ctx.FatalIfErrorf(err)

	err = ctx.Run(e)
	ctx.FatalIfErrorf(err)
}

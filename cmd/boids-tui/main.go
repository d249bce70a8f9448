package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lao-tseu-is-alive/go-flock-leader/internal/tui"
	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
	"github.com/urfave/cli"
)

func main() {
	if err := makeapp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "boids-tui: %v\n", err)
		os.Exit(1)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "boids-tui"
	app.Usage = "a flock following a patrolling leader, in the terminal"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config", Usage: "JSON or TOML configuration file (the arena is refitted to the terminal)"},
		cli.Uint64Flag{Name: "seed", Usage: "random seed for reproducible runs (0 picks one)"},
		cli.StringFlag{Name: "log", Usage: "write debug logs to this file"},
	}
	app.Action = func(c *cli.Context) error {
		return run(c.String("config"), c.Uint64("seed"), c.String("log"))
	}
	return app
}

func run(configFile string, seed uint64, logFile string) error {
	// the terminal belongs to the UI, logs go to a file or nowhere
	var logger golog.Logger = golog.DiscardLogger
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = golog.New(golog.DebugLevel, f)
	}

	cfg := simulation.ConfigForArea(80, 24)
	if configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(configFile); err != nil {
			return err
		}
	}

	opts := []simulation.Option{simulation.WithLogger(logger)}
	if seed != 0 {
		opts = append(opts, simulation.WithSeed(seed))
	}
	sim, err := simulation.New(cfg, opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(sim, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

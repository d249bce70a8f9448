package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/game"
	"github.com/lao-tseu-is-alive/go-flock-leader/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"github.com/urfave/cli"
)

func main() {
	if err := makeapp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "boids: %v\n", err)
		os.Exit(1)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "boids"
	app.Usage = "a flock following a patrolling leader"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config", Usage: "JSON or TOML configuration file"},
		cli.Uint64Flag{Name: "seed", Usage: "random seed for reproducible runs (0 picks one)"},
		cli.BoolFlag{Name: "debug", Usage: "log every leader turn and resize"},
	}
	app.Action = func(c *cli.Context) error {
		return run(c.String("config"), c.Uint64("seed"), c.Bool("debug"))
	}
	return app
}

func run(configFile string, seed uint64, debug bool) error {
	ctx := context.Background()

	var logger golog.Logger = golog.DefaultLogger
	if debug {
		logger = golog.New(golog.DebugLevel, os.Stdout)
	}

	cfg := simulation.DefaultConfig()
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

	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return fmt.Errorf("failed to start actor system: %w", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	g, err := game.NewGame(ctx, system, sim)
	if err != nil {
		return err
	}

	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Boids: follow the leader")
	return ebiten.RunGame(g)
}

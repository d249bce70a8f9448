package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func TestMakeapp_ParsesFlags(t *testing.T) {
	var config, logFile string
	var seed uint64

	app := makeapp()
	app.Action = func(c *cli.Context) error {
		config, seed, logFile = c.String("config"), c.Uint64("seed"), c.String("log")
		return nil
	}
	require.NoError(t, app.Run([]string{"boids-tui", "--seed", "7", "--log", "flock.log"}))

	assert.Empty(t, config)
	assert.Equal(t, uint64(7), seed)
	assert.Equal(t, "flock.log", logFile)
}

func TestRun_RejectsBadLogPath(t *testing.T) {
	err := run("", 0, filepath.Join(t.TempDir(), "missing", "flock.log"))
	assert.ErrorContains(t, err, "failed to open log file")
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"soundtest/internal/app"
	"soundtest/internal/backend"
	"soundtest/internal/backend/ebitengine"
	"soundtest/internal/backend/headless"
	"soundtest/internal/backend/terminal"
	"soundtest/internal/tad"
)

func main() {
	cliApp := cli.NewApp()
	cliApp.Name = "soundtest"
	cliApp.Description = "An interactive menu for exercising the audio driver command interface"
	cliApp.Usage = "soundtest [options]"
	cliApp.Version = "1.0.0"
	cliApp.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "gui",
			Usage: "Run in a window instead of the terminal",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window scale factor for --gui",
			Value: 2,
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a display",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "script",
			Usage: "Comma-separated input script for headless mode, one token per frame (e.g. \"down,.,down,.,a\")",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save grid snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save grid snapshots (default: temp directory)",
		},
		cli.IntFlag{
			Name:  "songs",
			Usage: "Highest song id in the simulated audio project",
			Value: 3,
		},
		cli.IntFlag{
			Name:  "sound-effects",
			Usage: "Number of sound effects in the simulated audio project",
			Value: 8,
		},
	}
	cliApp.Action = run

	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("Error running sound test", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	project := tad.Project{
		LastSong:     uint8(c.Int("songs")),
		SoundEffects: uint8(c.Int("sound-effects")),
	}
	drv := tad.NewSimulator(project)
	a := app.New(drv, project)

	if c.Bool("headless") {
		return runHeadless(c, a)
	}

	cfg := backend.Config{
		Title: "Sound Test",
		Scale: c.Int("scale"),
	}
	if c.Bool("gui") {
		b := ebitengine.New(a.Grid, cfg)
		defer b.Cleanup()
		return b.Run(a.Frame)
	}

	cfg.ShowLogs = true
	b := terminal.New(a.Grid, cfg)
	defer b.Cleanup()
	return b.Run(a.Frame)
}

func runHeadless(c *cli.Context, a *app.App) error {
	frames := c.Int("frames")
	if frames <= 0 {
		return errors.New("headless mode requires --frames option with a positive value")
	}

	script, err := headless.ParseScript(c.String("script"))
	if err != nil {
		return err
	}

	snapshotInterval := c.Int("snapshot-interval")
	snapshotDir := c.String("snapshot-dir")
	if snapshotInterval > 0 {
		if snapshotDir == "" {
			tempDir, err := os.MkdirTemp("", "soundtest-snapshots-*")
			if err != nil {
				return fmt.Errorf("failed to create snapshot directory: %w", err)
			}
			snapshotDir = tempDir
		} else {
			if err := os.MkdirAll(snapshotDir, 0755); err != nil {
				return fmt.Errorf("failed to create snapshot directory: %w", err)
			}
		}
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))

	b := headless.New(a.Grid, headless.Config{
		Frames:           frames,
		Script:           script,
		SnapshotInterval: snapshotInterval,
		SnapshotDir:      snapshotDir,
	})
	defer b.Cleanup()
	return b.Run(a.Frame)
}

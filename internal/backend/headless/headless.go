// Package headless drives the frame loop without a display, for
// automated runs: a fixed frame budget, optionally a per-frame input
// script and periodic text snapshots of the grid.
package headless

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"soundtest/internal/backend"
	"soundtest/internal/console"
	"soundtest/internal/pad"
	"soundtest/internal/timing"
)

// Config holds configuration for a headless run.
type Config struct {
	Frames int

	// Script supplies the button set for each frame, one entry per
	// frame. Frames beyond its length get no input.
	Script []pad.Button

	// SnapshotInterval > 0 saves a grid snapshot every N frames into
	// SnapshotDir.
	SnapshotInterval int
	SnapshotDir      string
}

// Backend implements backend.Backend without rendering.
type Backend struct {
	grid       *console.Grid
	cfg        Config
	limiter    timing.Limiter
	frameCount int
}

func New(grid *console.Grid, cfg Config) *Backend {
	return &Backend{
		grid:    grid,
		cfg:     cfg,
		limiter: timing.NewNoOpLimiter(),
	}
}

// FrameCount reports how many frames were run.
func (h *Backend) FrameCount() int { return h.frameCount }

func (h *Backend) Run(frame backend.FrameFunc) error {
	slog.Info("Running headless mode",
		"frames", h.cfg.Frames,
		"script_frames", len(h.cfg.Script),
		"snapshot_interval", h.cfg.SnapshotInterval)

	for i := 0; i < h.cfg.Frames; i++ {
		var in backend.Input
		if i < len(h.cfg.Script) {
			in.Buttons = h.cfg.Script[i]
		}

		if err := frame(in); err != nil {
			if errors.Is(err, backend.ErrStop) {
				return nil
			}
			return err
		}
		h.frameCount++
		h.grid.ClearDirty()

		if h.cfg.SnapshotInterval > 0 && h.frameCount%h.cfg.SnapshotInterval == 0 {
			if err := h.saveSnapshot(); err != nil {
				slog.Error("Failed to save snapshot", "frame", h.frameCount, "error", err)
			}
		}

		h.limiter.WaitForNextFrame()
	}

	slog.Info("Headless execution completed", "frames", h.frameCount)
	return nil
}

func (h *Backend) Cleanup() error { return nil }

// saveSnapshot writes the grid as text: the characters, then the
// palette attribute of every cell as a digit.
func (h *Backend) saveSnapshot() error {
	path := filepath.Join(h.cfg.SnapshotDir, fmt.Sprintf("frame_%05d.txt", h.frameCount))

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "# Sound test menu snapshot\n")
	fmt.Fprintf(file, "# Frame: %d\n", h.frameCount)
	fmt.Fprintf(file, "#\n")
	for y := 0; y < console.Height; y++ {
		fmt.Fprintln(file, h.grid.Row(y))
	}
	fmt.Fprintf(file, "#\n# Palette attributes:\n")
	for y := 0; y < console.Height; y++ {
		for x := 0; x < console.Width; x++ {
			fmt.Fprintf(file, "%d", h.grid.Attr(x, y))
		}
		fmt.Fprintln(file)
	}

	slog.Info("Saved snapshot", "path", path)
	return nil
}

// ParseScript turns a comma-separated script into per-frame button
// sets. Each token is a button name, several names joined with '+', or
// "." for an idle frame: "down,.,down,.,a".
func ParseScript(s string) ([]pad.Button, error) {
	if s == "" {
		return nil, nil
	}

	var script []pad.Button
	for i, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" || token == "." {
			script = append(script, 0)
			continue
		}

		var buttons pad.Button
		for _, name := range strings.Split(token, "+") {
			b, ok := pad.Parse(strings.ToLower(name))
			if !ok {
				return nil, fmt.Errorf("script frame %d: unknown button %q", i, name)
			}
			buttons |= b
		}
		script = append(script, buttons)
	}
	return script, nil
}

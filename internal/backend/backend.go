// Package backend defines the platform abstraction: each backend owns
// one display target and the frame loop that drives it.
package backend

import (
	"errors"

	"soundtest/internal/pad"
)

// Input is one frame's worth of controller sampling.
type Input struct {
	// Buttons currently down. Edge detection happens in the pad layer.
	Buttons pad.Button

	// Quit is set when the user asked to leave (window close, Ctrl-C,
	// Escape).
	Quit bool
}

// ErrStop is returned by a FrameFunc to end the loop without an error.
var ErrStop = errors.New("stop requested")

// FrameFunc advances the application by one frame. Backends call it
// once per display refresh, before rendering.
type FrameFunc func(in Input) error

// Backend runs the frame loop for one display target. Backends are
// responsible for:
//   - sampling platform input and translating it to pad buttons
//   - calling the frame callback once per refresh
//   - rendering the application's character grid
type Backend interface {
	// Run drives the loop until the callback returns ErrStop (or a
	// real error), or the platform shuts down.
	Run(frame FrameFunc) error

	// Cleanup releases platform resources.
	Cleanup() error
}

// Config holds the configuration shared by backends. Backends may
// ignore unsupported fields.
type Config struct {
	Title    string
	Scale    int
	ShowLogs bool
}

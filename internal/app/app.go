// Package app wires the menu, the driver and the display grid into the
// per-frame update: read input, update the menu, pump the driver.
package app

import (
	"soundtest/internal/backend"
	"soundtest/internal/console"
	"soundtest/internal/menu"
	"soundtest/internal/pad"
	"soundtest/internal/tad"
)

// App owns all mutable state; every mutation happens on the frame loop.
type App struct {
	Grid *console.Grid
	Menu *menu.Menu

	pad pad.State
	drv tad.Driver
}

func New(drv tad.Driver, project tad.Project) *App {
	grid := console.New()
	return &App{
		Grid: grid,
		Menu: menu.New(drv, grid, project),
		drv:  drv,
	}
}

// Frame advances the application by one display refresh. It is the
// backend.FrameFunc for every backend.
func (a *App) Frame(in backend.Input) error {
	if in.Quit {
		return backend.ErrStop
	}

	a.pad.Update(in.Buttons)
	a.Menu.Process(&a.pad)
	a.drv.Process()

	return nil
}

// Package ebitengine renders the menu grid in a window using Ebitengine.
// Ebitengine's fixed 60 Hz Update is used as the vertical-blank source,
// so no separate frame limiter is needed.
package ebitengine

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"soundtest/internal/backend"
	"soundtest/internal/console"
	"soundtest/internal/input"
	"soundtest/internal/pad"
)

// Cell metrics of basicfont.Face7x13.
const (
	cellWidth  = 7
	cellHeight = 13
	cellAscent = 11
)

// Backend implements backend.Backend on an Ebitengine window.
type Backend struct {
	grid *console.Grid
	cfg  backend.Config
}

func New(grid *console.Grid, cfg backend.Config) *Backend {
	return &Backend{grid: grid, cfg: cfg}
}

// Run opens the window and drives the frame loop.
func (b *Backend) Run(frame backend.FrameFunc) error {
	scale := b.cfg.Scale
	if scale < 1 {
		scale = 2
	}

	ebiten.SetWindowTitle(b.cfg.Title)
	ebiten.SetWindowSize(console.Width*cellWidth*scale, console.Height*cellHeight*scale)

	g := &game{
		grid:   b.grid,
		frame:  frame,
		face:   basicfont.Face7x13,
		keymap: buildKeyMapping(),
	}
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return nil
}

func (b *Backend) Cleanup() error { return nil }

type game struct {
	grid   *console.Grid
	frame  backend.FrameFunc
	face   font.Face
	keymap map[ebiten.Key]pad.Button
}

// Update samples the keyboard and advances the application by one
// frame.
func (g *game) Update() error {
	in := backend.Input{Buttons: g.readButtons()}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		in.Quit = true
	}

	if err := g.frame(in); err != nil {
		if errors.Is(err, backend.ErrStop) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *game) readButtons() pad.Button {
	var down pad.Button
	for key, b := range g.keymap {
		if ebiten.IsKeyPressed(key) {
			down |= b
		}
	}
	return down
}

var palColors = map[console.Palette]color.Color{
	console.PalNormal:                  color.White,
	console.PalSelected:                color.RGBA{R: 0xff, G: 0xe0, B: 0x40, A: 0xff},
	console.PalState:                   color.RGBA{R: 0x40, G: 0xd0, B: 0xff, A: 0xff},
	console.PalDisabledChannel:         color.RGBA{R: 0x70, G: 0x70, B: 0x70, A: 0xff},
	console.PalSelectedEnabledChannel:  color.RGBA{R: 0x40, G: 0xff, B: 0x60, A: 0xff},
	console.PalSelectedDisabledChannel: color.RGBA{R: 0xff, G: 0x50, B: 0x50, A: 0xff},
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	for y := 0; y < console.Height; y++ {
		for x := 0; x < console.Width; x++ {
			ch := g.grid.CharAt(x, y)
			if ch == ' ' {
				continue
			}
			clr, ok := palColors[g.grid.Attr(x, y)]
			if !ok {
				clr = color.White
			}
			text.Draw(screen, string(rune(ch)), g.face, x*cellWidth, y*cellHeight+cellAscent, clr)
		}
	}
	g.grid.ClearDirty()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return console.Width * cellWidth, console.Height * cellHeight
}

// ebitenKeyNames converts Ebitengine keys to the key names used by the
// default bindings.
var ebitenKeyNames = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "Up",
	ebiten.KeyArrowDown:  "Down",
	ebiten.KeyArrowLeft:  "Left",
	ebiten.KeyArrowRight: "Right",
	ebiten.KeyEnter:      "Enter",
	ebiten.KeyW:          "w",
	ebiten.KeyS:          "s",
	ebiten.KeyA:          "a",
	ebiten.KeyD:          "d",
	ebiten.KeyZ:          "z",
	ebiten.KeyX:          "x",
	ebiten.KeyC:          "c",
}

func buildKeyMapping() map[ebiten.Key]pad.Button {
	mapping := make(map[ebiten.Key]pad.Button)
	for key, name := range ebitenKeyNames {
		if b, ok := input.GetDefaultMapping(name); ok {
			mapping[key] = b
		}
	}
	return mapping
}

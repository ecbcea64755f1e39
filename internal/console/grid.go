// Package console provides the fixed-size text grid the menu renders
// into. Each cell holds a character and a foreground palette attribute;
// backends read the grid and draw it however they like.
//
// String draws go through the current text palette (set it before
// drawing, set it back after). Highlight and channel-mask rendering
// bypass the string path and poke attributes directly; any write marks
// the grid dirty so backends know a flush is needed.
package console

import "fmt"

const (
	Width  = 32
	Height = 28
)

// Palette selects the foreground color of a cell.
type Palette uint8

const (
	PalNormal Palette = iota
	PalSelected
	PalState
	PalDisabledChannel
	PalSelectedEnabledChannel
	PalSelectedDisabledChannel

	NumPalettes
)

// An enabled, unselected channel digit uses the normal text palette.
const PalEnabledChannel = PalNormal

// Cell is one character cell.
type Cell struct {
	Ch  byte
	Pal Palette
}

// Grid is the character grid. The zero value is not usable, call New.
type Grid struct {
	cells   [Width * Height]Cell
	textPal Palette
	dirty   bool
}

func New() *Grid {
	g := &Grid{dirty: true}
	for i := range g.cells {
		g.cells[i].Ch = ' '
	}
	return g
}

// SetTextPalette sets the palette used by subsequent DrawText calls.
func (g *Grid) SetTextPalette(p Palette) {
	if p >= NumPalettes {
		return
	}
	g.textPal = p
}

func (g *Grid) TextPalette() Palette { return g.textPal }

// DrawText writes s at (x, y) using the current text palette.
// Cells outside the grid are silently dropped.
func (g *Grid) DrawText(x, y int, s string) {
	if y < 0 || y >= Height {
		return
	}
	for i := 0; i < len(s); i++ {
		cx := x + i
		if cx < 0 || cx >= Width {
			continue
		}
		g.cells[y*Width+cx] = Cell{Ch: s[i], Pal: g.textPal}
	}
	g.dirty = true
}

func (g *Grid) DrawTextf(x, y int, format string, args ...any) {
	g.DrawText(x, y, fmt.Sprintf(format, args...))
}

// SetAttr changes a single cell's palette without touching its
// character. Out-of-range coordinates are silently ignored.
func (g *Grid) SetAttr(x, y int, p Palette) {
	if x < 0 || x >= Width || y < 0 || y >= Height || p >= NumPalettes {
		return
	}
	g.cells[y*Width+x].Pal = p
	g.dirty = true
}

func (g *Grid) Attr(x, y int) Palette {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return PalNormal
	}
	return g.cells[y*Width+x].Pal
}

func (g *Grid) CharAt(x, y int) byte {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return ' '
	}
	return g.cells[y*Width+x].Ch
}

// Row returns the characters of row y as a string.
func (g *Grid) Row(y int) string {
	if y < 0 || y >= Height {
		return ""
	}
	buf := make([]byte, Width)
	for x := 0; x < Width; x++ {
		buf[x] = g.cells[y*Width+x].Ch
	}
	return string(buf)
}

// Dirty reports whether the grid changed since the last ClearDirty.
func (g *Grid) Dirty() bool { return g.dirty }

func (g *Grid) MarkDirty() { g.dirty = true }

func (g *Grid) ClearDirty() { g.dirty = false }

// Package input maps key names to controller buttons. Backends
// translate their platform key events to these names so every backend
// shares one set of bindings.
package input

import "soundtest/internal/pad"

// DefaultKeyMap provides the default key bindings.
var DefaultKeyMap = map[string]pad.Button{
	"Up":    pad.Up,
	"Down":  pad.Down,
	"Left":  pad.Left,
	"Right": pad.Right,

	// Alternative d-pad (WASD)
	"w": pad.Up,
	"s": pad.Down,
	"a": pad.Left,
	"d": pad.Right,

	"z":     pad.B,
	"x":     pad.A,
	"c":     pad.X,
	"Enter": pad.Start,
}

// GetDefaultMapping returns the default button for a key, if one exists.
func GetDefaultMapping(key string) (pad.Button, bool) {
	b, ok := DefaultKeyMap[key]
	return b, ok
}

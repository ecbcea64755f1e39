// Package pad models the game controller as a bitmask over a fixed
// button set, with edge ("newly pressed this frame") and level
// ("currently held") reads.
package pad

import "strings"

// Button is a bitmask over the controller's buttons.
type Button uint8

const (
	Up Button = 1 << iota
	Down
	Left
	Right
	A
	B
	X
	Start
)

var buttonNames = []struct {
	b    Button
	name string
}{
	{Up, "up"},
	{Down, "down"},
	{Left, "left"},
	{Right, "right"},
	{A, "a"},
	{B, "b"},
	{X, "x"},
	{Start, "start"},
}

// Parse returns the button for a lowercase name ("up", "a", "start").
func Parse(name string) (Button, bool) {
	for _, bn := range buttonNames {
		if bn.name == name {
			return bn.b, true
		}
	}
	return 0, false
}

func (b Button) String() string {
	if b == 0 {
		return "none"
	}
	var parts []string
	for _, bn := range buttonNames {
		if b&bn.b != 0 {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "+")
}

// State tracks button state across frames so callers can distinguish a
// fresh press from a button that is simply still down.
type State struct {
	held    Button
	pressed Button
}

// Update feeds the set of buttons that are down this frame.
func (s *State) Update(down Button) {
	s.pressed = down &^ s.held
	s.held = down
}

// Held returns the buttons currently down.
func (s *State) Held() Button { return s.held }

// Pressed returns the buttons that went down this frame.
func (s *State) Pressed() Button { return s.pressed }

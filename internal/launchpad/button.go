package launchpad

import "fmt"

// Button identifies a physical control on a Launchpad.
// The set of implementations is closed: GridButton, ControlButton and Fader.
type Button interface {
	fmt.Stringer
	isButton()
}

// GridButton is a pad in the main grid. X and Y are zero-based.
type GridButton struct {
	X, Y int
}

// ControlButton is one of the eight dedicated top/side buttons (0-7)
type ControlButton struct {
	Index int
}

// Fader is one of the eight virtual faders on the MK2 (0-7)
type Fader struct {
	Index int
}

func (GridButton) isButton()    {}
func (ControlButton) isButton() {}
func (Fader) isButton()         {}

func (b GridButton) String() string {
	return fmt.Sprintf("grid(%d,%d)", b.X, b.Y)
}

func (b ControlButton) String() string {
	return fmt.Sprintf("control(%d)", b.Index)
}

func (b Fader) String() string {
	return fmt.Sprintf("fader(%d)", b.Index)
}

package window

import (
	"fmt"
	"sync"

	"github.com/PixPMusic/launchdecode/internal/launchpad"
	"github.com/PixPMusic/launchdecode/internal/midi"
)

const gridCells = 9

// cell is a position in the monitor's 9x9 grid, row 0 at the top
type cell struct {
	row, col int
}

// PadState tracks what the monitor shows: which cells are held, how often
// each was pressed, the fader values and the recent event log.
type PadState struct {
	mu      sync.Mutex
	held    map[cell]bool
	presses map[cell]int
	labels  map[cell]launchpad.Button
	faders  [8]uint8
	log     []string
	history int
}

// NewPadState creates an empty state that keeps the last history log lines
func NewPadState(history int) *PadState {
	if history <= 0 {
		history = 1
	}
	return &PadState{
		held:    make(map[cell]bool),
		presses: make(map[cell]int),
		labels:  make(map[cell]launchpad.Button),
		history: history,
	}
}

// Apply records a decoded event
func (s *PadState) Apply(e midi.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg := e.Message.(type) {
	case launchpad.Press:
		if c, ok := buttonCell(e.Dialect, msg.Button); ok {
			s.held[c] = true
			s.presses[c]++
			s.labels[c] = msg.Button
		}
	case launchpad.Release:
		if c, ok := buttonCell(e.Dialect, msg.Button); ok {
			delete(s.held, c)
		}
	case launchpad.FaderChange:
		if msg.Fader.Index >= 0 && msg.Fader.Index < len(s.faders) {
			s.faders[msg.Fader.Index] = msg.Value
		}
	}

	s.log = append(s.log, fmt.Sprintf("%8d  %-12s %v", e.Timestamp, e.Device, e.Message))
	if over := len(s.log) - s.history; over > 0 {
		s.log = append(s.log[:0], s.log[over:]...)
	}
}

// Held reports whether the button shown at row, col is currently down
func (s *PadState) Held(row, col int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held[cell{row, col}]
}

// Presses returns how many times the button at row, col has been pressed
func (s *PadState) Presses(row, col int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presses[cell{row, col}]
}

// Label names the button last pressed at row, col
func (s *PadState) Label(row, col int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.labels[cell{row, col}]; ok {
		return b.String()
	}
	return fmt.Sprintf("cell(%d,%d)", row, col)
}

// Fader returns the last value reported for a fader
func (s *PadState) Fader(index int) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.faders) {
		return 0
	}
	return s.faders[index]
}

// Log returns a copy of the event log, oldest first
func (s *PadState) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.log...)
}

// buttonCell places a button in the monitor grid. Row 0 holds the control
// buttons, rows 1-8 the pads with the scene column at col 8. Grids that
// count Y from the bottom are flipped so the bottom row always lands on
// row 8; their ninth row (Y 8) shares row 0 with the control buttons,
// which is where it sits on the device.
func buttonCell(dialect launchpad.Dialect, b launchpad.Button) (cell, bool) {
	var c cell
	switch b := b.(type) {
	case launchpad.ControlButton:
		c = cell{row: 0, col: b.Index}
	case launchpad.GridButton:
		if dialect.BottomOrigin() {
			c = cell{row: gridCells - 1 - b.Y, col: b.X}
		} else {
			c = cell{row: b.Y + 1, col: b.X}
		}
	default:
		return cell{}, false
	}

	if c.row < 0 || c.row >= gridCells || c.col < 0 || c.col >= gridCells {
		return cell{}, false
	}
	return c, true
}

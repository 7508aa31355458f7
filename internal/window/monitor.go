package window

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/launchdecode/internal/midi"
)

var (
	colorIdle = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xFF}
	colorHeld = color.NRGBA{R: 0x20, G: 0xD0, B: 0x50, A: 0xFF}
)

// Monitor is a window that shows decoded Launchpad input as it arrives
type Monitor struct {
	window fyne.Window
	state  *PadState

	cells  [gridCells][gridCells]*canvas.Rectangle
	taps   [gridCells][gridCells]*tappableRect
	faders [8]*widget.ProgressBar
	events *widget.List
	status *widget.Label
}

// NewMonitor creates the monitor window
func NewMonitor(app fyne.App, state *PadState) *Monitor {
	win := app.NewWindow("launchdecode")

	m := &Monitor{
		window: win,
		state:  state,
	}

	m.setupUI()

	win.Resize(fyne.NewSize(820, 480))
	win.CenterOnScreen()
	return m
}

// Show brings the window up
func (m *Monitor) Show() {
	m.window.Show()
}

// Window returns the underlying fyne window
func (m *Monitor) Window() fyne.Window {
	return m.window
}

// Handle applies an event and schedules a redraw. It may be called from
// any goroutine.
func (m *Monitor) Handle(e midi.Event) {
	m.state.Apply(e)
	fyne.Do(m.refresh)
}

// ShowError puts a decode failure in the status line
func (m *Monitor) ShowError(device string, err error) {
	fyne.Do(func() {
		m.status.SetText(fmt.Sprintf("%s stopped: %v", device, err))
	})
}

func (m *Monitor) setupUI() {
	grid := container.NewGridWithColumns(9)
	for row := 0; row < gridCells; row++ {
		for col := 0; col < gridCells; col++ {
			rect := canvas.NewRectangle(colorIdle)
			rect.SetMinSize(fyne.NewSize(36, 36))
			rect.CornerRadius = 4

			tap := newTappableRect(rect, func() {
				m.status.SetText(fmt.Sprintf("%s pressed %d times", m.state.Label(row, col), m.state.Presses(row, col)))
			})
			m.cells[row][col] = rect
			m.taps[row][col] = tap
			grid.Add(tap)
		}
	}

	faders := container.NewVBox(widget.NewLabel("Faders"))
	for i := range m.faders {
		bar := widget.NewProgressBar()
		bar.Max = 127
		m.faders[i] = bar
		faders.Add(bar)
	}

	m.events = widget.NewList(
		func() int { return len(m.state.Log()) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			log := m.state.Log()
			if id < len(log) {
				obj.(*widget.Label).SetText(log[id])
			}
		},
	)

	m.status = widget.NewLabel("waiting for input")

	left := container.NewVBox(grid, faders)
	split := container.NewHSplit(left, m.events)
	split.Offset = 0.45

	m.window.SetContent(container.NewBorder(nil, m.status, nil, nil, split))
}

// refresh redraws everything from the state; must run on the fyne thread
func (m *Monitor) refresh() {
	for row := range m.cells {
		for col, rect := range m.cells[row] {
			fill := colorIdle
			if m.state.Held(row, col) {
				fill = colorHeld
			}
			if rect.FillColor != fill {
				rect.FillColor = fill
				rect.Refresh()
			}
		}
	}

	for i, bar := range m.faders {
		bar.SetValue(float64(m.state.Fader(i)))
	}

	m.events.Refresh()
	if len(m.state.Log()) > 0 {
		m.events.ScrollToBottom()
	}
}

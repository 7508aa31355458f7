package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

// Callbacks for tray menu actions
type Callbacks struct {
	OnOpen    func()
	OnInquire func()
	OnQuit    func()
}

// Setup initializes the system tray using Fyne's built-in support.
// It reports false when the app is not running on a desktop driver.
func Setup(app fyne.App, callbacks Callbacks) bool {
	desk, ok := app.(desktop.App)
	if !ok {
		return false
	}

	desk.SetSystemTrayMenu(Menu(callbacks))
	desk.SetSystemTrayIcon(theme.GridIcon())
	return true
}

// Menu builds the tray menu
func Menu(callbacks Callbacks) *fyne.Menu {
	openItem := fyne.NewMenuItem("Show Monitor", func() {
		if callbacks.OnOpen != nil {
			callbacks.OnOpen()
		}
	})

	inquireItem := fyne.NewMenuItem("Request Device Info", func() {
		if callbacks.OnInquire != nil {
			callbacks.OnInquire()
		}
	})
	inquireItem.Disabled = callbacks.OnInquire == nil

	quitItem := fyne.NewMenuItem("Quit", func() {
		if callbacks.OnQuit != nil {
			callbacks.OnQuit()
		}
	})

	return fyne.NewMenu("launchdecode",
		openItem,
		inquireItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)
}

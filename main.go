package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/PixPMusic/launchdecode/internal/config"
	"github.com/PixPMusic/launchdecode/internal/launchpad"
	"github.com/PixPMusic/launchdecode/internal/midi"
	"github.com/PixPMusic/launchdecode/internal/tray"
	"github.com/PixPMusic/launchdecode/internal/window"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "config file (.json or .yaml), defaults to the user config dir")
	debug := flag.Bool("debug", false, "development logging")
	monitor := flag.Bool("monitor", false, "open the monitor window")
	list := flag.Bool("list", false, "list MIDI ports and exit")
	inquire := flag.Bool("inquire", false, "request device and version info on startup")
	flag.Parse()

	logger := newLogger(*debug)
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize MIDI manager
	midiManager := midi.NewManager(logger)
	defer midiManager.Close()

	if *list {
		printPorts(midiManager)
		return
	}

	devices := cfg.Devices
	if len(devices) == 0 {
		devices = detectDevices(midiManager.ListInPorts())
		logger.Info("no devices configured, using detected ports", zap.Int("found", len(devices)))
	}
	if len(devices) == 0 {
		logger.Fatal("no Launchpad found; add a device to the config or use -list")
	}

	errs := make(chan error, len(devices))
	onEvent := logEvent(logger)
	onError := func(device string, err error) {
		errs <- fmt.Errorf("%s: %w", device, err)
	}

	var (
		fyneApp fyne.App
		mon     *window.Monitor
	)
	if *monitor {
		fyneApp = app.NewWithID("com.pixpmusic.launchdecode")
		mon = window.NewMonitor(fyneApp, window.NewPadState(cfg.MonitorHistory))
		onEvent = func(e midi.Event) {
			logEvent(logger)(e)
			mon.Handle(e)
		}
		onError = func(device string, err error) {
			mon.ShowError(device, err)
			errs <- fmt.Errorf("%s: %w", device, err)
		}
	}

	listeners := startListeners(logger, midiManager, devices, onEvent, onError)
	defer func() {
		for _, l := range listeners {
			l.Stop()
		}
	}()
	if len(listeners) == 0 {
		logger.Fatal("no listener could be started")
	}

	requestInquiries := func() {
		for _, device := range devices {
			requestDeviceInquiries(logger, midiManager, device)
		}
	}
	if *inquire {
		requestInquiries()
	}

	if mon != nil {
		tray.Setup(fyneApp, tray.Callbacks{
			OnOpen:    mon.Show,
			OnInquire: requestInquiries,
			OnQuit:    fyneApp.Quit,
		})
		mon.Show()

		// Run the Fyne app (this blocks until app.Quit is called)
		fyneApp.Run()
		return
	}

	waitForExit(logger, errs, len(listeners))
}

func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

func logEvent(logger *zap.Logger) midi.EventCallback {
	return func(e midi.Event) {
		logger.Info("event",
			zap.String("device", e.Device),
			zap.Uint64("timestamp", e.Timestamp),
			zap.Stringer("message", e.Message),
		)
	}
}

func printPorts(m *midi.Manager) {
	fmt.Println("Inputs:")
	for _, name := range m.ListInPorts() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("Outputs:")
	for _, name := range m.ListOutPorts() {
		fmt.Printf("  %s\n", name)
	}
}

// detectDevices builds a device per input port that matches a dialect's
// keyword. More specific keywords are tried first because "Launchpad Mini"
// is also part of the Mini MK3's port name.
func detectDevices(ports []string) []config.DeviceConfig {
	order := []launchpad.Dialect{launchpad.DialectMiniMK3, launchpad.DialectMK2, launchpad.DialectMini}
	claimed := make(map[string]bool)

	var devices []config.DeviceConfig
	for _, dialect := range order {
		var free []string
		for _, port := range ports {
			if !claimed[port] {
				free = append(free, port)
			}
		}

		port, ok := midi.MatchPort(free, dialect.DeviceKeyword())
		if !ok {
			continue
		}
		claimed[port] = true

		device := config.NewDeviceConfig(dialect.ConnectionName(), dialect)
		device.InPort = port
		devices = append(devices, device)
	}
	return devices
}

func startListeners(logger *zap.Logger, m *midi.Manager, devices []config.DeviceConfig, onEvent midi.EventCallback, onError midi.ErrorCallback) []*midi.Listener {
	var listeners []*midi.Listener
	for _, device := range devices {
		log := logger.With(zap.String("device", device.Name))

		decoder, err := device.Decoder()
		if err != nil {
			log.Error("invalid device", zap.Error(err))
			continue
		}

		port, err := m.ResolveInPort(device.InPort, decoder.Dialect())
		if err != nil {
			log.Error("failed to find input port", zap.Error(err))
			continue
		}

		l, err := m.Listen(port, device.Name, decoder, onEvent, onError)
		if err != nil {
			log.Error("failed to start listener", zap.Error(err))
			continue
		}
		listeners = append(listeners, l)
	}
	return listeners
}

func requestDeviceInquiries(logger *zap.Logger, m *midi.Manager, device config.DeviceConfig) {
	log := logger.With(zap.String("device", device.Name))

	dialect, err := launchpad.ParseDialect(device.Dialect)
	if err != nil {
		log.Error("invalid device", zap.Error(err))
		return
	}

	port, err := m.ResolveOutPort(device.OutPort, dialect)
	if err != nil {
		log.Warn("no output port for inquiries", zap.Error(err))
		return
	}
	if err := m.RequestInquiries(port); err != nil {
		log.Error("failed to request inquiries", zap.Error(err))
	}
}

// waitForExit blocks until interrupted or until every listener has failed
func waitForExit(logger *zap.Logger, errs <-chan error, running int) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for running > 0 {
		select {
		case s := <-sig:
			logger.Info("shutting down", zap.Stringer("signal", s))
			return
		case err := <-errs:
			running--
			logger.Error("listener stopped", zap.Error(err), zap.Int("remaining", running))
		}
	}
	logger.Sync()
	os.Exit(1)
}

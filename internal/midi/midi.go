package midi

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PixPMusic/launchdecode/internal/launchpad"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
	"go.uber.org/zap"
)

// ErrPortNotFound is returned when no MIDI port matches a name or keyword
var ErrPortNotFound = errors.New("port not found")

// Manager handles MIDI device discovery and management
type Manager struct {
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewManager creates a new MIDI manager
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ins := midi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// GetInPort returns an input port by name
func (m *Manager) GetInPort(name string) (drivers.In, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("input %w: %s", ErrPortNotFound, name)
}

// GetOutPort returns an output port by name
func (m *Manager) GetOutPort(name string) (drivers.Out, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, out := range midi.GetOutPorts() {
		if out.String() == name {
			return out, nil
		}
	}
	return nil, fmt.Errorf("output %w: %s", ErrPortNotFound, name)
}

// ResolveInPort picks the input port for a device: the configured name if
// there is one, otherwise the first port containing the dialect's keyword.
func (m *Manager) ResolveInPort(name string, dialect launchpad.Dialect) (string, error) {
	if name != "" {
		if _, err := m.GetInPort(name); err != nil {
			return "", err
		}
		return name, nil
	}

	port, ok := MatchPort(m.ListInPorts(), dialect.DeviceKeyword())
	if !ok {
		return "", fmt.Errorf("input %w for %s (keyword %q)", ErrPortNotFound, dialect, dialect.DeviceKeyword())
	}
	return port, nil
}

// ResolveOutPort is ResolveInPort for output ports
func (m *Manager) ResolveOutPort(name string, dialect launchpad.Dialect) (string, error) {
	if name != "" {
		if _, err := m.GetOutPort(name); err != nil {
			return "", err
		}
		return name, nil
	}

	port, ok := MatchPort(m.ListOutPorts(), dialect.DeviceKeyword())
	if !ok {
		return "", fmt.Errorf("output %w for %s (keyword %q)", ErrPortNotFound, dialect, dialect.DeviceKeyword())
	}
	return port, nil
}

// MatchPort returns the first port name containing keyword, ignoring case
func MatchPort(ports []string, keyword string) (string, bool) {
	if keyword == "" {
		return "", false
	}
	keyword = strings.ToLower(keyword)
	for _, name := range ports {
		if strings.Contains(strings.ToLower(name), keyword) {
			return name, true
		}
	}
	return "", false
}

// RequestInquiries asks the device on the given output port to report its
// identity and firmware versions. The replies arrive on the input port.
func (m *Manager) RequestInquiries(outPortName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	outPort := m.findOutPort(outPortName)
	if outPort == nil {
		return fmt.Errorf("output %w: %s", ErrPortNotFound, outPortName)
	}

	send, err := midi.SendTo(outPort)
	if err != nil {
		return fmt.Errorf("failed to create sender: %w", err)
	}
	if err := SendInquiries(send); err != nil {
		return err
	}

	m.logger.Debug("sent inquiry requests", zap.String("port", outPortName))
	return nil
}

// SendInquiries writes the device and version inquiry requests to send
func SendInquiries(send func(midi.Message) error) error {
	if err := send(midi.Message(launchpad.DeviceInquiryRequest)); err != nil {
		return fmt.Errorf("failed to send device inquiry: %w", err)
	}
	if err := send(midi.Message(launchpad.VersionInquiryRequest)); err != nil {
		return fmt.Errorf("failed to send version inquiry: %w", err)
	}
	return nil
}

func (m *Manager) findOutPort(name string) drivers.Out {
	outs := midi.GetOutPorts()
	for _, out := range outs {
		if out.String() == name {
			return out
		}
	}
	return nil
}

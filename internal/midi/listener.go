package midi

import (
	"fmt"
	"sync"

	"github.com/PixPMusic/launchdecode/internal/launchpad"
	"gitlab.com/gomidi/midi/v2"
	"go.uber.org/zap"
)

// Event is a decoded message from a named device
type Event struct {
	Device    string
	Dialect   launchpad.Dialect
	Timestamp uint64 // milliseconds, as reported by the driver
	Message   launchpad.Message
}

// EventCallback is called for every decoded message
type EventCallback func(Event)

// ErrorCallback is called once when decoding fails. The listener has
// already stopped by then.
type ErrorCallback func(device string, err error)

// Listener feeds one input port into a decoder
type Listener struct {
	device  string
	decoder *launchpad.Decoder
	onEvent EventCallback
	onError ErrorCallback
	logger  *zap.Logger

	mu      sync.Mutex
	stop    func()
	stopped bool
}

func newListener(device string, decoder *launchpad.Decoder, onEvent EventCallback, onError ErrorCallback, logger *zap.Logger) *Listener {
	return &Listener{
		device:  device,
		decoder: decoder,
		onEvent: onEvent,
		onError: onError,
		logger:  logger.With(zap.String("device", device), zap.Stringer("dialect", decoder.Dialect())),
	}
}

// Listen begins decoding MIDI input from the specified port. Sysex is
// enabled so inquiry replies reach the decoder.
func (m *Manager) Listen(inPortName, device string, decoder *launchpad.Decoder, onEvent EventCallback, onError ErrorCallback) (*Listener, error) {
	inPort, err := m.GetInPort(inPortName)
	if err != nil {
		return nil, err
	}

	l := newListener(device, decoder, onEvent, onError, m.logger)

	// hold the lock so a message arriving before ListenTo returns cannot
	// try to stop a listener that has no stop func yet
	l.mu.Lock()
	defer l.mu.Unlock()

	stop, err := midi.ListenTo(inPort, l.receive, midi.UseSysEx())
	if err != nil {
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}
	l.stop = stop

	l.logger.Info("listening", zap.String("port", inPortName), zap.Stringer("policy", decoder.Policy()))
	return l, nil
}

// Stop ends the listener. It is safe to call more than once.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

func (l *Listener) stopLocked() {
	if l.stopped {
		return
	}
	l.stopped = true
	if l.stop != nil {
		l.stop()
	}
	l.logger.Info("stopped listening")
}

// Stopped reports whether the listener has been stopped
func (l *Listener) Stopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

// receive is the driver callback
func (l *Listener) receive(msg midi.Message, timestampms int32) {
	if l.Stopped() {
		return
	}

	var timestamp uint64
	if timestampms > 0 {
		timestamp = uint64(timestampms)
	}

	decoded, err := l.decoder.Decode(timestamp, []byte(msg))
	if err != nil {
		l.fail(err)
		return
	}

	l.logger.Debug("decoded", zap.Stringer("message", decoded), zap.Uint64("timestamp", timestamp))
	if l.onEvent != nil {
		l.onEvent(Event{
			Device:    l.device,
			Dialect:   l.decoder.Dialect(),
			Timestamp: timestamp,
			Message:   decoded,
		})
	}
}

// fail stops the stream: a decode error means we no longer understand what
// the device is sending.
func (l *Listener) fail(err error) {
	l.logger.Error("decode failed, stopping listener", zap.Error(err))

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	stop := l.stop
	l.mu.Unlock()

	// the driver may not allow stopping from inside its own callback
	if stop != nil {
		go stop()
	}

	if l.onError != nil {
		l.onError(l.device, err)
	}
}

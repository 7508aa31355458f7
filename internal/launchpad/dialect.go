package launchpad

import (
	"fmt"
	"strings"
)

// Dialect identifies a Launchpad model and the MIDI vocabulary it speaks
type Dialect string

const (
	DialectMini    Dialect = "mini"     // Launchpad Mini (and S): hex grid, no sysex replies
	DialectMiniMK3 Dialect = "mini-mk3" // Launchpad Mini MK3: programmer-mode grid, degrades on unknown input
	DialectMK2     Dialect = "mk2"      // Launchpad MK2: session grid, faders, sysex replies
)

// Dialects lists every supported dialect
var Dialects = []Dialect{DialectMini, DialectMiniMK3, DialectMK2}

// Policy decides what happens to input a dialect does not recognise
type Policy int

const (
	// FailFast returns an error for unrecognised input; the stream is
	// assumed to be well formed so the caller should stop reading it.
	FailFast Policy = iota
	// Degrade turns unrecognised input into an Unsupported message.
	Degrade
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case Degrade:
		return "degrade"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a policy name back into a Policy
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail-fast", "failfast":
		return FailFast, nil
	case "degrade":
		return Degrade, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// dispatchMode decides how a buffer is routed to the short or sysex decoder
type dispatchMode int

const (
	// dispatchByLength sends 3 byte buffers to the short decoder and
	// everything else to the sysex decoder.
	dispatchByLength dispatchMode = iota
	// dispatchMatchFirst runs the dialect's reply matchers on every buffer before
	// falling back to dispatchByLength.
	dispatchMatchFirst
)

// dialectTable holds everything that differs between dialects
type dialectTable struct {
	keyword    string
	connection string

	grid       gridTransform
	dispatch   dispatchMode
	matchers   []replyMatcher
	sysex      sysexShape
	policy     Policy
	faders     bool
	textLoopCC bool

	// bottomOrigin is set when GridButton.Y counts rows from the bottom
	bottomOrigin bool
}

var dialectTables = map[Dialect]*dialectTable{
	DialectMini: {
		keyword:    "Launchpad Mini",
		connection: "launchdecode Mini Input",
		grid:       hexGrid,
		dispatch:   dispatchByLength,
		policy:     FailFast,
	},
	DialectMiniMK3: {
		keyword:    "Launchpad Mini MK3 MIDI 2",
		connection: "launchdecode Mini MK3 Input",
		grid:       decimalGrid,
		dispatch:   dispatchMatchFirst,
		matchers:   []replyMatcher{matchDeviceInquiry, matchVersionInquiry},
		policy:     Degrade,
		textLoopCC: true,

		bottomOrigin: true,
	},
	DialectMK2: {
		keyword:    "Launchpad MK2",
		connection: "launchdecode MK2 Input",
		grid:       sessionGrid,
		dispatch:   dispatchByLength,
		sysex:      shapeTextLoop | shapeDeviceInquiry | shapeVersionInquiry,
		policy:     FailFast,
		faders:     true,
	},
}

func (d Dialect) String() string {
	return string(d)
}

// ParseDialect converts a dialect name into a Dialect
func ParseDialect(s string) (Dialect, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := dialectTables[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, s)
	}
	return d, nil
}

func (d Dialect) table() (*dialectTable, error) {
	t, ok := dialectTables[d]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, string(d))
	}
	return t, nil
}

// DeviceKeyword is the substring that identifies the device's MIDI input port
func (d Dialect) DeviceKeyword() string {
	if t, err := d.table(); err == nil {
		return t.keyword
	}
	return ""
}

// ConnectionName is the display name used when connecting to the device
func (d Dialect) ConnectionName() string {
	if t, err := d.table(); err == nil {
		return t.connection
	}
	return ""
}

// BottomOrigin reports whether the dialect's grid Y counts up from the
// bottom row. The Mini and MK2 count down from the top.
func (d Dialect) BottomOrigin() bool {
	if t, err := d.table(); err == nil {
		return t.bottomOrigin
	}
	return false
}

// DefaultPolicy is the failure policy the dialect has always used
func (d Dialect) DefaultPolicy() Policy {
	if t, err := d.table(); err == nil {
		return t.policy
	}
	return FailFast
}

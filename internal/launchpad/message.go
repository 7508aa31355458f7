package launchpad

import "fmt"

// Message is a decoded input event.
// Which variants can appear depends on the dialect that decoded it:
//
//	Mini:     Press, Release
//	Mini MK3: Press, Release, TextEndedOrLooped, DeviceInquiry, VersionInquiry, Unsupported
//	MK2:      Press, Release, TextEndedOrLooped, DeviceInquiry, VersionInquiry, FaderChange
type Message interface {
	fmt.Stringer
	isMessage()
}

// Press is sent when a button goes down
type Press struct {
	Button Button
}

// Release is sent when a button comes back up
type Release struct {
	Button Button
}

// TextEndedOrLooped is emitted after a text scroll ends or loops
type TextEndedOrLooped struct{}

// DeviceInquiry is the response to a universal device inquiry request
type DeviceInquiry struct {
	DeviceID         uint8
	FirmwareRevision uint32
}

// VersionInquiry is the response to a Novation version inquiry request
type VersionInquiry struct {
	BootloaderVersion uint32
	FirmwareVersion   uint32
}

// FaderChange reports a new value for one of the MK2's virtual faders
type FaderChange struct {
	Fader Fader
	Value uint8
}

// Unsupported marks input the device is known to send but that has no
// mapping. Only returned under the Degrade policy.
type Unsupported struct{}

func (Press) isMessage()             {}
func (Release) isMessage()           {}
func (TextEndedOrLooped) isMessage() {}
func (DeviceInquiry) isMessage()     {}
func (VersionInquiry) isMessage()    {}
func (FaderChange) isMessage()       {}
func (Unsupported) isMessage()       {}

func (m Press) String() string   { return fmt.Sprintf("press %v", m.Button) }
func (m Release) String() string { return fmt.Sprintf("release %v", m.Button) }

func (TextEndedOrLooped) String() string { return "text ended or looped" }

func (m DeviceInquiry) String() string {
	return fmt.Sprintf("device inquiry: id=%d firmware=%d", m.DeviceID, m.FirmwareRevision)
}

func (m VersionInquiry) String() string {
	return fmt.Sprintf("version inquiry: bootloader=%d firmware=%d", m.BootloaderVersion, m.FirmwareVersion)
}

func (m FaderChange) String() string {
	return fmt.Sprintf("%v = %d", m.Fader, m.Value)
}

func (Unsupported) String() string { return "unsupported" }

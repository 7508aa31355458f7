package launchpad

// Status bytes. The Launchpads only talk on channel 1 and never send
// note-off; a note-on with zero velocity is the release.
const (
	StatusNoteOn        byte = 0x90
	StatusControlChange byte = 0xB0
	StatusSysExStart    byte = 0xF0
	StatusSysExEnd      byte = 0xF7
)

// Velocities used by the buttons
const (
	VelocityReleased byte = 0
	VelocityPressed  byte = 127
)

// Controller numbers
const (
	ControlButtonFirst byte = 104
	ControlButtonLast  byte = 111
	FaderFirst         byte = 21
	FaderLast          byte = 28
)

// textLoopController and textLoopValue form the Mini MK3's "scroll finished"
// controller change (B0 00 03).
const (
	textLoopController byte = 0
	textLoopValue      byte = 3
)

// SysEx framing
var (
	// textLoopSysEx is the MK2's scroll-finished message.
	textLoopSysEx = []byte{StatusSysExStart, 0x00, 0x20, 0x29, 0x02, 0x18, 0x15, StatusSysExEnd}

	// deviceInquiryPrefix is everything up to the device ID byte of a
	// universal non-realtime identity reply.
	deviceInquiryPrefix = []byte{StatusSysExStart, 0x7E}

	// deviceInquiryBody follows the device ID: identity reply (06 02),
	// Novation (00 20 29), family 69 00, member 00 00.
	deviceInquiryBody = []byte{0x06, 0x02, 0x00, 0x20, 0x29, 0x69, 0x00, 0x00, 0x00}

	// versionInquiryPrefix starts a Novation bootloader/firmware version reply.
	versionInquiryPrefix = []byte{StatusSysExStart, 0x00, 0x20, 0x29, 0x00, 0x70}
)

const (
	deviceInquiryLen = 17

	versionDigits     = 5
	versionPayloadLen = 12
	versionInquiryLen = 6 + versionPayloadLen + 1
)

// Requests that make the device answer with DeviceInquiry/VersionInquiry.
var (
	DeviceInquiryRequest  = []byte{StatusSysExStart, 0x7E, 0x7F, 0x06, 0x01, StatusSysExEnd}
	VersionInquiryRequest = []byte{StatusSysExStart, 0x00, 0x20, 0x29, 0x00, 0x70, StatusSysExEnd}
)

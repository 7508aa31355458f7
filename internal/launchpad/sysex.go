package launchpad

import (
	"bytes"
	"encoding/binary"
)

// sysexShape is a set of sysex messages a dialect understands.
type sysexShape uint8

const (
	shapeTextLoop sysexShape = 1 << iota
	shapeDeviceInquiry
	shapeVersionInquiry
)

func (s sysexShape) has(shape sysexShape) bool {
	return s&shape != 0
}

// replyMatcher tries to recognise one kind of sysex reply. ok is false if the
// header does not match; a matching header with a bad body is an error.
type replyMatcher func(data []byte) (msg Message, ok bool, err *DecodeError)

// decodeSysEx matches data against the enabled shapes.
func decodeSysEx(shapes sysexShape, data []byte) (Message, *DecodeError) {
	if len(data) < 2 || data[0] != StatusSysExStart {
		return nil, invalidf("%d byte message is not sysex", len(data))
	}

	if shapes.has(shapeTextLoop) && bytes.Equal(data, textLoopSysEx) {
		return TextEndedOrLooped{}, nil
	}
	if shapes.has(shapeDeviceInquiry) {
		if msg, ok, err := matchDeviceInquiry(data); ok || err != nil {
			return msg, err
		}
	}
	if shapes.has(shapeVersionInquiry) {
		if msg, ok, err := matchVersionInquiry(data); ok || err != nil {
			return msg, err
		}
	}
	return nil, invalidf("unrecognised sysex")
}

// matchDeviceInquiry matches
//
//	F0 7E <id> 06 02 00 20 29 69 00 00 00 <r1> <r2> <r3> <r4> F7
//
// and rebuilds the firmware revision from r1..r4, most significant first.
func matchDeviceInquiry(data []byte) (Message, bool, *DecodeError) {
	bodyStart := len(deviceInquiryPrefix) + 1
	bodyEnd := bodyStart + len(deviceInquiryBody)
	if !bytes.HasPrefix(data, deviceInquiryPrefix) || len(data) < bodyEnd ||
		!bytes.Equal(data[bodyStart:bodyEnd], deviceInquiryBody) {
		return nil, false, nil
	}

	if len(data) != deviceInquiryLen {
		return nil, false, malformedf("device inquiry reply is %d bytes, want %d", len(data), deviceInquiryLen)
	}
	if data[len(data)-1] != StatusSysExEnd {
		return nil, false, malformedf("device inquiry reply ends with %#02x", data[len(data)-1])
	}

	return DeviceInquiry{
		DeviceID:         data[len(deviceInquiryPrefix)],
		FirmwareRevision: binary.BigEndian.Uint32(data[bodyEnd : deviceInquiryLen-1]),
	}, true, nil
}

// matchVersionInquiry matches
//
//	F0 00 20 29 00 70 <b0..b4> <f0..f4> <x> <x> F7
//
// where b and f are the decimal digits of the bootloader and firmware
// versions. The last two payload bytes are not documented and are dropped.
func matchVersionInquiry(data []byte) (Message, bool, *DecodeError) {
	if !bytes.HasPrefix(data, versionInquiryPrefix) {
		return nil, false, nil
	}

	if len(data) != versionInquiryLen {
		return nil, false, malformedf("version inquiry reply is %d bytes, want %d", len(data), versionInquiryLen)
	}
	if data[len(data)-1] != StatusSysExEnd {
		return nil, false, malformedf("version inquiry reply ends with %#02x", data[len(data)-1])
	}

	payload := data[len(versionInquiryPrefix) : len(data)-1]
	bootloader, err := decimal(payload[:versionDigits])
	if err != nil {
		return nil, false, err
	}
	firmware, err := decimal(payload[versionDigits : 2*versionDigits])
	if err != nil {
		return nil, false, err
	}

	return VersionInquiry{BootloaderVersion: bootloader, FirmwareVersion: firmware}, true, nil
}

// decimal joins one-digit-per-byte numbers, most significant digit first.
func decimal(digits []byte) (uint32, *DecodeError) {
	var n uint32
	for _, d := range digits {
		if d > 9 {
			return 0, malformedf("version digit %d is not decimal", d)
		}
		n = n*10 + uint32(d)
	}
	return n, nil
}

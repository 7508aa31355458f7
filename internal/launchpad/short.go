package launchpad

// gridTransform maps the note number of a grid pad to its cell. It reports
// false for notes that do not belong to a pad on the device.
type gridTransform func(note byte) (GridButton, bool)

// hexGrid is the original Launchpad/Mini layout: the high nibble is the
// row, the low nibble the column. Column 8 holds the round scene buttons.
// Every note maps to a cell; columns past 8 are passed through as-is.
func hexGrid(note byte) (GridButton, bool) {
	return GridButton{X: int(note % 16), Y: int(note / 16)}, true
}

// decimalGrid is the programmer-mode layout of the Mini MK3: tens are the
// row and units the column, both starting at 1 from the bottom left.
func decimalGrid(note byte) (GridButton, bool) {
	col, row := note%10, note/10
	if col < 1 || row < 1 || row > 9 {
		return GridButton{}, false
	}
	return GridButton{X: int(col) - 1, Y: int(row) - 1}, true
}

// sessionGrid is the MK2 session layout. It numbers pads like decimalGrid,
// but rows are counted from the top so that 81 is the top left pad and 19
// the bottom right scene button.
func sessionGrid(note byte) (GridButton, bool) {
	col, row := note%10, note/10
	if col < 1 || row < 1 || row > 8 {
		return GridButton{}, false
	}
	return GridButton{X: int(col) - 1, Y: 8 - int(row)}, true
}

// decodeShort decodes a 3 byte channel message using the dialect's table.
func decodeShort(t *dialectTable, data []byte) (Message, *DecodeError) {
	status, data1, data2 := data[0], data[1], data[2]

	switch status {
	case StatusNoteOn:
		button, ok := t.grid(data1)
		if !ok {
			return nil, invalidf("note %d is not a grid pad", data1)
		}
		return buttonEvent(button, data2)

	case StatusControlChange:
		switch {
		case data1 >= ControlButtonFirst && data1 <= ControlButtonLast:
			return buttonEvent(ControlButton{Index: int(data1 - ControlButtonFirst)}, data2)
		case t.faders && data1 >= FaderFirst && data1 <= FaderLast:
			// faders report any value, there is no press/release here
			return FaderChange{Fader: Fader{Index: int(data1 - FaderFirst)}, Value: data2}, nil
		case t.textLoopCC && data1 == textLoopController && data2 == textLoopValue:
			return TextEndedOrLooped{}, nil
		}
		return nil, invalidf("unexpected controller %d", data1)
	}

	// Note-off (0x80) lands here too: the hardware never sends it.
	return nil, invalidf("unexpected status byte %#02x", status)
}

func buttonEvent(button Button, velocity byte) (Message, *DecodeError) {
	switch velocity {
	case VelocityReleased:
		return Release{Button: button}, nil
	case VelocityPressed:
		return Press{Button: button}, nil
	}
	return nil, invalidf("unexpected velocity %d for %v", velocity, button)
}

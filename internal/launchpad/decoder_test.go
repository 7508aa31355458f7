package launchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func noteOn(key, velocity uint8) []byte {
	return []byte(midi.NoteOn(0, key, velocity))
}

func controlChange(controller, value uint8) []byte {
	return []byte(midi.ControlChange(0, controller, value))
}

func mustDecoder(t *testing.T, dialect Dialect, opts ...Option) *Decoder {
	t.Helper()
	d, err := NewDecoder(dialect, opts...)
	require.NoError(t, err)
	return d
}

func TestNewDecoder(t *testing.T) {
	tests := []struct {
		dialect Dialect
		policy  Policy
	}{
		{DialectMini, FailFast},
		{DialectMiniMK3, Degrade},
		{DialectMK2, FailFast},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			d := mustDecoder(t, tt.dialect)
			assert.Equal(t, tt.dialect, d.Dialect())
			assert.Equal(t, tt.policy, d.Policy())
			assert.NotEmpty(t, tt.dialect.DeviceKeyword())
			assert.NotEmpty(t, tt.dialect.ConnectionName())
		})
	}

	_, err := NewDecoder("launchpad-x")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestBottomOrigin(t *testing.T) {
	assert.True(t, DialectMiniMK3.BottomOrigin())
	assert.False(t, DialectMini.BottomOrigin())
	assert.False(t, DialectMK2.BottomOrigin())
	assert.False(t, Dialect("nope").BottomOrigin())
}

func TestWithPolicy(t *testing.T) {
	d := mustDecoder(t, DialectMini, WithPolicy(Degrade))
	assert.Equal(t, Degrade, d.Policy())

	msg, err := d.Decode(0, noteOn(0, 64))
	require.NoError(t, err)
	assert.Equal(t, Unsupported{}, msg)

	d = mustDecoder(t, DialectMiniMK3, WithPolicy(FailFast))
	_, err = d.Decode(0, noteOn(11, 64))
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestControlButtons(t *testing.T) {
	for _, dialect := range Dialects {
		d := mustDecoder(t, dialect)
		for cc := ControlButtonFirst; cc <= ControlButtonLast; cc++ {
			button := ControlButton{Index: int(cc - ControlButtonFirst)}

			msg, err := d.Decode(0, controlChange(cc, 127))
			require.NoError(t, err)
			assert.Equal(t, Press{Button: button}, msg, "%s cc %d", dialect, cc)

			msg, err = d.Decode(0, controlChange(cc, 0))
			require.NoError(t, err)
			assert.Equal(t, Release{Button: button}, msg, "%s cc %d", dialect, cc)
		}
	}
}

func TestGridTransforms(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		note    uint8
		want    GridButton
	}{
		{"mini origin", DialectMini, 0, GridButton{X: 0, Y: 0}},
		{"mini diagonal", DialectMini, 17, GridButton{X: 1, Y: 1}},
		{"mini scene column", DialectMini, 8, GridButton{X: 8, Y: 0}},
		{"mini bottom right", DialectMini, 0x77, GridButton{X: 7, Y: 7}},
		{"mini past scene column", DialectMini, 9, GridButton{X: 9, Y: 0}},
		{"mini high nibble column", DialectMini, 0x7F, GridButton{X: 15, Y: 7}},
		{"mk3 bottom left", DialectMiniMK3, 11, GridButton{X: 0, Y: 0}},
		{"mk3 top right", DialectMiniMK3, 88, GridButton{X: 7, Y: 7}},
		{"mk3 mixed", DialectMiniMK3, 53, GridButton{X: 2, Y: 4}},
		{"mk2 top left", DialectMK2, 81, GridButton{X: 0, Y: 0}},
		{"mk2 bottom right", DialectMK2, 18, GridButton{X: 7, Y: 7}},
		{"mk2 scene button", DialectMK2, 89, GridButton{X: 8, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDecoder(t, tt.dialect)

			msg, err := d.Decode(0, noteOn(tt.note, 127))
			require.NoError(t, err)
			assert.Equal(t, Press{Button: tt.want}, msg)

			msg, err = d.Decode(0, noteOn(tt.note, 0))
			require.NoError(t, err)
			assert.Equal(t, Release{Button: tt.want}, msg)
		})
	}
}

func TestOffGridNotes(t *testing.T) {
	tests := []struct {
		dialect Dialect
		note    uint8
	}{
		{DialectMK2, 10},
		{DialectMK2, 91},
		{DialectMK2, 5},
	}

	for _, tt := range tests {
		d := mustDecoder(t, tt.dialect)
		_, err := d.Decode(0, noteOn(tt.note, 127))
		assert.ErrorIs(t, err, ErrInvalidMessage, "%s note %d", tt.dialect, tt.note)
	}

	msg, err := mustDecoder(t, DialectMiniMK3).Decode(0, noteOn(20, 127))
	require.NoError(t, err)
	assert.Equal(t, Unsupported{}, msg)
}

func TestUnexpectedVelocity(t *testing.T) {
	inputs := map[string][]byte{
		"note":    noteOn(17, 1),
		"control": controlChange(104, 126),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			for _, dialect := range []Dialect{DialectMini, DialectMK2} {
				msg, err := mustDecoder(t, dialect).Decode(0, data)
				assert.Nil(t, msg)
				assert.ErrorIs(t, err, ErrInvalidMessage)

				var derr *DecodeError
				require.ErrorAs(t, err, &derr)
				assert.Equal(t, dialect, derr.Dialect)
				assert.Equal(t, data, derr.Data)
			}

			msg, err := mustDecoder(t, DialectMiniMK3).Decode(0, data)
			require.NoError(t, err)
			assert.Equal(t, Unsupported{}, msg)
		})
	}
}

func TestNoteOffIsNotSpecialCased(t *testing.T) {
	data := []byte(midi.NoteOff(0, 17))
	for _, dialect := range []Dialect{DialectMini, DialectMK2} {
		_, err := mustDecoder(t, dialect).Decode(0, data)
		assert.ErrorIs(t, err, ErrInvalidMessage)
	}
}

func TestUnknownStatusAndController(t *testing.T) {
	inputs := [][]byte{
		[]byte(midi.ProgramChange(0, 3)),
		{0xA0, 1, 2},
		controlChange(50, 127),
		{0x91, 17, 127}, // channel 2
	}

	for _, data := range inputs {
		_, err := mustDecoder(t, DialectMini).Decode(0, data)
		assert.ErrorIs(t, err, ErrInvalidMessage, "% X", data)

		msg, err := mustDecoder(t, DialectMiniMK3).Decode(0, data)
		require.NoError(t, err)
		assert.Equal(t, Unsupported{}, msg)
	}
}

func TestFaders(t *testing.T) {
	d := mustDecoder(t, DialectMK2)
	for cc := FaderFirst; cc <= FaderLast; cc++ {
		for _, value := range []uint8{0, 1, 64, 127} {
			msg, err := d.Decode(0, controlChange(cc, value))
			require.NoError(t, err)
			assert.Equal(t, FaderChange{Fader: Fader{Index: int(cc - FaderFirst)}, Value: value}, msg)
		}
	}

	_, err := mustDecoder(t, DialectMini).Decode(0, controlChange(21, 64))
	assert.ErrorIs(t, err, ErrInvalidMessage)

	msg, err := mustDecoder(t, DialectMiniMK3).Decode(0, controlChange(21, 64))
	require.NoError(t, err)
	assert.Equal(t, Unsupported{}, msg)
}

func TestTextLoopController(t *testing.T) {
	msg, err := mustDecoder(t, DialectMiniMK3).Decode(0, controlChange(0, 3))
	require.NoError(t, err)
	assert.Equal(t, TextEndedOrLooped{}, msg)

	msg, err = mustDecoder(t, DialectMiniMK3).Decode(0, controlChange(0, 4))
	require.NoError(t, err)
	assert.Equal(t, Unsupported{}, msg)

	for _, dialect := range []Dialect{DialectMini, DialectMK2} {
		_, err := mustDecoder(t, dialect).Decode(0, controlChange(0, 3))
		assert.ErrorIs(t, err, ErrInvalidMessage)
	}
}

func TestDecodeIsStateless(t *testing.T) {
	a := noteOn(17, 127)
	b := []byte(midi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x18, 0x15}))

	for _, dialect := range Dialects {
		d := mustDecoder(t, dialect)
		fresh := mustDecoder(t, dialect)

		firstA, errA1 := d.Decode(1, a)
		againA, errA2 := d.Decode(2, a)
		assert.Equal(t, firstA, againA)
		assert.Equal(t, errA1, errA2)

		afterA, errB1 := d.Decode(3, b)
		alone, errB2 := fresh.Decode(0, b)
		assert.Equal(t, alone, afterA)
		assert.Equal(t, errB2 == nil, errB1 == nil)
	}
}

func TestDecodeErrorKeepsCopy(t *testing.T) {
	data := noteOn(17, 5)
	_, err := mustDecoder(t, DialectMini).Decode(0, data)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	data[1] = 99
	assert.Equal(t, byte(17), derr.Data[1])
	assert.Contains(t, err.Error(), "mini")
	assert.Contains(t, err.Error(), "velocity 5")
}

func TestParseDialectAndPolicy(t *testing.T) {
	d, err := ParseDialect(" MK2 ")
	require.NoError(t, err)
	assert.Equal(t, DialectMK2, d)

	_, err = ParseDialect("pro")
	assert.ErrorIs(t, err, ErrUnknownDialect)

	p, err := ParsePolicy("degrade")
	require.NoError(t, err)
	assert.Equal(t, Degrade, p)

	p, err = ParsePolicy("Fail-Fast")
	require.NoError(t, err)
	assert.Equal(t, FailFast, p)

	_, err = ParsePolicy("ignore")
	assert.ErrorIs(t, err, ErrUnknownPolicy)

	assert.Equal(t, "degrade", Degrade.String())
	assert.Equal(t, "Policy(7)", Policy(7).String())
	assert.Equal(t, FailFast, Dialect("nope").DefaultPolicy())
	assert.Empty(t, Dialect("nope").DeviceKeyword())
}

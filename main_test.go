package main

import (
	"testing"

	"github.com/PixPMusic/launchdecode/internal/launchpad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDevices(t *testing.T) {
	ports := []string{
		"Launchpad Mini MK3 MIDI 2",
		"Launchpad Mini",
		"Launchpad MK2",
		"IAC Driver Bus 1",
	}

	devices := detectDevices(ports)
	require.Len(t, devices, 3)

	got := map[string]string{}
	for _, d := range devices {
		got[d.Dialect] = d.InPort
		assert.NotEmpty(t, d.ID)
		_, err := d.Decoder()
		assert.NoError(t, err)
	}
	assert.Equal(t, "Launchpad Mini MK3 MIDI 2", got[string(launchpad.DialectMiniMK3)])
	assert.Equal(t, "Launchpad MK2", got[string(launchpad.DialectMK2)])
	assert.Equal(t, "Launchpad Mini", got[string(launchpad.DialectMini)])
}

func TestDetectDevicesMK3Only(t *testing.T) {
	devices := detectDevices([]string{"Launchpad Mini MK3 MIDI 2"})
	require.Len(t, devices, 1)
	assert.Equal(t, string(launchpad.DialectMiniMK3), devices[0].Dialect)
}

func TestDetectDevicesNone(t *testing.T) {
	assert.Empty(t, detectDevices([]string{"Keystation 49"}))
	assert.Empty(t, detectDevices(nil))
}

package pdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPv6RoundTrip(t *testing.T) {
	udp := NewUDP(5353, 5353)

	src := [16]byte{0x20, 0x01, 0x0d, 0xb8}
	dst := [16]byte{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	ip6 := NewIPv6(src, dst, 0)
	ip6.SetHopLimit(64)
	ip6.SetInner(udp)

	eth := NewEthernet(HardwareAddr{0xAA, 0, 0, 0, 0, 1}, HardwareAddr{0xAA, 0, 0, 0, 0, 2}, 0)
	eth.SetInner(ip6)

	buf, err := eth.Serialize()
	require.NoError(t, err)

	parsed, err := FromBytes(LinkEthernet, buf)
	require.NoError(t, err)

	parsedIP6, ok := Find[*IPv6](parsed)
	require.True(t, ok)
	assert.Equal(t, src, parsedIP6.Source())
	assert.Equal(t, dst, parsedIP6.Destination())
	assert.Equal(t, uint8(64), parsedIP6.HopLimit())

	parsedUDP, ok := Find[*UDP](parsed)
	require.True(t, ok)
	assert.Equal(t, uint16(5353), parsedUDP.SourcePort())

	reserialized, err := parsed.Serialize()
	require.NoError(t, err)
	assert.Equal(t, buf, reserialized)
}

func TestIPv6RejectsWrongVersion(t *testing.T) {
	buf := make([]byte, ipv6HeaderSize)
	buf[0] = 0x40 // version 4, not 6
	_, err := newIPv6FromBytes(buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedOption)
}

package pdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestARPRoundTrip(t *testing.T) {
	arp := NewARP(ARPRequest, HardwareAddr{0xAA, 0xBB, 0xCC, 0, 0, 1}, [4]byte{10, 0, 0, 1}, HardwareAddr{}, [4]byte{10, 0, 0, 2})

	eth := NewEthernet(HardwareAddr{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, HardwareAddr{0xAA, 0xBB, 0xCC, 0, 0, 1}, 0)
	eth.SetInner(arp)

	buf, err := eth.Serialize()
	require.NoError(t, err)

	parsed, err := FromBytes(LinkEthernet, buf)
	require.NoError(t, err)

	parsedARP, ok := Find[*ARP](parsed)
	require.True(t, ok)
	assert.Equal(t, ARPRequest, parsedARP.Operation())
	assert.Equal(t, [4]byte{10, 0, 0, 1}, parsedARP.SenderProtocol())
	assert.Equal(t, [4]byte{10, 0, 0, 2}, parsedARP.TargetProtocol())

	reserialized, err := parsed.Serialize()
	require.NoError(t, err)
	assert.Equal(t, buf, reserialized)
}

func TestARPRejectsUnsupportedAddressLengths(t *testing.T) {
	buf := make([]byte, arpHeaderSize)
	buf[0], buf[1] = 0x00, 0x01 // hardwareType = 1
	buf[2], buf[3] = 0x08, 0x00 // protocolType = 0x0800
	buf[4] = 8                  // hlen: unsupported
	buf[5] = 4                  // plen

	_, err := newARPFromBytes(buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedOption)
}

package pdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDHCPOptionRoundTrip constructs a REQUEST with requested-address and
// server-id options, serializes, parses, and checks the convenience search
// accessors.
func TestDHCPOptionRoundTrip(t *testing.T) {
	dhcp, err := NewDHCP(BootRequest, DHCPRequest)
	require.NoError(t, err)
	require.NoError(t, dhcp.AddRequestedAddress([4]byte{192, 0, 2, 5}))
	require.NoError(t, dhcp.AddServerIdentifier([4]byte{192, 0, 2, 1}))

	buf, err := dhcp.Serialize()
	require.NoError(t, err)

	parsed, err := newDHCPFromBytes(buf)
	require.NoError(t, err)

	parsedDHCP, ok := parsed.(*DHCP)
	require.True(t, ok)

	msgType, ok := parsedDHCP.SearchMessageType()
	require.True(t, ok)
	assert.Equal(t, DHCPRequest, msgType)

	serverID, ok := parsedDHCP.SearchServerIdentifier()
	require.True(t, ok)
	assert.Equal(t, [4]byte{192, 0, 2, 1}, serverID)

	requested, ok := parsedDHCP.SearchRequestedAddress()
	require.True(t, ok)
	assert.Equal(t, [4]byte{192, 0, 2, 5}, requested)

	reserialized, err := parsed.Serialize()
	require.NoError(t, err)
	assert.Equal(t, buf, reserialized)
}

func TestDHCPRejectsMissingMagicCookie(t *testing.T) {
	buf := make([]byte, bootpHeaderSize+4)
	_, err := newDHCPFromBytes(buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedOption)
}

func TestDHCPKindReportsUDP(t *testing.T) {
	dhcp, err := NewDHCP(BootRequest, DHCPDiscover)
	require.NoError(t, err)
	assert.Equal(t, KindUDP, dhcp.Kind())

	// The concrete-type Find must still distinguish DHCP from a literal
	// UDP layer; only the kind-based FindKind treats them alike.
	_, ok := Find[*UDP](dhcp)
	assert.False(t, ok)
	_, ok = Find[*DHCP](dhcp)
	assert.True(t, ok)
}

func TestDHCPRejectsOptionsAreaOverflow(t *testing.T) {
	dhcp, err := NewDHCP(BootRequest, DHCPOffer)
	require.NoError(t, err)

	// 90 routers is 2+4*90=362 bytes of option payload, which combined with
	// the fixed BOOTP header, magic cookie, and end sentinel pushes the
	// message past the 576-byte minimum datagram size.
	routers := make([][4]byte, 90)
	for i := range routers {
		routers[i] = [4]byte{10, 0, byte(i >> 8), byte(i)}
	}
	err = dhcp.AddRoutersOption(routers)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOptionTooLarge)
}

func TestDHCPLeaseTimeAndRouters(t *testing.T) {
	dhcp, err := NewDHCP(BootRequest, DHCPAck)
	require.NoError(t, err)
	require.NoError(t, dhcp.AddLeaseTime(86400))
	require.NoError(t, dhcp.AddRoutersOption([][4]byte{{10, 0, 0, 1}, {10, 0, 0, 2}}))
	require.NoError(t, dhcp.AddSubnetMask([4]byte{255, 255, 255, 0}))

	lease, ok := dhcp.SearchLeaseTime()
	require.True(t, ok)
	assert.Equal(t, uint32(86400), lease)

	routers, ok := dhcp.SearchRoutersOption()
	require.True(t, ok)
	assert.Equal(t, [][4]byte{{10, 0, 0, 1}, {10, 0, 0, 2}}, routers)

	mask, ok := dhcp.SearchSubnetMask()
	require.True(t, ok)
	assert.Equal(t, [4]byte{255, 255, 255, 0}, mask)
}

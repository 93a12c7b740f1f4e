package pdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoopbackIPv4UDPDHCPChain builds a Loopback -> IPv4 -> UDP -> DHCP
// chain, confirms it's locatable via Find/FindKind, and round-trips byte
// for byte through parse and reserialize.
func TestLoopbackIPv4UDPDHCPChain(t *testing.T) {
	dhcp, err := NewDHCP(BootRequest, DHCPDiscover)
	require.NoError(t, err)
	dhcp.SetTransactionID(0x12345678)

	udp := NewUDP(68, 67)
	udp.SetInner(dhcp)

	ip := NewIPv4([4]byte{192, 0, 2, 1}, [4]byte{192, 0, 2, 255}, 17)
	ip.SetInner(udp)

	loop := NewLoopback(pfINET)
	loop.SetInner(ip)

	buf, err := loop.Serialize()
	require.NoError(t, err)

	parsed, err := FromBytes(LinkNull, buf)
	require.NoError(t, err)

	found, ok := Find[*DHCP](parsed)
	require.True(t, ok, "find<DHCP>() must locate the DHCP layer")
	assert.Equal(t, uint32(0x12345678), found.TransactionID())

	msgType, ok := found.SearchMessageType()
	require.True(t, ok)
	assert.Equal(t, DHCPDiscover, msgType)

	// FindKind(KindUDP) returns the outermost layer reporting KindUDP, which
	// in this chain is the UDP header itself. Searching below that header
	// reaches DHCP, since DHCP.Kind() reports KindUDP rather than a kind of
	// its own.
	udpLayer, ok := Find[*UDP](parsed)
	require.True(t, ok)
	kindFound, ok := FindKind(parsed, KindUDP)
	require.True(t, ok)
	assert.Equal(t, PDU(udpLayer), kindFound)

	kindFound, ok = FindKind(udpLayer.Inner(), KindUDP)
	require.True(t, ok)
	assert.Equal(t, found, kindFound)

	reserialized, err := parsed.Serialize()
	require.NoError(t, err)
	assert.Equal(t, buf, reserialized)
}

// TestLoopbackTruncation checks that a 3-byte buffer is too short for even
// the 4-byte loopback header.
func TestLoopbackTruncation(t *testing.T) {
	_, err := FromBytes(LinkNull, []byte{0x02, 0x00, 0x00})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBufferTooShort)
}

// TestLoopbackUnknownFamily checks that an unrecognized family downgrades
// to RawPDU rather than failing.
func TestLoopbackUnknownFamily(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x01, 0x02, 0x03}
	parsed, err := FromBytes(LinkNull, buf)
	require.NoError(t, err)

	loop, ok := parsed.(*Loopback)
	require.True(t, ok)
	assert.Equal(t, uint32(0xFFFFFFFF), loop.Family())

	raw, ok := Find[*RawPDU](parsed)
	require.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, raw.Payload())
}

func TestEthernetIPv4TCPRoundTrip(t *testing.T) {
	tcp := NewTCP(443, 51000)
	tcp.SetFlags(TCPFlagSYN)

	ip := NewIPv4([4]byte{10, 0, 0, 1}, [4]byte{10, 0, 0, 2}, 6)
	ip.SetInner(tcp)

	eth := NewEthernet(HardwareAddr{0xAA, 0xBB, 0xCC, 0, 0, 1}, HardwareAddr{0xAA, 0xBB, 0xCC, 0, 0, 2}, 0)
	eth.SetInner(ip)

	buf, err := eth.Serialize()
	require.NoError(t, err)
	assert.Equal(t, eth.Size(), len(buf))

	parsed, err := FromBytes(LinkEthernet, buf)
	require.NoError(t, err)

	parsedTCP, ok := Find[*TCP](parsed)
	require.True(t, ok)
	assert.Equal(t, uint16(443), parsedTCP.SourcePort())
	assert.Equal(t, uint16(TCPFlagSYN), parsedTCP.Flags())

	reserialized, err := parsed.Serialize()
	require.NoError(t, err)
	assert.Equal(t, buf, reserialized)
}

func TestSizeAdditivity(t *testing.T) {
	udp := NewUDP(68, 67)
	ip := NewIPv4([4]byte{1, 1, 1, 1}, [4]byte{2, 2, 2, 2}, 17)
	ip.SetInner(udp)

	assert.Equal(t, ip.HeaderSize()+udp.Size(), ip.Size())
	assert.Equal(t, udp.HeaderSize(), udp.Size()) // UDP here has no inner
}

func TestCloneEquivalence(t *testing.T) {
	udp := NewUDP(68, 67)
	ip := NewIPv4([4]byte{1, 1, 1, 1}, [4]byte{2, 2, 2, 2}, 17)
	ip.SetInner(udp)

	clone := ip.Clone()
	assert.Equal(t, ip.Kind(), clone.Kind())

	original, err := ip.Serialize()
	require.NoError(t, err)
	cloned, err := clone.Serialize()
	require.NoError(t, err)
	assert.Equal(t, original, cloned)

	// Mutating the clone must not affect the original.
	clone.(*IPv4).SetTTL(1)
	assert.NotEqual(t, clone.(*IPv4).TTL(), ip.TTL())
}

func TestEthernetUnparsedPayloadOnDemuxFailure(t *testing.T) {
	// EtherType 0x0800 selects IPv4, but 5 bytes is too short for its
	// 20-byte minimum header, so the inner constructor errors out.
	payload := []byte{0x45, 0x00, 0x00, 0x14, 0x00}
	buf := make([]byte, ethernetHeaderSize+len(payload))
	buf[12], buf[13] = 0x08, 0x00
	copy(buf[ethernetHeaderSize:], payload)

	parsed, err := FromBytes(LinkEthernet, buf)
	require.NoError(t, err)

	eth, ok := parsed.(*Ethernet)
	require.True(t, ok)
	assert.Nil(t, eth.Inner())
	assert.Equal(t, payload, eth.UnparsedPayload())
}

func TestSetInnerDetachesPreviousParent(t *testing.T) {
	udp := NewUDP(1, 2)
	ipA := NewIPv4([4]byte{1, 1, 1, 1}, [4]byte{2, 2, 2, 2}, 17)
	ipB := NewIPv4([4]byte{3, 3, 3, 3}, [4]byte{4, 4, 4, 4}, 17)

	ipA.SetInner(udp)
	assert.Equal(t, PDU(ipA), udp.Parent())

	ipB.SetInner(udp)
	assert.Nil(t, ipA.Inner())
	assert.Equal(t, PDU(ipB), udp.Parent())
}

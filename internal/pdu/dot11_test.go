package pdu

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dot11BeaconSeedBytes is a captured 802.11 beacon frame: a 24-byte MAC
// header (frame control, duration, three addresses, sequence control)
// followed by a 12-byte beacon body (timestamp, interval, capability
// information). It carries no tagged elements and no FCS.
var dot11BeaconSeedBytes = []byte{
	0x81, 0x01, 0x4F, 0x23, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05,
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x02, 0x03, 0x04, 0x05,
	0x06, 0x07, 0x00, 0x00, 0xFA, 0x01, 0x93, 0x28, 0x41, 0x23,
	0xAD, 0x1F, 0xFA, 0x14, 0x95, 0x20,
}

func TestDot11BeaconSeedCase(t *testing.T) {
	parsed, err := FromBytes(LinkIEEE802_11, dot11BeaconSeedBytes)
	require.NoError(t, err)

	beacon, ok := parsed.(*Dot11Beacon)
	require.True(t, ok)

	assert.Equal(t, uint16(8), beacon.Subtype())
	assert.Equal(t, uint64(0x1FAD2341289301FA), beacon.Timestamp())
	assert.Equal(t, uint16(0x14FA), beacon.Interval())

	caps := beacon.Capabilities()
	assert.True(t, caps.ESS)
	assert.True(t, caps.CFPollable)
	assert.True(t, caps.Privacy)
	assert.True(t, caps.ChannelAgility)
	assert.True(t, caps.DSSSOFDM)
	assert.False(t, caps.IBSS)
	assert.False(t, caps.CFPollRequest)
	assert.False(t, caps.ShortPreamble)
	assert.False(t, caps.PBCC)
	assert.False(t, caps.SpectrumMgmt)
	assert.False(t, caps.QoS)
	assert.False(t, caps.ShortSlotTime)
	assert.False(t, caps.APSD)
	assert.False(t, caps.DelayedBA)
	assert.False(t, caps.ImmediateBA)

	reserialized, err := beacon.Serialize()
	require.NoError(t, err)
	assert.Equal(t, dot11BeaconSeedBytes, reserialized)
}

func TestDot11CountryElement(t *testing.T) {
	elementBytes := []byte{0x07, 0x06, 'U', 'S', ' ', 0x01, 0x0D, 0x14}
	elements, err := ParseTaggedElements(elementBytes, isKnownDot11Tag)
	require.NoError(t, err)

	beacon := &Dot11Beacon{elements: elements}
	beacon.Init(beacon)

	country, ok := beacon.Country()
	require.True(t, ok)
	assert.Equal(t, "US ", country.Country)
	assert.Equal(t, []uint8{1}, country.FirstChannel)
	assert.Equal(t, []uint8{13}, country.NumberChannels)
	assert.Equal(t, []uint8{20}, country.MaxTransmitPower)
}

func TestDot11SupportedRates(t *testing.T) {
	beacon := NewDot11Beacon(Dot11{}, 0, 0, 0)
	require.NoError(t, beacon.AddSupportedRates([]SupportedRate{
		{MbpsTimesTwo: 2, Basic: true},  // 1 Mbps, basic
		{MbpsTimesTwo: 22, Basic: false}, // 11 Mbps
	}))

	rates, ok := beacon.SupportedRates()
	require.True(t, ok)
	require.Len(t, rates, 2)
	assert.Equal(t, 1.0, rates[0].Mbps())
	assert.True(t, rates[0].Basic)
	assert.Equal(t, 11.0, rates[1].Mbps())
	assert.False(t, rates[1].Basic)
}

func TestDot11BeaconFCSOptIn(t *testing.T) {
	beacon := NewDot11Beacon(Dot11{}, 0x1122334455667788, 0x0064, 0x0011)
	require.NoError(t, beacon.AddSSID("lab"))
	beacon.SetIncludeFCS(true)

	buf, err := beacon.Serialize()
	require.NoError(t, err)

	frameLen := len(buf) - 4
	want := crc32.ChecksumIEEE(buf[:frameLen])
	got := binary.LittleEndian.Uint32(buf[frameLen:])
	assert.Equal(t, want, got)
	assert.True(t, beacon.IncludeFCS())
}

func TestDot11NonBeaconFallsBackToRaw(t *testing.T) {
	// Frame control byte0 = 0x04 -> version=0, type=1 (control), subtype=0.
	buf := make([]byte, dot11HeaderSize+3)
	buf[0] = 0x04
	buf[dot11HeaderSize] = 0xAA
	buf[dot11HeaderSize+1] = 0xBB
	buf[dot11HeaderSize+2] = 0xCC

	parsed, err := FromBytes(LinkIEEE802_11, buf)
	require.NoError(t, err)

	d, ok := parsed.(*Dot11)
	require.True(t, ok)
	assert.Equal(t, dot11TypeControl, d.Type())

	raw, ok := Find[*RawPDU](parsed)
	require.True(t, ok)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, raw.Payload())
}

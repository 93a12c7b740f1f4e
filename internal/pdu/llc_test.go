package pdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLCRoundTrip(t *testing.T) {
	llc := NewLLC(0xAA, 0xAA, 0x03)
	llc.SetInner(newRawPDU([]byte{0xDE, 0xAD, 0xBE, 0xEF}))

	loop := NewLoopback(pfLLC)
	loop.SetInner(llc)

	buf, err := loop.Serialize()
	require.NoError(t, err)

	parsed, err := FromBytes(LinkNull, buf)
	require.NoError(t, err)

	parsedLLC, ok := Find[*LLC](parsed)
	require.True(t, ok)
	assert.Equal(t, uint8(0xAA), parsedLLC.DSAP())
	assert.Equal(t, uint8(0xAA), parsedLLC.SSAP())
	assert.Equal(t, uint8(0x03), parsedLLC.Control())

	raw, ok := Find[*RawPDU](parsed)
	require.True(t, ok)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, raw.Payload())

	reserialized, err := parsed.Serialize()
	require.NoError(t, err)
	assert.Equal(t, buf, reserialized)
}

func TestLLCWithoutTrailingBytes(t *testing.T) {
	llc := NewLLC(0x42, 0x42, 0x03)

	buf, err := llc.Serialize()
	require.NoError(t, err)
	assert.Len(t, buf, llcHeaderSize)

	parsed, err := newLLCFromBytes(buf)
	require.NoError(t, err)
	assert.Nil(t, parsed.(*LLC).Inner())
}

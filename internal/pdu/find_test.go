package pdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindReturnsOutermostMatch(t *testing.T) {
	inner := NewUDP(3, 4)
	udp := NewUDP(1, 2)
	udp.SetInner(inner)
	ip := NewIPv4([4]byte{1, 1, 1, 1}, [4]byte{2, 2, 2, 2}, 17)
	ip.SetInner(udp)

	found, ok := Find[*UDP](ip)
	require.True(t, ok)
	assert.Same(t, udp, found)
}

func TestFindMissReturnsZeroValue(t *testing.T) {
	ip := NewIPv4([4]byte{1, 1, 1, 1}, [4]byte{2, 2, 2, 2}, 17)
	found, ok := Find[*TCP](ip)
	assert.False(t, ok)
	assert.Nil(t, found)
}

func TestFindKindMiss(t *testing.T) {
	ip := NewIPv4([4]byte{1, 1, 1, 1}, [4]byte{2, 2, 2, 2}, 17)
	_, ok := FindKind(ip, KindTCP)
	assert.False(t, ok)
}

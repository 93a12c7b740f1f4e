package pdu

import "testing"

// FuzzFromBytes checks that no malformed or truncated buffer, under any
// data-link type, makes the decoder panic — every failure mode must
// surface as a returned error instead.
func FuzzFromBytes(f *testing.F) {
	f.Add(uint32(LinkEthernet), []byte{})
	f.Add(uint32(LinkEthernet), []byte{0x00, 0x01, 0x02})
	f.Add(uint32(LinkNull), []byte{0x02, 0x00, 0x00, 0x00})
	f.Add(uint32(LinkIEEE802_11), dot11BeaconSeedBytes)
	f.Add(uint32(LinkRaw), make([]byte, 20))

	f.Fuzz(func(t *testing.T, dlt uint32, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("FromBytes panicked: %v", r)
			}
		}()
		_, _ = FromBytes(Link(dlt), data)
	})
}

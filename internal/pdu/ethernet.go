package pdu

import "fmt"

const ethernetHeaderSize = 14

// HardwareAddr is a 6-byte MAC address.
type HardwareAddr [6]byte

// Ethernet is the generic length+next-protocol family's entry point: a
// fixed 14-byte Ethernet II header (destination, source, EtherType)
// followed by whatever the EtherType demultiplexes to.
type Ethernet struct {
	Base
	dst, src  HardwareAddr
	etherType uint16
	unparsed  []byte
}

// NewEthernet constructs a detached Ethernet layer with explicit fields.
func NewEthernet(dst, src HardwareAddr, etherType uint16) *Ethernet {
	e := &Ethernet{dst: dst, src: src, etherType: etherType}
	e.Init(e)
	return e
}

func newEthernetFromBytes(buf []byte) (PDU, error) {
	r := newReader(buf)
	dstRaw, err := r.bytes(6)
	if err != nil {
		return nil, fmt.Errorf("ethernet: %w", err)
	}
	srcRaw, err := r.bytes(6)
	if err != nil {
		return nil, fmt.Errorf("ethernet: %w", err)
	}
	etherType, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("ethernet: %w", err)
	}

	e := &Ethernet{etherType: etherType}
	e.Init(e)
	copy(e.dst[:], dstRaw)
	copy(e.src[:], srcRaw)

	payload := r.rest()
	inner, err := demux(KindEthernet, uint32(etherType), payload)
	if err == nil {
		e.SetInner(inner)
	} else {
		e.unparsed = payload
	}
	return e, nil
}

func (e *Ethernet) Kind() Kind { return KindEthernet }

func (e *Ethernet) HeaderSize() int { return ethernetHeaderSize }

func (e *Ethernet) Destination() HardwareAddr { return e.dst }
func (e *Ethernet) Source() HardwareAddr      { return e.src }
func (e *Ethernet) SetDestination(a HardwareAddr) { e.dst = a }
func (e *Ethernet) SetSource(a HardwareAddr)      { e.src = a }

// EtherType returns the two-octet protocol selector. When an inner PDU of a
// recognized kind is attached, Serialize always stamps the value that kind
// maps to rather than whatever was last set here explicitly.
func (e *Ethernet) EtherType() uint16    { return e.etherType }
func (e *Ethernet) SetEtherType(t uint16) { e.etherType = t }

// UnparsedPayload returns the residual bytes from a failed inner decode, or
// nil if the inner PDU parsed successfully (or there was no payload).
func (e *Ethernet) UnparsedPayload() []byte { return e.unparsed }

func (e *Ethernet) Clone() PDU {
	c := NewEthernet(e.dst, e.src, e.etherType)
	c.unparsed = append([]byte(nil), e.unparsed...)
	if e.Inner() != nil {
		c.SetInner(e.Inner().Clone())
	}
	return c
}

func (e *Ethernet) WriteSerialization(buf []byte, totalSize int, parent PDU) error {
	if len(buf) < ethernetHeaderSize {
		return fmt.Errorf("%w: ethernet header needs %d bytes", ErrBufferTooShort, ethernetHeaderSize)
	}
	w := &writeBuffer{buf: buf}
	w.putBytes(0, e.dst[:])
	w.putBytes(6, e.src[:])

	etherType := e.etherType
	if inner := e.Inner(); inner != nil {
		if t, ok := etherTypeForKind[inner.Kind()]; ok {
			etherType = t
		}
	}
	w.putU16(12, etherType)
	return nil
}

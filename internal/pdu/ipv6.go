package pdu

import "fmt"

const ipv6HeaderSize = 40

// IPv6 is RFC 8200's fixed 40-byte header. Extension headers are not
// modeled; NextHeader is treated directly as the demultiplex selector, the
// common case when no extension headers are present.
type IPv6 struct {
	Base
	trafficClass uint8
	flowLabel    uint32 // low 20 bits significant
	nextHeader   uint8
	hopLimit     uint8
	src, dst     [16]byte
	unparsed     []byte
}

// NewIPv6 constructs a detached IPv6 header with explicit fields.
func NewIPv6(src, dst [16]byte, nextHeader uint8) *IPv6 {
	p := &IPv6{hopLimit: 64, nextHeader: nextHeader, src: src, dst: dst}
	p.Init(p)
	return p
}

func newIPv6FromBytes(buf []byte) (PDU, error) {
	r := newReader(buf)
	verClassFlow, err := r.u32()
	if err != nil {
		return nil, fmt.Errorf("ipv6: %w", err)
	}
	if verClassFlow>>28 != 6 {
		return nil, fmt.Errorf("%w: not an IPv6 header (version %d)", ErrMalformedOption, verClassFlow>>28)
	}
	payloadLength, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("ipv6: %w", err)
	}
	nextHeader, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("ipv6: %w", err)
	}
	hopLimit, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("ipv6: %w", err)
	}
	srcRaw, err := r.bytes(16)
	if err != nil {
		return nil, fmt.Errorf("ipv6: %w", err)
	}
	dstRaw, err := r.bytes(16)
	if err != nil {
		return nil, fmt.Errorf("ipv6: %w", err)
	}

	p := &IPv6{
		trafficClass: uint8(verClassFlow >> 20),
		flowLabel:    verClassFlow & 0xFFFFF,
		nextHeader:   nextHeader,
		hopLimit:     hopLimit,
	}
	p.Init(p)
	copy(p.src[:], srcRaw)
	copy(p.dst[:], dstRaw)

	payloadLen := int(payloadLength)
	if payloadLen > r.remaining() {
		payloadLen = r.remaining()
	}
	payload, err := r.bytes(payloadLen)
	if err != nil {
		return nil, fmt.Errorf("ipv6: %w", err)
	}

	inner, err := demux(KindIPv6, uint32(nextHeader), payload)
	if err == nil {
		p.SetInner(inner)
	} else {
		p.unparsed = payload
	}
	return p, nil
}

func (p *IPv6) Kind() Kind { return KindIPv6 }

func (p *IPv6) HeaderSize() int { return ipv6HeaderSize }

func (p *IPv6) Source() [16]byte      { return p.src }
func (p *IPv6) Destination() [16]byte { return p.dst }
func (p *IPv6) HopLimit() uint8       { return p.hopLimit }
func (p *IPv6) NextHeader() uint8     { return p.nextHeader }

func (p *IPv6) SetSource(a [16]byte)      { p.src = a }
func (p *IPv6) SetDestination(a [16]byte) { p.dst = a }
func (p *IPv6) SetHopLimit(h uint8)       { p.hopLimit = h }

// UnparsedPayload returns the residual bytes from a failed inner decode, or
// nil if the inner PDU parsed successfully (or there was no payload).
func (p *IPv6) UnparsedPayload() []byte { return p.unparsed }

func (p *IPv6) Clone() PDU {
	c := NewIPv6(p.src, p.dst, p.nextHeader)
	c.trafficClass, c.flowLabel, c.hopLimit = p.trafficClass, p.flowLabel, p.hopLimit
	c.unparsed = append([]byte(nil), p.unparsed...)
	if p.Inner() != nil {
		c.SetInner(p.Inner().Clone())
	}
	return c
}

func (p *IPv6) WriteSerialization(buf []byte, totalSize int, parent PDU) error {
	if len(buf) < ipv6HeaderSize {
		return fmt.Errorf("%w: ipv6 header needs %d bytes", ErrBufferTooShort, ipv6HeaderSize)
	}
	w := &writeBuffer{buf: buf}
	verClassFlow := uint32(6)<<28 | uint32(p.trafficClass)<<20 | (p.flowLabel & 0xFFFFF)
	w.putU32(0, verClassFlow)
	w.putU16(4, uint16(totalSize-ipv6HeaderSize))

	nextHeader := p.nextHeader
	if inner := p.Inner(); inner != nil {
		if nh, ok := ipProtoForKind[inner.Kind()]; ok {
			nextHeader = nh
		}
	}
	w.putU8(6, nextHeader)
	w.putU8(7, p.hopLimit)
	w.putBytes(8, p.src[:])
	w.putBytes(24, p.dst[:])
	return nil
}

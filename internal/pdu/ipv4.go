package pdu

import "fmt"

const ipv4HeaderSize = 20

// IPv4 is RFC 791's datagram header. Options (IHL > 5) are not modeled:
// the parser skips over them and serialization always writes a bare
// 20-byte header, so options in a parsed buffer are dropped on re-serialize.
type IPv4 struct {
	Base
	tos            uint8
	id             uint16
	flags          uint8 // top 3 bits of the flags+fragment field
	fragmentOffset uint16
	ttl            uint8
	protocol       uint8
	src, dst       [4]byte
	unparsed       []byte
}

// NewIPv4 constructs a detached IPv4 header with explicit fields.
func NewIPv4(src, dst [4]byte, protocol uint8) *IPv4 {
	p := &IPv4{ttl: 64, protocol: protocol, src: src, dst: dst}
	p.Init(p)
	return p
}

func newIPv4FromBytes(buf []byte) (PDU, error) {
	r := newReader(buf)
	verIHL, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("ipv4: %w", err)
	}
	if verIHL>>4 != 4 {
		return nil, fmt.Errorf("%w: not an IPv4 header (version %d)", ErrMalformedOption, verIHL>>4)
	}
	ihl := int(verIHL&0x0F) * 4
	if ihl < ipv4HeaderSize {
		return nil, fmt.Errorf("%w: IHL %d below minimum header size", ErrMalformedOption, ihl)
	}
	tos, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("ipv4: %w", err)
	}
	totalLength, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("ipv4: %w", err)
	}
	id, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("ipv4: %w", err)
	}
	flagsFrag, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("ipv4: %w", err)
	}
	ttl, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("ipv4: %w", err)
	}
	protocol, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("ipv4: %w", err)
	}
	if _, err := r.u16(); err != nil { // header checksum is not verified on parse
		return nil, fmt.Errorf("ipv4: %w", err)
	}
	srcRaw, err := r.bytes(4)
	if err != nil {
		return nil, fmt.Errorf("ipv4: %w", err)
	}
	dstRaw, err := r.bytes(4)
	if err != nil {
		return nil, fmt.Errorf("ipv4: %w", err)
	}
	if ihl > ipv4HeaderSize {
		if _, err := r.bytes(ihl - ipv4HeaderSize); err != nil { // skip options
			return nil, fmt.Errorf("ipv4: %w", err)
		}
	}

	p := &IPv4{
		tos:            tos,
		id:             id,
		flags:          uint8(flagsFrag >> 13),
		fragmentOffset: flagsFrag & 0x1FFF,
		ttl:            ttl,
		protocol:       protocol,
	}
	p.Init(p)
	copy(p.src[:], srcRaw)
	copy(p.dst[:], dstRaw)

	payloadLen := int(totalLength) - ihl
	if payloadLen < 0 || payloadLen > r.remaining() {
		payloadLen = r.remaining()
	}
	payload, err := r.bytes(payloadLen)
	if err != nil {
		return nil, fmt.Errorf("ipv4: %w", err)
	}

	inner, err := demux(KindIPv4, uint32(protocol), payload)
	if err == nil {
		p.SetInner(inner)
	} else {
		p.unparsed = payload
	}
	return p, nil
}

func (p *IPv4) Kind() Kind { return KindIPv4 }

func (p *IPv4) HeaderSize() int { return ipv4HeaderSize }

func (p *IPv4) Source() [4]byte      { return p.src }
func (p *IPv4) Destination() [4]byte { return p.dst }
func (p *IPv4) TTL() uint8           { return p.ttl }
func (p *IPv4) Protocol() uint8      { return p.protocol }
func (p *IPv4) ID() uint16           { return p.id }

// UnparsedPayload returns the residual bytes from a failed inner decode, or
// nil if the inner PDU parsed successfully (or there was no payload).
func (p *IPv4) UnparsedPayload() []byte { return p.unparsed }

func (p *IPv4) SetSource(a [4]byte)      { p.src = a }
func (p *IPv4) SetDestination(a [4]byte) { p.dst = a }
func (p *IPv4) SetTTL(ttl uint8)         { p.ttl = ttl }
func (p *IPv4) SetID(id uint16)          { p.id = id }

func (p *IPv4) Clone() PDU {
	c := NewIPv4(p.src, p.dst, p.protocol)
	c.tos, c.id, c.flags, c.fragmentOffset, c.ttl = p.tos, p.id, p.flags, p.fragmentOffset, p.ttl
	c.unparsed = append([]byte(nil), p.unparsed...)
	if p.Inner() != nil {
		c.SetInner(p.Inner().Clone())
	}
	return c
}

func (p *IPv4) WriteSerialization(buf []byte, totalSize int, parent PDU) error {
	if len(buf) < ipv4HeaderSize {
		return fmt.Errorf("%w: ipv4 header needs %d bytes", ErrBufferTooShort, ipv4HeaderSize)
	}
	w := &writeBuffer{buf: buf}
	w.putU8(0, (4<<4)|5)
	w.putU8(1, p.tos)
	w.putU16(2, uint16(totalSize))
	w.putU16(4, p.id)
	w.putU16(6, uint16(p.flags)<<13|p.fragmentOffset)
	w.putU8(8, p.ttl)

	protocol := p.protocol
	if inner := p.Inner(); inner != nil {
		if pr, ok := ipProtoForKind[inner.Kind()]; ok {
			protocol = pr
		}
	}
	w.putU8(9, protocol)

	w.putU16(10, 0) // checksum placeholder, filled below
	w.putBytes(12, p.src[:])
	w.putBytes(16, p.dst[:])

	checksum := internetChecksum(buf[:ipv4HeaderSize])
	w.putU16(10, checksum)
	return nil
}

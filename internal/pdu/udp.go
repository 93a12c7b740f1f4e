package pdu

import "fmt"

const udpHeaderSize = 8

// UDP is RFC 768's datagram header.
type UDP struct {
	Base
	srcPort, dstPort uint16
	unparsed         []byte
}

// NewUDP constructs a detached UDP header with explicit fields.
func NewUDP(srcPort, dstPort uint16) *UDP {
	p := &UDP{srcPort: srcPort, dstPort: dstPort}
	p.Init(p)
	return p
}

func newUDPFromBytes(buf []byte) (PDU, error) {
	r := newReader(buf)
	srcPort, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("udp: %w", err)
	}
	dstPort, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("udp: %w", err)
	}
	length, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("udp: %w", err)
	}
	if _, err := r.u16(); err != nil { // checksum is not verified on parse
		return nil, fmt.Errorf("udp: %w", err)
	}
	if int(length) < udpHeaderSize {
		return nil, fmt.Errorf("%w: UDP length %d below minimum header size", ErrMalformedOption, length)
	}

	p := &UDP{srcPort: srcPort, dstPort: dstPort}
	p.Init(p)

	payloadLen := int(length) - udpHeaderSize
	if payloadLen > r.remaining() {
		payloadLen = r.remaining()
	}
	payload, err := r.bytes(payloadLen)
	if err != nil {
		return nil, fmt.Errorf("udp: %w", err)
	}

	inner, err := demuxUDPPort(srcPort, dstPort, payload)
	if err == nil {
		p.SetInner(inner)
	} else {
		p.unparsed = payload
	}
	return p, nil
}

func (p *UDP) Kind() Kind { return KindUDP }

func (p *UDP) HeaderSize() int { return udpHeaderSize }

func (p *UDP) SourcePort() uint16      { return p.srcPort }
func (p *UDP) DestinationPort() uint16 { return p.dstPort }

func (p *UDP) SetSourcePort(port uint16)      { p.srcPort = port }
func (p *UDP) SetDestinationPort(port uint16) { p.dstPort = port }

// UnparsedPayload returns the residual bytes from a failed inner decode, or
// nil if the inner PDU parsed successfully (or there was no payload).
func (p *UDP) UnparsedPayload() []byte { return p.unparsed }

func (p *UDP) Clone() PDU {
	c := NewUDP(p.srcPort, p.dstPort)
	c.unparsed = append([]byte(nil), p.unparsed...)
	if p.Inner() != nil {
		c.SetInner(p.Inner().Clone())
	}
	return c
}

func (p *UDP) WriteSerialization(buf []byte, totalSize int, parent PDU) error {
	if len(buf) < udpHeaderSize {
		return fmt.Errorf("%w: udp header needs %d bytes", ErrBufferTooShort, udpHeaderSize)
	}
	w := &writeBuffer{buf: buf}
	w.putU16(0, p.srcPort)
	w.putU16(2, p.dstPort)
	w.putU16(4, uint16(totalSize))
	w.putU16(6, 0) // checksum placeholder

	pseudo := pseudoHeader(parent, 17, totalSize)
	if pseudo != nil {
		checksum := internetChecksum(append(pseudo, buf...))
		if checksum == 0 {
			checksum = 0xFFFF // RFC 768: all-zero checksum means "none computed"
		}
		w.putU16(6, checksum)
	}
	return nil
}

package pdu

import "fmt"

const tcpHeaderSize = 20

// TCP flag bits within the 12-bit flags field. ECE/CWR extension bits are
// not modeled.
const (
	TCPFlagFIN = 1 << 0
	TCPFlagSYN = 1 << 1
	TCPFlagRST = 1 << 2
	TCPFlagPSH = 1 << 3
	TCPFlagACK = 1 << 4
	TCPFlagURG = 1 << 5
)

// TCP is RFC 793's segment header. Options (data offset > 5) are not
// modeled, matching IPv4's options simplification.
type TCP struct {
	Base
	srcPort, dstPort   uint16
	seq, ack           uint32
	flags              uint16
	window             uint16
	urgentPointer      uint16
}

// NewTCP constructs a detached TCP segment header with explicit fields.
func NewTCP(srcPort, dstPort uint16) *TCP {
	p := &TCP{srcPort: srcPort, dstPort: dstPort, window: 65535}
	p.Init(p)
	return p
}

func newTCPFromBytes(buf []byte) (PDU, error) {
	r := newReader(buf)
	srcPort, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("tcp: %w", err)
	}
	dstPort, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("tcp: %w", err)
	}
	seq, err := r.u32()
	if err != nil {
		return nil, fmt.Errorf("tcp: %w", err)
	}
	ack, err := r.u32()
	if err != nil {
		return nil, fmt.Errorf("tcp: %w", err)
	}
	offsetFlags, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("tcp: %w", err)
	}
	dataOffset := int(offsetFlags>>12) * 4
	if dataOffset < tcpHeaderSize {
		return nil, fmt.Errorf("%w: TCP data offset %d below minimum header size", ErrMalformedOption, dataOffset)
	}
	window, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("tcp: %w", err)
	}
	if _, err := r.u16(); err != nil { // checksum is not verified on parse
		return nil, fmt.Errorf("tcp: %w", err)
	}
	urgentPointer, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("tcp: %w", err)
	}
	if dataOffset > tcpHeaderSize {
		if _, err := r.bytes(dataOffset - tcpHeaderSize); err != nil { // skip options
			return nil, fmt.Errorf("tcp: %w", err)
		}
	}

	p := &TCP{
		srcPort:       srcPort,
		dstPort:       dstPort,
		seq:           seq,
		ack:           ack,
		flags:         offsetFlags & 0x0FFF,
		window:        window,
		urgentPointer: urgentPointer,
	}
	p.Init(p)

	payload := r.rest()
	// TCP's "next protocol" is always application payload: no demux table
	// entry exists for it, so unrecognized content becomes RawPDU.
	if len(payload) > 0 {
		p.SetInner(newRawPDU(payload))
	}
	return p, nil
}

func (p *TCP) Kind() Kind { return KindTCP }

func (p *TCP) HeaderSize() int { return tcpHeaderSize }

func (p *TCP) SourcePort() uint16      { return p.srcPort }
func (p *TCP) DestinationPort() uint16 { return p.dstPort }
func (p *TCP) SequenceNumber() uint32  { return p.seq }
func (p *TCP) AckNumber() uint32       { return p.ack }
func (p *TCP) Flags() uint16           { return p.flags }
func (p *TCP) Window() uint16          { return p.window }

func (p *TCP) SetSourcePort(port uint16)      { p.srcPort = port }
func (p *TCP) SetDestinationPort(port uint16) { p.dstPort = port }
func (p *TCP) SetSequenceNumber(seq uint32)   { p.seq = seq }
func (p *TCP) SetAckNumber(ack uint32)        { p.ack = ack }
func (p *TCP) SetFlags(flags uint16)          { p.flags = flags }
func (p *TCP) SetWindow(w uint16)             { p.window = w }

func (p *TCP) Clone() PDU {
	c := NewTCP(p.srcPort, p.dstPort)
	c.seq, c.ack, c.flags, c.window, c.urgentPointer = p.seq, p.ack, p.flags, p.window, p.urgentPointer
	if p.Inner() != nil {
		c.SetInner(p.Inner().Clone())
	}
	return c
}

func (p *TCP) WriteSerialization(buf []byte, totalSize int, parent PDU) error {
	if len(buf) < tcpHeaderSize {
		return fmt.Errorf("%w: tcp header needs %d bytes", ErrBufferTooShort, tcpHeaderSize)
	}
	w := &writeBuffer{buf: buf}
	w.putU16(0, p.srcPort)
	w.putU16(2, p.dstPort)
	w.putU32(4, p.seq)
	w.putU32(8, p.ack)
	w.putU16(12, uint16(5)<<12|p.flags)
	w.putU16(14, p.window)
	w.putU16(16, 0) // checksum placeholder
	w.putU16(18, p.urgentPointer)

	pseudo := pseudoHeader(parent, 6, totalSize)
	if pseudo != nil {
		checksum := internetChecksum(append(pseudo, buf...))
		w.putU16(16, checksum)
	}
	return nil
}

package pdu

import "fmt"

// arpHeaderSize assumes the near-universal case of Ethernet/IPv4 ARP
// (hardware length 6, protocol length 4); RFC 826 allows other
// combinations but none are observed in practice.
const arpHeaderSize = 28

// ARP is a terminal leaf PDU: RFC 826 address resolution, reached via
// Ethernet's EtherType 0x0806. It never has an inner PDU.
type ARP struct {
	Base
	hardwareType uint16
	protocolType uint16
	operation    uint16
	senderHW     HardwareAddr
	senderProto  [4]byte
	targetHW     HardwareAddr
	targetProto  [4]byte
}

// ARP operation codes.
const (
	ARPRequest uint16 = 1
	ARPReply   uint16 = 2
)

// NewARP constructs a detached ARP request/reply for Ethernet/IPv4.
func NewARP(op uint16, senderHW HardwareAddr, senderProto [4]byte, targetHW HardwareAddr, targetProto [4]byte) *ARP {
	a := &ARP{
		hardwareType: 1, // Ethernet
		protocolType: 0x0800,
		operation:    op,
		senderHW:     senderHW,
		senderProto:  senderProto,
		targetHW:     targetHW,
		targetProto:  targetProto,
	}
	a.Init(a)
	return a
}

func newARPFromBytes(buf []byte) (PDU, error) {
	r := newReader(buf)
	htype, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("arp: %w", err)
	}
	ptype, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("arp: %w", err)
	}
	hlen, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("arp: %w", err)
	}
	plen, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("arp: %w", err)
	}
	if hlen != 6 || plen != 4 {
		return nil, fmt.Errorf("%w: unsupported ARP address lengths hlen=%d plen=%d", ErrMalformedOption, hlen, plen)
	}
	op, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("arp: %w", err)
	}
	senderHW, err := r.bytes(6)
	if err != nil {
		return nil, fmt.Errorf("arp: %w", err)
	}
	senderProto, err := r.bytes(4)
	if err != nil {
		return nil, fmt.Errorf("arp: %w", err)
	}
	targetHW, err := r.bytes(6)
	if err != nil {
		return nil, fmt.Errorf("arp: %w", err)
	}
	targetProto, err := r.bytes(4)
	if err != nil {
		return nil, fmt.Errorf("arp: %w", err)
	}

	a := &ARP{hardwareType: htype, protocolType: ptype, operation: op}
	a.Init(a)
	copy(a.senderHW[:], senderHW)
	copy(a.senderProto[:], senderProto)
	copy(a.targetHW[:], targetHW)
	copy(a.targetProto[:], targetProto)
	return a, nil
}

func (a *ARP) Kind() Kind { return KindARP }

func (a *ARP) HeaderSize() int { return arpHeaderSize }

func (a *ARP) Operation() uint16              { return a.operation }
func (a *ARP) SenderHardware() HardwareAddr   { return a.senderHW }
func (a *ARP) SenderProtocol() [4]byte        { return a.senderProto }
func (a *ARP) TargetHardware() HardwareAddr   { return a.targetHW }
func (a *ARP) TargetProtocol() [4]byte        { return a.targetProto }
func (a *ARP) SetOperation(op uint16)         { a.operation = op }
func (a *ARP) SetTargetHardware(h HardwareAddr) { a.targetHW = h }
func (a *ARP) SetTargetProtocol(p [4]byte)    { a.targetProto = p }

func (a *ARP) Clone() PDU {
	c := NewARP(a.operation, a.senderHW, a.senderProto, a.targetHW, a.targetProto)
	c.hardwareType = a.hardwareType
	c.protocolType = a.protocolType
	return c
}

func (a *ARP) WriteSerialization(buf []byte, totalSize int, parent PDU) error {
	if len(buf) < arpHeaderSize {
		return fmt.Errorf("%w: arp header needs %d bytes", ErrBufferTooShort, arpHeaderSize)
	}
	w := &writeBuffer{buf: buf}
	w.putU16(0, a.hardwareType)
	w.putU16(2, a.protocolType)
	w.putU8(4, 6)
	w.putU8(5, 4)
	w.putU16(6, a.operation)
	w.putBytes(8, a.senderHW[:])
	w.putBytes(14, a.senderProto[:])
	w.putBytes(18, a.targetHW[:])
	w.putBytes(24, a.targetProto[:])
	return nil
}

package pdu

import "fmt"

// dot11HeaderSize is the generic (no address-4, no QoS, no HT-control)
// IEEE 802.11 MAC header: frame control, duration/ID, three addresses,
// sequence control (IEEE 802.11-2012 §8.2.3). Management frames, the only
// ones this package decodes further, never carry address 4, QoS control,
// or HT control.
const dot11HeaderSize = 24

// 802.11 frame types (frame control bits 2-3).
const (
	dot11TypeManagement uint16 = 0
	dot11TypeControl    uint16 = 1
	dot11TypeData       uint16 = 2
)

// Beacon's management subtype (frame control bits 4-7).
const dot11SubtypeBeacon uint16 = 8

// Dot11 is the generic IEEE 802.11 MAC header. Variants that need a
// specific frame body (Dot11Beacon) hold one by value and forward its
// accessors instead of inheriting from it.
type Dot11 struct {
	Base
	frameControl uint16
	duration     uint16
	addr1        HardwareAddr
	addr2        HardwareAddr
	addr3        HardwareAddr
	seqControl   uint16
}

// NewDot11 constructs a detached generic 802.11 header.
func NewDot11(frameControl, duration uint16, addr1, addr2, addr3 HardwareAddr, seqControl uint16) *Dot11 {
	p := &Dot11{
		frameControl: frameControl,
		duration:     duration,
		addr1:        addr1,
		addr2:        addr2,
		addr3:        addr3,
		seqControl:   seqControl,
	}
	p.Init(p)
	return p
}

func parseDot11Header(r *reader) (Dot11, error) {
	var h Dot11
	var err error
	if h.frameControl, err = r.u16le(); err != nil {
		return h, err
	}
	if h.duration, err = r.u16le(); err != nil {
		return h, err
	}
	for _, dst := range []*HardwareAddr{&h.addr1, &h.addr2, &h.addr3} {
		b, err := r.bytes(6)
		if err != nil {
			return h, err
		}
		copy(dst[:], b)
	}
	if h.seqControl, err = r.u16le(); err != nil {
		return h, err
	}
	return h, nil
}

func (h Dot11) write(w *writeBuffer) {
	w.putU16le(0, h.frameControl)
	w.putU16le(2, h.duration)
	w.putBytes(4, h.addr1[:])
	w.putBytes(10, h.addr2[:])
	w.putBytes(16, h.addr3[:])
	w.putU16le(22, h.seqControl)
}

// newDot11FromBytes dispatches to the beacon variant for management/beacon
// frames and falls back to the generic header with a RawPDU body for every
// other type/subtype.
func newDot11FromBytes(buf []byte) (PDU, error) {
	r := newReader(buf)
	header, err := parseDot11Header(r)
	if err != nil {
		return nil, fmt.Errorf("dot11: %w", err)
	}
	if header.Type() == dot11TypeManagement && header.Subtype() == dot11SubtypeBeacon {
		return newDot11BeaconFromHeader(header, r.rest())
	}

	p := &Dot11{
		frameControl: header.frameControl,
		duration:     header.duration,
		addr1:        header.addr1,
		addr2:        header.addr2,
		addr3:        header.addr3,
		seqControl:   header.seqControl,
	}
	p.Init(p)
	if rest := r.rest(); len(rest) > 0 {
		p.SetInner(newRawPDU(rest))
	}
	return p, nil
}

func (p *Dot11) Kind() Kind { return KindDot11 }

func (p *Dot11) HeaderSize() int { return dot11HeaderSize }

func (p *Dot11) FrameControl() uint16 { return p.frameControl }
func (p *Dot11) SetFrameControl(fc uint16) { p.frameControl = fc }

func (p *Dot11) Type() uint16    { return (p.frameControl >> 2) & 0x3 }
func (p *Dot11) Subtype() uint16 { return (p.frameControl >> 4) & 0xF }

func (p *Dot11) Duration() uint16          { return p.duration }
func (p *Dot11) SetDuration(d uint16)      { p.duration = d }
func (p *Dot11) Address1() HardwareAddr    { return p.addr1 }
func (p *Dot11) Address2() HardwareAddr    { return p.addr2 }
func (p *Dot11) Address3() HardwareAddr    { return p.addr3 }
func (p *Dot11) SequenceControl() uint16   { return p.seqControl }
func (p *Dot11) SetSequenceControl(s uint16) { p.seqControl = s }

func (p *Dot11) Clone() PDU {
	c := NewDot11(p.frameControl, p.duration, p.addr1, p.addr2, p.addr3, p.seqControl)
	if p.Inner() != nil {
		c.SetInner(p.Inner().Clone())
	}
	return c
}

func (p *Dot11) WriteSerialization(buf []byte, totalSize int, parent PDU) error {
	if len(buf) < dot11HeaderSize {
		return fmt.Errorf("%w: 802.11 header needs %d bytes", ErrBufferTooShort, dot11HeaderSize)
	}
	w := &writeBuffer{buf: buf}
	p.write(w)
	return nil
}

package pdu

import "fmt"

const llcHeaderSize = 3

// LLC is a minimal IEEE 802.2 Logical Link Control header (DSAP, SSAP,
// unnumbered control byte). SNAP extension headers are not modeled; any
// trailing bytes are always handed to RawPDU.
type LLC struct {
	Base
	dsap, ssap, control uint8
}

// NewLLC constructs a detached LLC header with explicit fields.
func NewLLC(dsap, ssap, control uint8) *LLC {
	p := &LLC{dsap: dsap, ssap: ssap, control: control}
	p.Init(p)
	return p
}

func newLLCFromBytes(buf []byte) (PDU, error) {
	r := newReader(buf)
	dsap, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("llc: %w", err)
	}
	ssap, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("llc: %w", err)
	}
	control, err := r.u8()
	if err != nil {
		return nil, fmt.Errorf("llc: %w", err)
	}

	p := &LLC{dsap: dsap, ssap: ssap, control: control}
	p.Init(p)
	if rest := r.rest(); len(rest) > 0 {
		p.SetInner(newRawPDU(rest))
	}
	return p, nil
}

func (p *LLC) Kind() Kind { return KindLLC }

func (p *LLC) HeaderSize() int { return llcHeaderSize }

func (p *LLC) DSAP() uint8    { return p.dsap }
func (p *LLC) SSAP() uint8    { return p.ssap }
func (p *LLC) Control() uint8 { return p.control }

func (p *LLC) Clone() PDU {
	c := NewLLC(p.dsap, p.ssap, p.control)
	if p.Inner() != nil {
		c.SetInner(p.Inner().Clone())
	}
	return c
}

func (p *LLC) WriteSerialization(buf []byte, totalSize int, parent PDU) error {
	if len(buf) < llcHeaderSize {
		return fmt.Errorf("%w: llc header needs %d bytes", ErrBufferTooShort, llcHeaderSize)
	}
	w := &writeBuffer{buf: buf}
	w.putU8(0, p.dsap)
	w.putU8(1, p.ssap)
	w.putU8(2, p.control)
	return nil
}

package pdu

import "fmt"

const loopbackHeaderSize = 4

// Loopback is the trivial DLT_NULL/BSD-loopback framing: a single 4-byte
// host-order address family followed by the inner payload.
type Loopback struct {
	Base
	family   uint32
	unparsed []byte
}

// NewLoopback constructs a detached loopback header with an explicit
// address family.
func NewLoopback(family uint32) *Loopback {
	p := &Loopback{family: family}
	p.Init(p)
	return p
}

func newLoopbackFromBytes(buf []byte) (PDU, error) {
	r := newReader(buf)
	family, err := r.u32host()
	if err != nil {
		return nil, fmt.Errorf("loopback: %w", err)
	}

	p := &Loopback{family: family}
	p.Init(p)

	payload := r.rest()
	inner, err := demux(KindLoopback, family, payload)
	if err == nil {
		p.SetInner(inner)
	} else {
		p.unparsed = payload
	}
	return p, nil
}

func (p *Loopback) Kind() Kind { return KindLoopback }

func (p *Loopback) HeaderSize() int { return loopbackHeaderSize }

func (p *Loopback) Family() uint32     { return p.family }
func (p *Loopback) SetFamily(f uint32) { p.family = f }

// UnparsedPayload returns the residual bytes from a failed inner decode, or
// nil if the inner PDU parsed successfully (or there was no payload).
func (p *Loopback) UnparsedPayload() []byte { return p.unparsed }

func (p *Loopback) Clone() PDU {
	c := NewLoopback(p.family)
	c.unparsed = append([]byte(nil), p.unparsed...)
	if p.Inner() != nil {
		c.SetInner(p.Inner().Clone())
	}
	return c
}

func (p *Loopback) WriteSerialization(buf []byte, totalSize int, parent PDU) error {
	if len(buf) < loopbackHeaderSize {
		return fmt.Errorf("%w: loopback header needs %d bytes", ErrBufferTooShort, loopbackHeaderSize)
	}
	w := &writeBuffer{buf: buf}
	family := p.family
	if inner := p.Inner(); inner != nil {
		if f, ok := loopbackFamilyForKind[inner.Kind()]; ok {
			family = f
		}
	}
	w.putU32host(0, family)
	return nil
}

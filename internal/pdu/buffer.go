package pdu

import (
	"encoding/binary"
	"fmt"
)

// reader is a bounded, panic-free cursor over a byte slice used while
// parsing fixed headers. Every protocol constructor uses one instead of
// hand-rolled index arithmetic, centralizing the bounds check in one place.
type reader struct {
	buf []byte
	off int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) need(n int) error {
	if r.remaining() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooShort, n, r.remaining())
	}
	return nil
}

func (r *reader) u8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) u16le() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) u32host() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := hostByteOrder.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) u64le() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := make([]byte, n)
	copy(v, r.buf[r.off:r.off+n])
	r.off += n
	return v, nil
}

func (r *reader) rest() []byte {
	v := make([]byte, r.remaining())
	copy(v, r.buf[r.off:])
	r.off = len(r.buf)
	return v
}

// writeBuffer is the contiguous, pre-sized range the serialization driver
// hands to each layer. HeaderSize()+payload bytes are already allocated by
// the caller; each layer only ever writes within its own slice.
type writeBuffer struct {
	buf []byte
}

func (w *writeBuffer) putU8(off int, v uint8) { w.buf[off] = v }

func (w *writeBuffer) putU16(off int, v uint16) { binary.BigEndian.PutUint16(w.buf[off:], v) }

func (w *writeBuffer) putU16le(off int, v uint16) { binary.LittleEndian.PutUint16(w.buf[off:], v) }

func (w *writeBuffer) putU32(off int, v uint32) { binary.BigEndian.PutUint32(w.buf[off:], v) }

func (w *writeBuffer) putU32le(off int, v uint32) { binary.LittleEndian.PutUint32(w.buf[off:], v) }

func (w *writeBuffer) putU32host(off int, v uint32) { hostByteOrder.PutUint32(w.buf[off:], v) }

func (w *writeBuffer) putU64le(off int, v uint64) { binary.LittleEndian.PutUint64(w.buf[off:], v) }

func (w *writeBuffer) putBytes(off int, v []byte) { copy(w.buf[off:], v) }

// hostByteOrder matches libpcap's DLT_NULL convention of writing the
// 4-byte address family in the capturing host's native order. Assumed
// little-endian, since that's the overwhelming majority of capture hosts;
// see DESIGN.md for the reasoning behind this choice.
var hostByteOrder = binary.LittleEndian

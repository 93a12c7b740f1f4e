package pdu

import "fmt"

// serializeChain is the two-pass driver: a size pass (outer.Size(), which
// recursively sums HeaderSize() down the chain) then a single top-down
// write pass that hands each layer exactly its own HeaderSize()+payload
// -sized sub-buffer.
func serializeChain(outer PDU) ([]byte, error) {
	total := outer.Size()
	buf := make([]byte, total)
	if err := writeChain(outer, buf, nil); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeChain writes p (and everything inner to it) into buf, whose length
// is exactly p.Size(). Layers declared "post-order" (checksum-bearing: IPv4,
// TCP, UDP) let their inner PDU write first so the checksum can cover the
// already-written payload; all others write pre-order.
func writeChain(p PDU, buf []byte, parent PDU) error {
	total := p.Size()
	if len(buf) != total {
		return fmt.Errorf("pdu: internal size mismatch: buffer is %d bytes, %s reports size %d", len(buf), p.Kind(), total)
	}
	hsz := p.HeaderSize()
	if hsz > total {
		return fmt.Errorf("%w: %s header needs %d bytes, has %d", ErrBufferTooShort, p.Kind(), hsz, total)
	}
	inner := p.Inner()

	if isPostOrder(p.Kind()) {
		if inner != nil {
			if err := writeChain(inner, buf[hsz:], p); err != nil {
				return err
			}
		}
		return p.WriteSerialization(buf, total, parent)
	}

	if err := p.WriteSerialization(buf, total, parent); err != nil {
		return err
	}
	if inner != nil {
		return writeChain(inner, buf[hsz:], p)
	}
	return nil
}

// Package pdu implements a packet-crafting and packet-dissection engine:
// given a raw byte buffer captured from a network interface (or a synthetic
// one), it recognizes the outermost link-layer framing, recursively decodes
// nested protocol headers into typed records, and conversely accepts a
// composed stack of typed records and emits a bit-exact byte buffer.
//
// The package performs no I/O. It consumes byte slices and produces byte
// slices; capture sources, raw socket senders, and filter languages are the
// caller's concern.
package pdu

// PDU is the contract every protocol body implements. The BOOTP/DHCP and
// Dot11/Dot11Beacon "is-a" relationships are modeled as Base-embedding
// structs that share linkage and sizing behavior, favoring composition over
// a class hierarchy.
type PDU interface {
	// Kind reports the runtime discriminator used by FindKind and the
	// serialization driver's pre/post-order decision.
	Kind() Kind

	// HeaderSize returns the bytes this layer itself contributes,
	// excluding Inner(). It must be a pure function of the PDU's own
	// fields and must never recurse into Inner().
	HeaderSize() int

	// Size returns HeaderSize() plus Inner().Size() when an inner PDU is
	// attached, else just HeaderSize().
	Size() int

	// Inner returns the attached child PDU, or nil if this is the
	// innermost layer.
	Inner() PDU

	// SetInner attaches child as the new inner PDU, detaching and
	// clearing the parent back-reference of whatever was attached
	// before. Passing nil detaches without replacement.
	SetInner(child PDU)

	// Parent returns the non-owning back-reference to the enclosing PDU,
	// or nil if this is the outermost layer.
	Parent() PDU

	// SetParent is used internally by SetInner to maintain the back
	// reference; protocol layers should not need to call it directly.
	SetParent(parent PDU)

	// Clone returns a deep copy of this layer and its entire inner
	// chain, with fresh, independent back references.
	Clone() PDU

	// Serialize walks this PDU and its inner chain and returns a
	// bit-exact wire encoding. Only meaningful on the outermost PDU;
	// calling it on a nested PDU produces only the suffix from that
	// layer inward.
	Serialize() ([]byte, error)

	// WriteSerialization writes this layer's header into the first
	// HeaderSize() bytes of buf (whose total length is totalSize), and
	// may consult parent to stamp fields that depend on the enclosing
	// layer (next-protocol, length). It must not touch buf beyond its
	// own header region; the driver recurses into Inner() with the
	// remaining suffix.
	WriteSerialization(buf []byte, totalSize int, parent PDU) error
}

// postOrderKinds are the layers whose header depends on their own payload
// (checksums) and therefore must be written after their inner PDU has
// already filled in the buffer.
var postOrderKinds = map[Kind]bool{
	KindIPv4: true,
	KindIPv6: false, // IPv6 carries no header checksum (RFC 8200)
	KindTCP:  true,
	KindUDP:  true,
}

func isPostOrder(k Kind) bool {
	return postOrderKinds[k]
}

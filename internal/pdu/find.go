package pdu

// Find walks the chain starting at p and returns the first (outermost) PDU
// whose concrete type matches T, along with true. It returns the zero value
// of T and false when no layer in the chain matches.
func Find[T PDU](p PDU) (T, bool) {
	var zero T
	for cur := p; cur != nil; cur = cur.Inner() {
		if t, ok := cur.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// FindKind walks the chain starting at p and returns the first PDU reporting
// Kind() == k. Unlike Find, this matches on the layer's declared kind rather
// than its concrete Go type, which is what lets DHCP's Kind() == KindUDP
// convention resolve: find<UDP>() locates a DHCP layer without an
// intervening concrete UDP type assertion succeeding against it.
func FindKind(p PDU, k Kind) (PDU, bool) {
	for cur := p; cur != nil; cur = cur.Inner() {
		if cur.Kind() == k {
			return cur, true
		}
	}
	return nil, false
}

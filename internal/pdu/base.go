package pdu

// Base is embedded by every concrete PDU to provide the chain-linkage and
// sizing behavior common to all layers. Each concrete type embeds Base and
// calls Init(self) from its constructor so Base can call back into
// HeaderSize() for the size rollup without the layer re-implementing
// Size()/Serialize() itself.
type Base struct {
	self   PDU
	inner  PDU
	parent PDU
}

// Init binds self so Base's Size/Serialize/SetInner can reach the embedding
// type's HeaderSize/WriteSerialization/Kind. Must be called once from every
// concrete constructor before the PDU is used.
func (b *Base) Init(self PDU) {
	b.self = self
}

func (b *Base) Inner() PDU {
	return b.inner
}

func (b *Base) Parent() PDU {
	return b.parent
}

func (b *Base) SetParent(parent PDU) {
	b.parent = parent
}

// SetInner attaches child, exclusively transferring ownership away from any
// prior parent: a child PDU always has at most one parent, so attaching it
// here detaches it from wherever it was attached before.
func (b *Base) SetInner(child PDU) {
	if b.inner != nil {
		b.inner.SetParent(nil)
	}
	if child != nil {
		if prev := child.Parent(); prev != nil {
			prev.SetInner(nil)
		}
		child.SetParent(b.self)
	}
	b.inner = child
}

// Size is HeaderSize() plus the inner chain's size, computed via self so the
// concrete type's own HeaderSize() override is used.
func (b *Base) Size() int {
	sz := b.self.HeaderSize()
	if b.inner != nil {
		sz += b.inner.Size()
	}
	return sz
}

// Serialize allocates one contiguous buffer sized by Size() and runs the
// two-pass driver over the chain rooted at self.
func (b *Base) Serialize() ([]byte, error) {
	return serializeChain(b.self)
}

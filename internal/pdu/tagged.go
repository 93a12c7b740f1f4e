package pdu

import "sort"

// TaggedElement is the (tag, length, value) triple used by frame-body
// variant trailers such as 802.11 management frames. Unlike OptionList
// there is no end sentinel: the list terminates at the PDU's buffer
// boundary.
type TaggedElement struct {
	Tag   uint8
	Value []byte
}

// TaggedElementList holds a sequence of tagged elements plus whether any
// element carries a tag this list doesn't recognize as "known". Known-ness
// drives the canonical-ordering rule on serialize.
type TaggedElementList struct {
	elems      []TaggedElement
	hasUnknown bool
}

// ParseTaggedElements reads (tag, length, value) triples until data is
// exhausted. known classifies tags the caller's protocol understands; any
// other tag observed marks the list as carrying unknown tags, which
// disables canonical reordering on re-serialize so round-trip fidelity is
// preserved for the exact bytes that were read.
func ParseTaggedElements(data []byte, known func(tag uint8) bool) (TaggedElementList, error) {
	var list TaggedElementList
	r := newReader(data)
	for r.remaining() > 0 {
		tag, err := r.u8()
		if err != nil {
			return list, err
		}
		length, err := r.u8()
		if err != nil {
			return list, ErrTruncatedOption
		}
		if r.remaining() < int(length) {
			return list, ErrTruncatedOption
		}
		value, err := r.bytes(int(length))
		if err != nil {
			return list, err
		}
		list.elems = append(list.elems, TaggedElement{Tag: tag, Value: value})
		if known != nil && !known(tag) {
			list.hasUnknown = true
		}
	}
	return list, nil
}

// Elements returns the elements in insertion (parse or Add) order.
func (l TaggedElementList) Elements() []TaggedElement {
	return l.elems
}

// Get returns the first element matching tag.
func (l TaggedElementList) Get(tag uint8) (TaggedElement, bool) {
	for _, e := range l.elems {
		if e.Tag == tag {
			return e, true
		}
	}
	return TaggedElement{}, false
}

// Add appends a new tagged element. known follows the same contract as
// ParseTaggedElements' parameter.
func (l *TaggedElementList) Add(tag uint8, value []byte, known func(tag uint8) bool) error {
	if len(value) > maxOptionValueLen {
		return ErrOptionTooLarge
	}
	l.elems = append(l.elems, TaggedElement{Tag: tag, Value: append([]byte(nil), value...)})
	if known != nil && !known(tag) {
		l.hasUnknown = true
	}
	return nil
}

// serialize writes the elements either in canonical tag-ascending order (no
// unknown tags observed) or in insertion order.
func (l TaggedElementList) serialize() []byte {
	elems := l.elems
	if !l.hasUnknown {
		elems = append([]TaggedElement(nil), l.elems...)
		sort.SliceStable(elems, func(i, j int) bool { return elems[i].Tag < elems[j].Tag })
	}
	var out []byte
	for _, e := range elems {
		out = append(out, e.Tag, uint8(len(e.Value)))
		out = append(out, e.Value...)
	}
	return out
}

func (l TaggedElementList) serializedLen() int {
	n := 0
	for _, e := range l.elems {
		n += 2 + len(e.Value)
	}
	return n
}

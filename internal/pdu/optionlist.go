package pdu

import "fmt"

// Option is a single (code, length, value) triple as used by DHCP/BOOTP,
// DHCPv6, and ICMP extensions. length is always len(Value); it is never
// stored separately to avoid it drifting out of sync.
type Option struct {
	Code  uint8
	Value []byte
}

// OptionList is the reusable TLV engine behind DHCP's option area: PAD/END
// sentinels, per-option length bounds, and first-match lookup. Insertion
// order is preserved deliberately, so a round trip through Add/Get/serialize
// never reorders options a caller inserted.
type OptionList struct {
	opts []Option
}

// maxOptionValueLen is the widest value a single option's one-byte length
// prefix can describe.
const maxOptionValueLen = 255

// ParseOptionList decodes a PAD/END-terminated option area such as DHCP's.
// padCode is skipped silently; parsing stops at endCode (or at buffer
// exhaustion if endCode is never seen, which higher layers may treat as
// malformed). Unknown codes are preserved verbatim for round-trip fidelity.
func ParseOptionList(data []byte, padCode, endCode uint8) (OptionList, error) {
	var list OptionList
	r := newReader(data)
	for r.remaining() > 0 {
		code, err := r.u8()
		if err != nil {
			return list, err
		}
		if code == padCode {
			continue
		}
		if code == endCode {
			return list, nil
		}
		length, err := r.u8()
		if err != nil {
			return list, fmt.Errorf("%w: option %d has no length byte", ErrTruncatedOption, code)
		}
		if r.remaining() < int(length) {
			return list, fmt.Errorf("%w: option %d declares %d bytes, %d remain", ErrTruncatedOption, code, length, r.remaining())
		}
		value, err := r.bytes(int(length))
		if err != nil {
			return list, err
		}
		list.opts = append(list.opts, Option{Code: code, Value: value})
	}
	return list, nil
}

// Options returns the parsed/inserted options in insertion order.
func (l OptionList) Options() []Option {
	return l.opts
}

// Get returns the first option matching code; a duplicate code later in the
// list is ignored.
func (l OptionList) Get(code uint8) (Option, bool) {
	for _, o := range l.opts {
		if o.Code == code {
			return o, true
		}
	}
	return Option{}, false
}

// Add appends a new option, preserving any existing entries with the same
// code; it does not deduplicate.
func (l *OptionList) Add(code uint8, value []byte) error {
	if len(value) > maxOptionValueLen {
		return fmt.Errorf("%w: option %d value is %d bytes", ErrOptionTooLarge, code, len(value))
	}
	l.opts = append(l.opts, Option{Code: code, Value: append([]byte(nil), value...)})
	return nil
}

// AddUint8/AddUint32 are thin typed wrappers used by DHCP's convenience
// setters (AddMessageType, AddLeaseTime, ...).
func (l *OptionList) AddUint8(code uint8, v uint8) error {
	return l.Add(code, []byte{v})
}

func (l *OptionList) AddUint32(code uint8, v uint32) error {
	return l.Add(code, []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func (l *OptionList) AddIPv4(code uint8, ip [4]byte) error {
	return l.Add(code, ip[:])
}

func (l *OptionList) AddIPv4List(code uint8, ips [][4]byte) error {
	value := make([]byte, 0, 4*len(ips))
	for _, ip := range ips {
		value = append(value, ip[:]...)
	}
	return l.Add(code, value)
}

// Uint8 requires the option's value to be exactly one byte.
func (o Option) Uint8() (uint8, error) {
	if len(o.Value) != 1 {
		return 0, fmt.Errorf("%w: option %d is %d bytes, want 1", ErrMalformedOption, o.Code, len(o.Value))
	}
	return o.Value[0], nil
}

// Uint32 requires the option's value to be exactly four bytes, big-endian.
func (o Option) Uint32() (uint32, error) {
	if len(o.Value) != 4 {
		return 0, fmt.Errorf("%w: option %d is %d bytes, want 4", ErrMalformedOption, o.Code, len(o.Value))
	}
	return uint32(o.Value[0])<<24 | uint32(o.Value[1])<<16 | uint32(o.Value[2])<<8 | uint32(o.Value[3]), nil
}

// IPv4 requires the option's value to be exactly four bytes.
func (o Option) IPv4() ([4]byte, error) {
	var ip [4]byte
	if len(o.Value) != 4 {
		return ip, fmt.Errorf("%w: option %d is %d bytes, want 4", ErrMalformedOption, o.Code, len(o.Value))
	}
	copy(ip[:], o.Value)
	return ip, nil
}

// IPv4List interprets the value as n*4 bytes; a residue that doesn't divide
// evenly is rejected.
func (o Option) IPv4List() ([][4]byte, error) {
	if len(o.Value)%4 != 0 || len(o.Value) == 0 {
		return nil, fmt.Errorf("%w: option %d is %d bytes, not a multiple of 4", ErrMalformedOption, o.Code, len(o.Value))
	}
	out := make([][4]byte, len(o.Value)/4)
	for i := range out {
		copy(out[i][:], o.Value[i*4:i*4+4])
	}
	return out, nil
}

// String treats the value as a raw byte string with no implicit
// termination.
func (o Option) String() string {
	return string(o.Value)
}

// serialize writes the option list in insertion order, then appends
// endCode exactly once. Zero-length options are written verbatim.
func (l OptionList) serialize(endCode uint8, hasEnd bool) []byte {
	var out []byte
	for _, o := range l.opts {
		out = append(out, o.Code, uint8(len(o.Value)))
		out = append(out, o.Value...)
	}
	if hasEnd {
		out = append(out, endCode)
	}
	return out
}

// serializedLen returns the byte length serialize() would produce, without
// allocating the buffer. Used by DHCP's HeaderSize() and its options-area
// size check.
func (l OptionList) serializedLen(hasEnd bool) int {
	n := 0
	for _, o := range l.opts {
		n += 2 + len(o.Value)
	}
	if hasEnd {
		n++
	}
	return n
}

package pdu

// bootpHeaderSize is RFC 951's fixed BOOTP header: op, htype, hlen, hops,
// xid, secs, flags, ciaddr, yiaddr, siaddr, giaddr, chaddr[16], sname[64],
// file[128].
const bootpHeaderSize = 236

// bootpFields is the BOOTP header DHCP carries as its immediate enclosing
// record. DHCP embeds this as a plain value and forwards accessors for it
// rather than modeling BOOTP as a separate PDU in the chain.
type bootpFields struct {
	op, htype, hlen, hops          uint8
	xid                            uint32
	secs, flags                    uint16
	ciaddr, yiaddr, siaddr, giaddr [4]byte
	chaddr                         [16]byte
	sname                          [64]byte
	file                           [128]byte
}

// BOOTP opcodes.
const (
	BootRequest uint8 = 1
	BootReply   uint8 = 2
)

func parseBootpFields(r *reader) (bootpFields, error) {
	var f bootpFields
	var err error
	if f.op, err = r.u8(); err != nil {
		return f, err
	}
	if f.htype, err = r.u8(); err != nil {
		return f, err
	}
	if f.hlen, err = r.u8(); err != nil {
		return f, err
	}
	if f.hops, err = r.u8(); err != nil {
		return f, err
	}
	if f.xid, err = r.u32(); err != nil {
		return f, err
	}
	if f.secs, err = r.u16(); err != nil {
		return f, err
	}
	if f.flags, err = r.u16(); err != nil {
		return f, err
	}
	for _, dst := range []*[4]byte{&f.ciaddr, &f.yiaddr, &f.siaddr, &f.giaddr} {
		b, err := r.bytes(4)
		if err != nil {
			return f, err
		}
		copy(dst[:], b)
	}
	chaddr, err := r.bytes(16)
	if err != nil {
		return f, err
	}
	copy(f.chaddr[:], chaddr)
	sname, err := r.bytes(64)
	if err != nil {
		return f, err
	}
	copy(f.sname[:], sname)
	file, err := r.bytes(128)
	if err != nil {
		return f, err
	}
	copy(f.file[:], file)
	return f, nil
}

func (f bootpFields) write(w *writeBuffer) {
	w.putU8(0, f.op)
	w.putU8(1, f.htype)
	w.putU8(2, f.hlen)
	w.putU8(3, f.hops)
	w.putU32(4, f.xid)
	w.putU16(8, f.secs)
	w.putU16(10, f.flags)
	w.putBytes(12, f.ciaddr[:])
	w.putBytes(16, f.yiaddr[:])
	w.putBytes(20, f.siaddr[:])
	w.putBytes(24, f.giaddr[:])
	w.putBytes(28, f.chaddr[:])
	w.putBytes(44, f.sname[:])
	w.putBytes(108, f.file[:])
}

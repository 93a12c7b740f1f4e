package pdu

import "fmt"

// dhcpMagicCookie is RFC 2131's fixed marker between the BOOTP header and
// the option area.
const dhcpMagicCookie uint32 = 0x63825363

// DHCP message types, carried inside option 53.
const (
	DHCPDiscover uint8 = 1
	DHCPOffer    uint8 = 2
	DHCPRequest  uint8 = 3
	DHCPDecline  uint8 = 4
	DHCPAck      uint8 = 5
	DHCPNak      uint8 = 6
	DHCPRelease  uint8 = 7
	DHCPInform   uint8 = 8
)

// DHCP option codes this codec provides typed convenience accessors for.
const (
	optPad            uint8 = 0
	optSubnetMask     uint8 = 1
	optRouters        uint8 = 3
	optRequestedIP    uint8 = 50
	optLeaseTime      uint8 = 51
	optMessageType    uint8 = 53
	optServerID       uint8 = 54
	optEnd            uint8 = 255
)

// dhcpMinDatagramSize is the minimum IP datagram size a BOOTP/DHCP relay or
// server is guaranteed to forward without fragmentation (RFC 1542 §2.1,
// RFC 2131 §2). The option area is capped so the full BOOTP header, magic
// cookie, and options never grow the DHCP payload past it.
const dhcpMinDatagramSize = 576

// DHCP extends BOOTP with the magic cookie and option area. Its Kind()
// reports KindUDP rather than a DHCP-specific kind, so a chain search for
// UDP locates a DHCP layer the same way it would locate any other UDP
// payload; FindKind exists to let callers search by this reported kind
// without going through a concrete-type assertion.
type DHCP struct {
	Base
	bootp   bootpFields
	options OptionList
}

// NewDHCP constructs a detached DHCP message with a zeroed BOOTP header.
func NewDHCP(op uint8, messageType uint8) (*DHCP, error) {
	d := &DHCP{bootp: bootpFields{op: op, htype: 1, hlen: 6}}
	d.Init(d)
	if err := d.options.AddUint8(optMessageType, messageType); err != nil {
		return nil, err
	}
	return d, nil
}

func newDHCPFromBytes(buf []byte) (PDU, error) {
	r := newReader(buf)
	fields, err := parseBootpFields(r)
	if err != nil {
		return nil, fmt.Errorf("dhcp: %w", err)
	}
	cookie, err := r.u32()
	if err != nil {
		return nil, fmt.Errorf("dhcp: %w", err)
	}
	if cookie != dhcpMagicCookie {
		return nil, fmt.Errorf("%w: missing DHCP magic cookie", ErrMalformedOption)
	}
	options, err := ParseOptionList(r.rest(), optPad, optEnd)
	if err != nil {
		return nil, fmt.Errorf("dhcp: %w", err)
	}

	d := &DHCP{bootp: fields, options: options}
	d.Init(d)
	return d, nil
}

func (d *DHCP) Kind() Kind { return KindUDP }

func (d *DHCP) HeaderSize() int {
	return bootpHeaderSize + 4 + d.options.serializedLen(true)
}

// TransactionID, ClientHardwareAddress, and the rest of the forwarded BOOTP
// accessors simply read through to the embedded bootpFields value.
func (d *DHCP) Operation() uint8                { return d.bootp.op }
func (d *DHCP) TransactionID() uint32           { return d.bootp.xid }
func (d *DHCP) ClientIP() [4]byte               { return d.bootp.ciaddr }
func (d *DHCP) YourIP() [4]byte                 { return d.bootp.yiaddr }
func (d *DHCP) ServerIP() [4]byte               { return d.bootp.siaddr }
func (d *DHCP) GatewayIP() [4]byte              { return d.bootp.giaddr }
func (d *DHCP) ClientHardwareAddress() [16]byte { return d.bootp.chaddr }

func (d *DHCP) SetTransactionID(xid uint32) { d.bootp.xid = xid }
func (d *DHCP) SetClientIP(ip [4]byte)      { d.bootp.ciaddr = ip }
func (d *DHCP) SetYourIP(ip [4]byte)        { d.bootp.yiaddr = ip }
func (d *DHCP) SetServerIP(ip [4]byte)      { d.bootp.siaddr = ip }
func (d *DHCP) SetGatewayIP(ip [4]byte)     { d.bootp.giaddr = ip }

func (d *DHCP) SetClientHardwareAddress(mac HardwareAddr) {
	copy(d.bootp.chaddr[:6], mac[:])
}

// Options exposes the raw option list for callers needing a code this
// codec has no typed accessor for.
func (d *DHCP) Options() OptionList { return d.options }

// checkOptionsAreaSize rejects an addition that would grow the serialized
// DHCP message past dhcpMinDatagramSize. addedBytes is the option's own
// on-wire footprint: one code byte, one length byte, and its value.
func (d *DHCP) checkOptionsAreaSize(code uint8, addedBytes int) error {
	if bootpHeaderSize+4+d.options.serializedLen(true)+addedBytes > dhcpMinDatagramSize {
		return fmt.Errorf("%w: option %d would grow the DHCP message past the %d-byte minimum datagram size", ErrOptionTooLarge, code, dhcpMinDatagramSize)
	}
	return nil
}

// SearchMessageType returns option 53's value, or false when absent.
func (d *DHCP) SearchMessageType() (uint8, bool) {
	opt, ok := d.options.Get(optMessageType)
	if !ok {
		return 0, false
	}
	v, err := opt.Uint8()
	if err != nil {
		return 0, false
	}
	return v, true
}

// AddMessageType appends another option 53 (DISCOVER/OFFER/REQUEST/...).
// NewDHCP already adds one and lookups return the first match, so
// SearchMessageType keeps reporting the type given to NewDHCP.
func (d *DHCP) AddMessageType(t uint8) error {
	if err := d.checkOptionsAreaSize(optMessageType, 3); err != nil {
		return err
	}
	return d.options.AddUint8(optMessageType, t)
}

// SearchSubnetMask returns option 1's value, or false when absent.
func (d *DHCP) SearchSubnetMask() ([4]byte, bool) {
	opt, ok := d.options.Get(optSubnetMask)
	if !ok {
		return [4]byte{}, false
	}
	v, err := opt.IPv4()
	if err != nil {
		return [4]byte{}, false
	}
	return v, true
}

// AddSubnetMask sets option 1.
func (d *DHCP) AddSubnetMask(mask [4]byte) error {
	if err := d.checkOptionsAreaSize(optSubnetMask, 6); err != nil {
		return err
	}
	return d.options.AddIPv4(optSubnetMask, mask)
}

// SearchRoutersOption returns option 3's address list, or false when absent
// or malformed.
func (d *DHCP) SearchRoutersOption() ([][4]byte, bool) {
	opt, ok := d.options.Get(optRouters)
	if !ok {
		return nil, false
	}
	v, err := opt.IPv4List()
	if err != nil {
		return nil, false
	}
	return v, true
}

// AddRoutersOption sets option 3.
func (d *DHCP) AddRoutersOption(routers [][4]byte) error {
	if err := d.checkOptionsAreaSize(optRouters, 2+4*len(routers)); err != nil {
		return err
	}
	return d.options.AddIPv4List(optRouters, routers)
}

// SearchLeaseTime returns option 51's value in seconds, or false when
// absent.
func (d *DHCP) SearchLeaseTime() (uint32, bool) {
	opt, ok := d.options.Get(optLeaseTime)
	if !ok {
		return 0, false
	}
	v, err := opt.Uint32()
	if err != nil {
		return 0, false
	}
	return v, true
}

// AddLeaseTime sets option 51.
func (d *DHCP) AddLeaseTime(seconds uint32) error {
	if err := d.checkOptionsAreaSize(optLeaseTime, 6); err != nil {
		return err
	}
	return d.options.AddUint32(optLeaseTime, seconds)
}

// SearchServerIdentifier returns option 54's value, or false when absent.
func (d *DHCP) SearchServerIdentifier() ([4]byte, bool) {
	opt, ok := d.options.Get(optServerID)
	if !ok {
		return [4]byte{}, false
	}
	v, err := opt.IPv4()
	if err != nil {
		return [4]byte{}, false
	}
	return v, true
}

// AddServerIdentifier sets option 54.
func (d *DHCP) AddServerIdentifier(ip [4]byte) error {
	if err := d.checkOptionsAreaSize(optServerID, 6); err != nil {
		return err
	}
	return d.options.AddIPv4(optServerID, ip)
}

// SearchRequestedAddress returns option 50's value, or false when absent.
func (d *DHCP) SearchRequestedAddress() ([4]byte, bool) {
	opt, ok := d.options.Get(optRequestedIP)
	if !ok {
		return [4]byte{}, false
	}
	v, err := opt.IPv4()
	if err != nil {
		return [4]byte{}, false
	}
	return v, true
}

// AddRequestedAddress sets option 50.
func (d *DHCP) AddRequestedAddress(ip [4]byte) error {
	if err := d.checkOptionsAreaSize(optRequestedIP, 6); err != nil {
		return err
	}
	return d.options.AddIPv4(optRequestedIP, ip)
}

func (d *DHCP) Clone() PDU {
	c := &DHCP{bootp: d.bootp}
	for _, o := range d.options.opts {
		c.options.opts = append(c.options.opts, Option{Code: o.Code, Value: append([]byte(nil), o.Value...)})
	}
	c.Init(c)
	if d.Inner() != nil {
		c.SetInner(d.Inner().Clone())
	}
	return c
}

func (d *DHCP) WriteSerialization(buf []byte, totalSize int, parent PDU) error {
	if len(buf) < bootpHeaderSize+4 {
		return fmt.Errorf("%w: dhcp header needs at least %d bytes", ErrBufferTooShort, bootpHeaderSize+4)
	}
	w := &writeBuffer{buf: buf}
	d.bootp.write(w)
	w.putU32(bootpHeaderSize, dhcpMagicCookie)
	w.putBytes(bootpHeaderSize+4, d.options.serialize(optEnd, true))
	return nil
}

package pdu

// Link is a data-link type, the small integer libpcap captures tag the
// outermost framing of a packet with. It selects which constructor
// FromBytes hands the buffer to.
type Link uint32

const (
	LinkNull       Link = 0   // BSD loopback (DLT_NULL)
	LinkEthernet   Link = 1   // EN10MB
	LinkRaw        Link = 101 // raw IP, no link framing at all
	LinkIEEE802_11 Link = 105
	LinkLinuxSLL   Link = 113
)

// Host address-family values used by DLT_NULL's 4-byte family field. These
// are BSD's own wire constants, not the reading host's libc AF_*/PF_*
// symbols — libpcap captures embed the BSD values regardless of the host
// that later reads them.
const (
	pfINET uint32 = 2
	pfLLC  uint32 = 0x10000
)

// FromBytes recognizes the outermost link-layer framing named by dlt and
// recursively decodes the nested chain from buf. It is the single public
// entry point for parsing a captured or synthetic buffer. Only LinkEthernet,
// LinkNull, LinkRaw (decoded as IPv4) and LinkIEEE802_11 have a decoder; any
// other dlt, LinkLinuxSLL included, yields a single RawPDU holding all of buf.
func FromBytes(dlt Link, buf []byte) (PDU, error) {
	switch dlt {
	case LinkEthernet:
		return newEthernetFromBytes(buf)
	case LinkNull:
		return newLoopbackFromBytes(buf)
	case LinkRaw:
		return newIPv4FromBytes(buf)
	case LinkIEEE802_11:
		return newDot11FromBytes(buf)
	default:
		return newRawPDU(buf), nil
	}
}

// constructor builds a PDU from the residual buffer handed to it by the
// demultiplexer.
type constructor func([]byte) (PDU, error)

type dispatchKey struct {
	parent   Kind
	selector uint32
}

// dispatchTable is the closed mapping from (parent kind, selector) to
// constructor. It is built once, as the single literal in init below —
// there is no runtime registration and nothing ever mutates it afterward.
// It is assigned in init rather than by an initializer because the IPv4,
// IPv6 and loopback constructors call demux, which reads this table.
var dispatchTable map[dispatchKey]constructor

func init() {
	dispatchTable = map[dispatchKey]constructor{
		{KindEthernet, 0x0800}: func(b []byte) (PDU, error) { return newIPv4FromBytes(b) },
		{KindEthernet, 0x0806}: func(b []byte) (PDU, error) { return newARPFromBytes(b) },
		{KindEthernet, 0x86DD}: func(b []byte) (PDU, error) { return newIPv6FromBytes(b) },
		{KindIPv4, 6}:          func(b []byte) (PDU, error) { return newTCPFromBytes(b) },
		{KindIPv4, 17}:         func(b []byte) (PDU, error) { return newUDPFromBytes(b) },
		{KindIPv6, 6}:          func(b []byte) (PDU, error) { return newTCPFromBytes(b) },
		{KindIPv6, 17}:         func(b []byte) (PDU, error) { return newUDPFromBytes(b) },
		{KindLoopback, pfINET}: func(b []byte) (PDU, error) { return newIPv4FromBytes(b) },
		{KindLoopback, pfLLC}:  func(b []byte) (PDU, error) { return newLLCFromBytes(b) },
	}
}

// demux looks up the constructor for (parent, selector) and invokes it. A
// miss constructs a RawPDU holding the residual bytes — an unrecognized
// next-protocol value is not itself an error, it just downgrades to raw. A
// hit whose constructor fails propagates that error to the caller, which
// must leave its own Inner() unset and keep the residual bytes recoverable
// rather than silently retrying as raw.
func demux(parent Kind, selector uint32, data []byte) (PDU, error) {
	ctor, ok := dispatchTable[dispatchKey{parent, selector}]
	if !ok {
		return newRawPDU(data), nil
	}
	return ctor(data)
}

// Reverse mappings from an inner PDU's Kind back to the selector value a
// parent layer stamps into its own next-protocol/type field during
// serialization. These are the mirror image of dispatchTable's keys and
// must stay consistent with it for the round-trip property to hold.
var etherTypeForKind = map[Kind]uint16{
	KindIPv4: 0x0800,
	KindARP:  0x0806,
	KindIPv6: 0x86DD,
}

var ipProtoForKind = map[Kind]uint8{
	KindTCP: 6,
	KindUDP: 17,
}

var loopbackFamilyForKind = map[Kind]uint32{
	KindIPv4: pfINET,
	KindLLC:  pfLLC,
}

// demuxUDPPort resolves UDP's two-sided selector (either src or dst port
// identifies DHCP) before falling back to the generic table, which only
// models a single selector value per row.
func demuxUDPPort(srcPort, dstPort uint16, data []byte) (PDU, error) {
	if srcPort == 67 || srcPort == 68 || dstPort == 67 || dstPort == 68 {
		return newDHCPFromBytes(data)
	}
	return newRawPDU(data), nil
}

package pdu

import "fmt"

// 802.11 information element tags this codec decodes into typed views
// (IEEE 802.11-2012 §8.4.2).
const (
	dot11TagSSID           uint8 = 0
	dot11TagSupportedRates uint8 = 1
	dot11TagTIM            uint8 = 5
	dot11TagCountry        uint8 = 7
	dot11TagRSN            uint8 = 48
)

func isKnownDot11Tag(tag uint8) bool {
	switch tag {
	case dot11TagSSID, dot11TagSupportedRates, dot11TagTIM, dot11TagCountry, dot11TagRSN:
		return true
	default:
		return false
	}
}

// SSID returns the SSID element's value as a string, or false when the
// beacon carries no SSID element.
func (b *Dot11Beacon) SSID() (string, bool) {
	e, ok := b.elements.Get(dot11TagSSID)
	if !ok {
		return "", false
	}
	return string(e.Value), true
}

// SupportedRate is one entry of the supported-rates element: the encoded
// rate in units of 0.5 Mbps, with the top bit marking it as a BSS basic
// rate.
type SupportedRate struct {
	MbpsTimesTwo uint8
	Basic        bool
}

// Mbps returns the decoded rate in megabits per second.
func (r SupportedRate) Mbps() float64 {
	return float64(r.MbpsTimesTwo&0x7F) * 0.5
}

// SupportedRates decodes the supported-rates element, or false when absent.
func (b *Dot11Beacon) SupportedRates() ([]SupportedRate, bool) {
	e, ok := b.elements.Get(dot11TagSupportedRates)
	if !ok {
		return nil, false
	}
	rates := make([]SupportedRate, len(e.Value))
	for i, v := range e.Value {
		rates[i] = SupportedRate{MbpsTimesTwo: v & 0x7F, Basic: v&0x80 != 0}
	}
	return rates, true
}

// CountryInfo is the decoded country element: a 3-byte regulatory code
// followed by (first_channel, number_channels, max_transmit_power) triples.
type CountryInfo struct {
	Country           string
	FirstChannel      []uint8
	NumberChannels    []uint8
	MaxTransmitPower  []uint8
}

// Country decodes the country element, or false when absent or malformed.
func (b *Dot11Beacon) Country() (CountryInfo, bool) {
	e, ok := b.elements.Get(dot11TagCountry)
	if !ok || len(e.Value) < 3 {
		return CountryInfo{}, false
	}
	info := CountryInfo{Country: string(e.Value[:3])}
	triples := e.Value[3:]
	for len(triples) >= 3 {
		info.FirstChannel = append(info.FirstChannel, triples[0])
		info.NumberChannels = append(info.NumberChannels, triples[1])
		info.MaxTransmitPower = append(info.MaxTransmitPower, triples[2])
		triples = triples[3:]
	}
	return info, true
}

// AddCountry sets the country element from a CountryInfo.
func (b *Dot11Beacon) AddCountry(info CountryInfo) error {
	if len(info.Country) != 3 {
		return fmt.Errorf("%w: country code must be 3 bytes", ErrFieldOverflow)
	}
	if len(info.FirstChannel) != len(info.NumberChannels) || len(info.FirstChannel) != len(info.MaxTransmitPower) {
		return fmt.Errorf("%w: country triples must have matching lengths", ErrMalformedOption)
	}
	value := []byte(info.Country)
	for i := range info.FirstChannel {
		value = append(value, info.FirstChannel[i], info.NumberChannels[i], info.MaxTransmitPower[i])
	}
	return b.elements.Add(dot11TagCountry, value, isKnownDot11Tag)
}

// TIMInfo is the decoded traffic indication map element.
type TIMInfo struct {
	DTIMCount           uint8
	DTIMPeriod          uint8
	BitmapControl       uint8
	PartialVirtualBitmap []byte
}

// TIM decodes the TIM element, or false when absent or malformed.
func (b *Dot11Beacon) TIM() (TIMInfo, bool) {
	e, ok := b.elements.Get(dot11TagTIM)
	if !ok || len(e.Value) < 3 {
		return TIMInfo{}, false
	}
	return TIMInfo{
		DTIMCount:            e.Value[0],
		DTIMPeriod:           e.Value[1],
		BitmapControl:        e.Value[2],
		PartialVirtualBitmap: append([]byte(nil), e.Value[3:]...),
	}, true
}

// RSNInfo is the decoded robust security network element: version, the
// group cipher suite, the pairwise cipher suite list, the AKM suite list,
// and the RSN capabilities field.
type RSNInfo struct {
	Version         uint16
	GroupSuiteOUI   [3]byte
	GroupSuiteType  uint8
	PairwiseSuites  [][4]byte
	AKMSuites       [][4]byte
	Capabilities    uint16
}

// RSN decodes the RSN element, or false when absent or truncated.
func (b *Dot11Beacon) RSN() (RSNInfo, bool) {
	e, ok := b.elements.Get(dot11TagRSN)
	if !ok {
		return RSNInfo{}, false
	}
	r := newReader(e.Value)
	var info RSNInfo
	version, err := r.u16le()
	if err != nil {
		return RSNInfo{}, false
	}
	info.Version = version
	group, err := r.bytes(4)
	if err != nil {
		return RSNInfo{}, false
	}
	copy(info.GroupSuiteOUI[:], group[:3])
	info.GroupSuiteType = group[3]

	pairwiseCount, err := r.u16le()
	if err != nil {
		return RSNInfo{}, false
	}
	for i := 0; i < int(pairwiseCount); i++ {
		suite, err := r.bytes(4)
		if err != nil {
			return RSNInfo{}, false
		}
		var s [4]byte
		copy(s[:], suite)
		info.PairwiseSuites = append(info.PairwiseSuites, s)
	}

	akmCount, err := r.u16le()
	if err != nil {
		return RSNInfo{}, false
	}
	for i := 0; i < int(akmCount); i++ {
		suite, err := r.bytes(4)
		if err != nil {
			return RSNInfo{}, false
		}
		var s [4]byte
		copy(s[:], suite)
		info.AKMSuites = append(info.AKMSuites, s)
	}

	if r.remaining() >= 2 {
		caps, err := r.u16le()
		if err == nil {
			info.Capabilities = caps
		}
	}
	return info, true
}

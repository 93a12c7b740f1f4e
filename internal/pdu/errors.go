package pdu

import "errors"

// Error kinds form a closed set. Constructors and setters wrap one of these
// with fmt.Errorf("...: %w", ...) so callers can still errors.Is against the
// sentinel.
var (
	// ErrBufferTooShort is returned by a constructor when its buffer is
	// smaller than the protocol's minimum header size.
	ErrBufferTooShort = errors.New("pdu: buffer too short")

	// ErrMalformedOption is returned when an option or tagged element's
	// declared length is inconsistent with its expected encoding.
	ErrMalformedOption = errors.New("pdu: malformed option")

	// ErrTruncatedOption is returned when an option's declared length
	// exceeds the remaining buffer.
	ErrTruncatedOption = errors.New("pdu: truncated option")

	// ErrFieldOverflow is returned by a setter whose value does not fit
	// the protocol's encoded width.
	ErrFieldOverflow = errors.New("pdu: field overflow")

	// ErrOptionTooLarge is returned when adding an option would push the
	// option area past the protocol's declared maximum.
	ErrOptionTooLarge = errors.New("pdu: option too large")
)

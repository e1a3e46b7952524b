package action

import "errors"

var (
	// ErrUnknownKeyEventType is returned for a key-event kind outside 0..2.
	ErrUnknownKeyEventType = errors.New("unknown key event type")

	// ErrMissingPayload is returned when a drag action carries no point.
	ErrMissingPayload = errors.New("action has no payload")

	// ErrPayloadLength is returned when a record's payload does not match its declared length.
	ErrPayloadLength = errors.New("payload length mismatch")

	// ErrTypeMismatch is returned when an action's tag does not belong to its payload family.
	ErrTypeMismatch = errors.New("action type does not match payload")

	// ErrInvalidLength is returned for negative or oversized length prefixes.
	ErrInvalidLength = errors.New("invalid length prefix")

	// ErrInvalidString is returned when encoding text with a NUL byte or invalid UTF-8.
	ErrInvalidString = errors.New("string is not NUL-free UTF-8")
)

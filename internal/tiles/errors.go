package tiles

import (
	"errors"
	"fmt"
)

// ErrInvalidTile matches any *InvalidTileError via errors.Is.
var ErrInvalidTile = errors.New("invalid tile data")

// InvalidReason says which placeholder check rejected a tile.
type InvalidReason string

const (
	// ReasonPayloadLength means the raw body length matched the signature.
	ReasonPayloadLength InvalidReason = "payload-length"
	// ReasonDimensions means the decoded width and height matched the signature.
	ReasonDimensions InvalidReason = "dimensions"
)

// TransportError reports a failed request or body read.
type TransportError struct {
	Request Request
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("tile %d (%s): transport error: %v", e.Request.Index, e.Request.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// InvalidTileError reports a tile that matched the placeholder signature.
type InvalidTileError struct {
	Request Request
	Reason  InvalidReason

	// Size is the payload length for ReasonPayloadLength.
	Size int

	// Width and Height are set for ReasonDimensions.
	Width  int
	Height int
}

func (e *InvalidTileError) Error() string {
	switch e.Reason {
	case ReasonDimensions:
		return fmt.Sprintf("tile %d (%s): %v: decoded size %dx%d matches placeholder",
			e.Request.Index, e.Request.URL, ErrInvalidTile, e.Width, e.Height)
	default:
		return fmt.Sprintf("tile %d (%s): %v: payload of %d bytes matches placeholder",
			e.Request.Index, e.Request.URL, ErrInvalidTile, e.Size)
	}
}

// Is lets errors.Is(err, ErrInvalidTile) match.
func (e *InvalidTileError) Is(target error) bool {
	return target == ErrInvalidTile
}

// DecodeError reports a payload that is not a supported image.
type DecodeError struct {
	Request Request
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tile %d (%s): %v", e.Request.Index, e.Request.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TaskError reports a fetch task that panicked instead of returning.
type TaskError struct {
	Request Request
	Value   any
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("tile %d (%s): task panicked: %v", e.Request.Index, e.Request.URL, e.Value)
}

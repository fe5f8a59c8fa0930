package pixbuf

import "errors"

// Error kinds shared by the buffer, engine and adapter packages. Callers
// should match them with errors.Is; the returned errors usually wrap one of
// these with more context.
var (
	// ErrInvalidArgument is a caller error: bad dimensions, mismatched
	// sizes, an out-of-range shear angle or the wrong number of operands.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDecode is returned when an image has no raster that can be read.
	ErrDecode = errors.New("decode error")

	// ErrEncode is returned when an output image cannot be constructed.
	ErrEncode = errors.New("encode error")

	// ErrOutOfRange is returned by the pixel accessors for coordinates
	// outside the buffer.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrUnavailable is returned when backing storage cannot be obtained.
	ErrUnavailable = errors.New("unavailable")
)

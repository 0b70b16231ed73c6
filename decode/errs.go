package decode

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed reports input that does not follow the binary version 9
	// grammar: truncation, bad counts and lengths, out-of-range string or
	// element indexes, unknown attribute type tags, header syntax errors.
	ErrMalformed = errors.New("malformed dmx")

	// ErrUnsupportedVersion reports a readable DMX header naming an
	// encoding other than binary version 9.
	ErrUnsupportedVersion = errors.New("unsupported dmx encoding")
)

// OffsetError records the input byte offset at which decoding stopped.
// Every grammar violation is wrapped in one; retrieve it with errors.As.
type OffsetError struct {
	Offset int64
	Err    error
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *OffsetError) Unwrap() error { return e.Err }

package tambour

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds reported by the library. Use errors.Is to test for them,
// the returned errors usually carry more context.
var (
	ErrInvalidColor      = errors.New("invalid color")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrRangeExceeded     = errors.New("value out of encodable range")
	ErrTruncated         = errors.New("truncated input")
	ErrCorrupt           = errors.New("corrupt input")
	ErrSingular          = errors.New("singular matrix")
	ErrNeedleCount       = errors.New("needle count exceeded")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Error describes a failure tied to a position in a pattern or a byte stream.
// Index is the offending stitch index and Offset the byte offset; either is -1
// when it does not apply.
type Error struct {
	Kind   error
	Index  int
	Offset int64
	Msg    string
}

func (e *Error) Error() string {
	s := e.Kind.Error()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	switch {
	case e.Index >= 0:
		s += fmt.Sprintf(" (stitch %d)", e.Index)
	case e.Offset >= 0:
		s += fmt.Sprintf(" (offset %d)", e.Offset)
	}
	return s
}

// Unwrap returns the error kind so that errors.Is matches it.
func (e *Error) Unwrap() error { return e.Kind }

// StitchError returns an error of the given kind located at a stitch index.
func StitchError(kind error, index int, format string, args ...any) error {
	return &Error{Kind: kind, Index: index, Offset: -1, Msg: fmt.Sprintf(format, args...)}
}

// OffsetError returns an error of the given kind located at a byte offset.
func OffsetError(kind error, offset int64, format string, args ...any) error {
	return &Error{Kind: kind, Index: -1, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

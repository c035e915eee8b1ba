package codec

import "errors"

// ErrTrailingBytes is returned by DecodeExact when the input is longer than the value.
var ErrTrailingBytes = errors.New("trailing bytes")

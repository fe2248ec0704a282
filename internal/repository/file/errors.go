package file

import "errors"

var (
	ErrInvalidPath       = errors.New("file store: invalid path")
	ErrEncodeFailed      = errors.New("file store: encode failed")
	ErrDecodeFailed      = errors.New("file store: decode failed")
	ErrAtomicWriteFailed = errors.New("file store: atomic write failed")
)

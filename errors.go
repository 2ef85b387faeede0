package sqrtrank

import "github.com/pkg/errors"

var (
	// ErrOutOfRange is returned when an index lies outside [1, Num()].
	ErrOutOfRange = errors.New("index out of range")

	// ErrCorruptSnapshot is returned by UnmarshalBinary when the encoded
	// state is inconsistent.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

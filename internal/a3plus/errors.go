package a3plus

import (
	"errors"
	"fmt"
)

// ErrInvalidData is returned for bitstream-grammar violations within a
// channel unit; per spec §7 this never poisons the decoder.
var ErrInvalidData = errors.New("atrac3plus: invalid frame data")

// ErrNotImplemented is returned for recognised-but-unsupported features
// (CH_UNIT_EXTENSION, amplitude_mode=0), spec §4.5 "Failure semantics".
var ErrNotImplemented = errors.New("atrac3plus: not implemented")

func errInvalidData(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidData, msg)
}

func errNotImplemented(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotImplemented, msg)
}

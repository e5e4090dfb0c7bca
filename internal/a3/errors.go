package a3

import (
	"errors"
	"fmt"
)

// ErrInvalidData is returned for any bitstream-grammar violation within a
// frame; per spec §7 this never poisons the decoder — the caller discards
// the partial frame and continues with the next one.
var ErrInvalidData = errors.New("atrac3: invalid frame data")

func errInvalidData(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidData, msg)
}

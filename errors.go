package atrac3

// Error represents a streaming API result code (spec §6 "Result codes").
type Error int

const (
	ErrNone             Error = 0
	ErrGeneric          Error = -1
	ErrInvalidArgs      Error = -2
	ErrInvalidOperation Error = -3
	ErrOutOfMemory      Error = -4
	ErrOutOfRange       Error = -5
	ErrInvalidFile      Error = -10
	ErrAtEnd            Error = -17
	ErrBadSeek          Error = -25
	ErrNotImplemented   Error = -29
)

var errMessages = map[Error]string{
	ErrNone:             "no error",
	ErrGeneric:          "generic error",
	ErrInvalidArgs:      "invalid arguments",
	ErrInvalidOperation: "invalid operation",
	ErrOutOfMemory:      "out of memory",
	ErrOutOfRange:       "out of range",
	ErrInvalidFile:      "invalid or unsupported file",
	ErrAtEnd:            "at end of stream",
	ErrBadSeek:          "seek failed",
	ErrNotImplemented:   "not implemented",
}

// Error implements the error interface.
func (e Error) Error() string {
	if msg, ok := errMessages[e]; ok {
		return msg
	}
	return "unknown error"
}

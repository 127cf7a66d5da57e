package amf

import "fmt"

// DecodeError means the archive does not hold a usable model.
type DecodeError struct {
	Msg string
}

func (e *DecodeError) Error() string {
	return "amf: " + e.Msg
}

func decodeErrorf(format string, args ...interface{}) error {
	return &DecodeError{Msg: fmt.Sprintf(format, args...)}
}

// FormatError reports stream data that cannot be evaluated as requested.
type FormatError struct {
	Usage  Usage
	Format Format
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("amf: %s stream (%s): %s", e.Usage, e.Format, e.Msg)
}

package adf

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrBadMagic           = errors.New("adf: bad magic")
	ErrUnsupportedVersion = errors.New("adf: unsupported version")
)

// FormatError reports a structurally invalid archive.
type FormatError struct {
	Offset int64
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("adf: %s (offset 0x%x)", e.Msg, e.Offset)
}

func formatErrorf(offset int64, format string, args ...interface{}) error {
	return &FormatError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// IsFormatError reports whether the cause of err is a *FormatError.
func IsFormatError(err error) bool {
	_, ok := errors.Cause(err).(*FormatError)
	return ok
}

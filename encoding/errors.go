package encoding

import (
	"errors"
	"fmt"
)

var ErrBadBufferLength = errors.New("invalid buffer length")

type ErrorKind int

const (
	KIND_NONE ErrorKind = iota
	KIND_BAD_MAGIC
	KIND_BAD_BUFFER_LENGTH
	KIND_OTHER
)

func (k ErrorKind) String() string {
	switch k {
	case KIND_NONE:
		return "none"
	case KIND_BAD_MAGIC:
		return "bad magic"
	case KIND_BAD_BUFFER_LENGTH:
		return "bad buffer length"
	default:
		return "other"
	}
}

type BadMagicError struct {
	magic uint32
}

type OtherError struct {
	err error
}

func NewBadMagic(magic uint32) error {
	return &BadMagicError{magic: magic}
}

func (e *BadMagicError) Error() string {
	return fmt.Sprintf("unknown magic: %#08x", e.magic)
}

func (e *BadMagicError) Magic() uint32 {
	return e.magic
}

func (e *OtherError) Error() string {
	return fmt.Sprintf("internal error: %v", e.err)
}

func (e *OtherError) Unwrap() error {
	return e.err
}

// Wrap places err in the taxonomy. Errors that already belong to it are
// returned unchanged; anything else becomes an *OtherError.
func Wrap(err error) error {
	if err == nil || KindOf(err) != KIND_OTHER {
		return err
	}
	var other *OtherError
	if errors.As(err, &other) {
		return err
	}
	return &OtherError{err: err}
}

func KindOf(err error) ErrorKind {
	if err == nil {
		return KIND_NONE
	}
	if errors.Is(err, ErrBadBufferLength) {
		return KIND_BAD_BUFFER_LENGTH
	}
	var magic *BadMagicError
	if errors.As(err, &magic) {
		return KIND_BAD_MAGIC
	}
	return KIND_OTHER
}

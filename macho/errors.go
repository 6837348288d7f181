package macho

import (
	"errors"
	"fmt"
)

var (
	ErrNoEntryPoint   = errors.New("image has no LC_UNIXTHREAD entry point")
	ErrSymbolNotFound = errors.New("symbol not found")
)

// FormatError reports a structurally invalid load command region.
type FormatError struct {
	Offset int64
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s at offset %#x", e.Msg, e.Offset)
}

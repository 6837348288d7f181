package symbol

import (
	"errors"

	"github.com/wnxd/machoinspect/encoding"
	"github.com/wnxd/machoinspect/reader"
)

var ErrNoReader = errors.New("symbol name has no reader")

// Name is a symbol name that has not been read yet. It records where the
// string lives and reads it on demand.
type Name struct {
	reader *reader.Reader
	offset int64
}

func NewName(r *reader.Reader, offset int64) Name {
	return Name{reader: r, offset: offset}
}

// Offset is the absolute position of the name's first byte.
func (n Name) Offset() int64 {
	return n.offset
}

// Resolve reads the name, reusing an earlier read of the same offset through
// the same reader.
func (n Name) Resolve() (string, error) {
	if n.reader == nil {
		return "", encoding.Wrap(ErrNoReader)
	}
	return n.reader.StringAt(n.offset)
}

// ResolveUncached always reads the name from the backing.
func (n Name) ResolveUncached() (string, error) {
	if n.reader == nil {
		return "", encoding.Wrap(ErrNoReader)
	}
	return n.reader.ReadStringAt(n.offset)
}

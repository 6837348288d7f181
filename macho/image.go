package macho

import (
	"encoding/binary"
	"io"

	"github.com/wnxd/machoinspect/cpu"
	"github.com/wnxd/machoinspect/symbol"
	"github.com/wnxd/machoinspect/thread"
)

// Image is the read-only view of a parsed Mach-O image.
type Image interface {
	io.Closer
	CPU() cpu.Type
	ByteOrder() binary.ByteOrder
	Is64() bool
	ThreadCommands() []*thread.Command
	SymbolEntries() []symbol.Entry
	EntryAddr() (uint64, error)
	FindSymbol(name string) (uint64, error)
}

var _ Image = (*File)(nil)

// Package macho walks the load commands of a thin Mach-O image and hands
// the thread and symbol table regions to the thread and symbol decoders.
package macho

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io/fs"

	"github.com/apex/log"
	"github.com/blacktop/go-macho/types"
	"github.com/wnxd/machoinspect/cpu"
	"github.com/wnxd/machoinspect/encoding"
	"github.com/wnxd/machoinspect/reader"
	"github.com/wnxd/machoinspect/symbol"
	"github.com/wnxd/machoinspect/thread"
)

const loadCmdHeaderSize = 8

type ThreadKind uint8

const (
	THREAD ThreadKind = iota
	UNIXTHREAD
)

// Thread is an LC_THREAD or LC_UNIXTHREAD command together with its flavor
// list.
type Thread struct {
	Kind ThreadKind
	*thread.Command
}

type File struct {
	types.FileHeader
	order   binary.ByteOrder
	threads []Thread
	symbols []symbol.Entry
	reader  *reader.Reader
	owned   bool
}

// Open parses the Mach-O image at path. The File owns the underlying reader.
func Open(path string) (*File, error) {
	return build(reader.File(path))
}

// OpenFS parses the image called name in fsys.
func OpenFS(fsys fs.FS, name string) (*File, error) {
	return build(reader.FS(fsys, name))
}

// NewFile parses an in-memory image. data is copied.
func NewFile(data []byte) (*File, error) {
	return build(reader.Memory(data))
}

func build(opt reader.BuildOption) (*File, error) {
	r, err := reader.Build(opt)
	if err != nil {
		return nil, err
	}
	f, err := NewFileFromReader(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	f.owned = true
	return f, nil
}

// NewFileFromReader parses the image at offset 0 of r. Closing the File
// leaves r open.
func NewFileFromReader(r *reader.Reader) (*File, error) {
	f := &File{reader: r}
	if err := f.readHeader(); err != nil {
		return nil, err
	}
	if err := f.readLoadCommands(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Close() error {
	if !f.owned {
		return nil
	}
	f.owned = false
	return f.reader.Close()
}

func (f *File) Reader() *reader.Reader {
	return f.reader
}

func (f *File) CPU() cpu.Type {
	return cpu.Type(f.FileHeader.CPU)
}

func (f *File) ByteOrder() binary.ByteOrder {
	return f.order
}

func (f *File) Is64() bool {
	return f.Magic == types.Magic64
}

func (f *File) Threads() []Thread {
	return f.threads
}

func (f *File) ThreadCommands() []*thread.Command {
	cmds := make([]*thread.Command, len(f.threads))
	for i, t := range f.threads {
		cmds[i] = t.Command
	}
	return cmds
}

func (f *File) SymbolEntries() []symbol.Entry {
	return f.symbols
}

// EntryAddr is the program counter of the first LC_UNIXTHREAD command.
func (f *File) EntryAddr() (uint64, error) {
	for _, t := range f.threads {
		if t.Kind != UNIXTHREAD {
			continue
		}
		if pc, ok := t.EntryPoint(); ok {
			return pc, nil
		}
	}
	return 0, ErrNoEntryPoint
}

// FindSymbol returns the value of the first defined symbol called name.
func (f *File) FindSymbol(name string) (uint64, error) {
	for _, sym := range f.symbols {
		if sym.IsDebug() || sym.Type&symbol.N_TYPE == symbol.N_UNDF {
			continue
		}
		str, err := sym.Name.Resolve()
		if err != nil {
			return 0, err
		}
		if str == name {
			return sym.Value.Uint64(), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrSymbolNotFound, name)
}

func (f *File) headerSize() int64 {
	if f.Is64() {
		return types.FileHeaderSize64
	}
	return types.FileHeaderSize32
}

func (f *File) readHeader() error {
	var raw []byte
	err := f.reader.At(0, binary.LittleEndian, func(stream encoding.Stream) (err error) {
		raw, err = encoding.ReadBytes(stream, types.FileHeaderSize32)
		return
	})
	if err != nil {
		return err
	}
	be := binary.BigEndian.Uint32(raw)
	le := binary.LittleEndian.Uint32(raw)
	// MH_MAGIC and MH_MAGIC_64 only differ in bit 0.
	switch types.Magic32.Int() &^ 1 {
	case be &^ 1:
		f.order = binary.BigEndian
	case le &^ 1:
		f.order = binary.LittleEndian
	default:
		return encoding.NewBadMagic(le)
	}

	// The 64-bit header carries one extra reserved word.
	raw = append(raw, make([]byte, types.FileHeaderSize64-types.FileHeaderSize32)...)
	if f.order.Uint32(raw) == types.Magic64.Int() {
		err = f.reader.At(types.FileHeaderSize32, f.order, func(stream encoding.Stream) error {
			tail, err := encoding.ReadBytes(stream, types.FileHeaderSize64-types.FileHeaderSize32)
			copy(raw[types.FileHeaderSize32:], tail)
			return err
		})
		if err != nil {
			return err
		}
	}
	if err := binary.Read(bytes.NewReader(raw), f.order, &f.FileHeader); err != nil {
		return encoding.Wrap(err)
	}
	log.WithFields(log.Fields{
		"cpu":   f.CPU(),
		"ncmds": f.NCommands,
		"size":  f.SizeCommands,
	}).Debug("parsed mach-o header")
	return nil
}

func (f *File) readLoadCommands() error {
	offset := f.headerSize()
	end := offset + int64(f.SizeCommands)
	for i := uint32(0); i < f.NCommands; i++ {
		var cmd, size uint32
		err := f.reader.At(offset, f.order, func(stream encoding.Stream) (err error) {
			if cmd, err = encoding.ReadUint[uint32](stream); err != nil {
				return
			}
			size, err = encoding.ReadUint[uint32](stream)
			return
		})
		if err != nil {
			return err
		}
		if size < loadCmdHeaderSize {
			return encoding.Wrap(&FormatError{offset, "invalid command block size"})
		}
		if offset+int64(size) > end {
			log.WithFields(log.Fields{
				"index":  i,
				"offset": offset,
				"cmd":    types.LoadCmd(cmd),
			}).Warn("load command overruns sizeofcmds, stopping")
			break
		}
		log.WithFields(log.Fields{
			"offset": offset,
			"cmd":    types.LoadCmd(cmd),
			"size":   size,
		}).Debug("load command")

		switch types.LoadCmd(cmd) {
		case types.LC_THREAD, types.LC_UNIXTHREAD:
			kind := THREAD
			if types.LoadCmd(cmd) == types.LC_UNIXTHREAD {
				kind = UNIXTHREAD
			}
			f.threads = append(f.threads, Thread{
				Kind:    kind,
				Command: thread.NewCommand(f.reader, offset+loadCmdHeaderSize, size-loadCmdHeaderSize, f.order, f.CPU()),
			})
		case types.LC_SYMTAB:
			if err := f.readSymtab(offset); err != nil {
				return err
			}
		}
		offset += int64(size)
	}
	return nil
}

func (f *File) readSymtab(offset int64) error {
	var hdr types.SymtabCmd
	err := f.reader.At(offset, f.order, func(stream encoding.Stream) error {
		return encoding.Decode(stream, &hdr)
	})
	if err != nil {
		return err
	}
	symbols, err := symbol.ReadTable(f.reader, int64(hdr.Symoff), hdr.Nsyms, int64(hdr.Stroff), f.Is64(), f.order)
	if err != nil {
		return fmt.Errorf("symbol table at %#x: %w", hdr.Symoff, err)
	}
	f.symbols = append(f.symbols, symbols...)
	return nil
}

// Package symbol decodes Mach-O symbol table entries. Names stay in the
// string table until they are asked for.
package symbol

import (
	"encoding/binary"
	"fmt"

	"github.com/blacktop/go-macho/types"
	"github.com/wnxd/machoinspect/describe"
	"github.com/wnxd/machoinspect/encoding"
	"github.com/wnxd/machoinspect/reader"
)

// Value is n_value, 4 or 8 bytes wide depending on the image.
type Value struct {
	v    uint64
	is64 bool
}

func Value32(v uint32) Value {
	return Value{v: uint64(v)}
}

func Value64(v uint64) Value {
	return Value{v: v, is64: true}
}

func (v Value) Uint64() uint64 {
	return v.v
}

func (v Value) Is64() bool {
	return v.is64
}

func (v Value) String() string {
	if v.is64 {
		return fmt.Sprintf("0x%016x", v.v)
	}
	return fmt.Sprintf("0x%08x", v.v)
}

// Entry is one nlist / nlist_64 record.
type Entry struct {
	Strx  uint32
	Type  types.NLType
	Sect  uint8
	Desc  uint16
	Value Value
	Name  Name
}

// Parse decodes the entry at offset. stroff is the absolute offset of the
// string table the entry's Strx indexes into.
func Parse(r *reader.Reader, offset int64, stroff int64, is64 bool, order binary.ByteOrder) (Entry, error) {
	var e Entry
	err := r.At(offset, order, func(stream encoding.Stream) (err error) {
		e, err = decodeEntry(stream, r, stroff, is64)
		return
	})
	return e, err
}

// ReadTable decodes nsyms consecutive entries starting at symoff. A table
// that does not fit in the backing fails before anything is read.
func ReadTable(r *reader.Reader, symoff int64, nsyms uint32, stroff int64, is64 bool, order binary.ByteOrder) ([]Entry, error) {
	need := uint64(nsyms) * uint64(EntrySize(is64))
	if symoff < 0 || uint64(symoff)+need > uint64(r.Size()) {
		return nil, encoding.ErrBadBufferLength
	}
	entries := make([]Entry, 0, nsyms)
	err := r.At(symoff, order, func(stream encoding.Stream) error {
		for i := uint32(0); i < nsyms; i++ {
			e, err := decodeEntry(stream, r, stroff, is64)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// EntrySize returns the on-disk width of one entry.
func EntrySize(is64 bool) int {
	if is64 {
		return encoding.DecodeSize((*types.Nlist64)(nil))
	}
	return encoding.DecodeSize((*types.Nlist32)(nil))
}

func decodeEntry(stream encoding.Stream, r *reader.Reader, stroff int64, is64 bool) (Entry, error) {
	var e Entry
	if is64 {
		var n types.Nlist64
		if err := encoding.Decode(stream, &n); err != nil {
			return e, err
		}
		e = Entry{Strx: n.Name, Type: n.Type, Sect: n.Sect, Desc: uint16(n.Desc), Value: Value64(n.Value)}
	} else {
		var n types.Nlist32
		if err := encoding.Decode(stream, &n); err != nil {
			return e, err
		}
		e = Entry{Strx: n.Name, Type: n.Type, Sect: n.Sect, Desc: uint16(n.Desc), Value: Value32(n.Value)}
	}
	e.Name = NewName(r, stroff+int64(e.Strx))
	return e, nil
}

func (e Entry) IsDebug() bool {
	return e.Type.IsDebugSym()
}

func (e Entry) IsExternal() bool {
	return e.Type&N_EXT != 0
}

func (e Entry) IsPrivateExternal() bool {
	return e.Type&N_PEXT != 0
}

// TypeName names the N_TYPE bits, or "STAB" for debugger entries.
func (e Entry) TypeName() string {
	if e.IsDebug() {
		return "STAB"
	}
	switch e.Type & N_TYPE {
	case N_UNDF:
		return "UNDF"
	case N_ABS:
		return "ABS"
	case N_SECT:
		return "SECT"
	case N_PBUD:
		return "PBUD"
	case N_INDR:
		return "INDR"
	}
	return fmt.Sprintf("%#x", uint8(e.Type&N_TYPE))
}

func (e Entry) Fields() []describe.Field {
	name, err := e.Name.Resolve()
	if err != nil {
		name = fmt.Sprintf("<%v>", err)
	}
	width := "u32"
	if e.Value.Is64() {
		width = "u64"
	}
	return []describe.Field{
		describe.Dec("n_strx", e.Strx),
		describe.Hex("n_type", uint8(e.Type)),
		describe.Dec("n_sect", e.Sect),
		describe.Hex("n_desc", e.Desc),
		describe.String("n_value", fmt.Sprintf("%s(%d)", width, e.Value.Uint64())),
		describe.String("name", name),
	}
}

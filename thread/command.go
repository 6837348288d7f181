package thread

import (
	"encoding/binary"
	"iter"

	"github.com/apex/log"
	"github.com/wnxd/machoinspect/cpu"
	"github.com/wnxd/machoinspect/describe"
	"github.com/wnxd/machoinspect/encoding"
	"github.com/wnxd/machoinspect/reader"
)

// Command is the flavor list of an LC_THREAD or LC_UNIXTHREAD load command.
// It holds no bytes of its own; every iteration reads through the shared
// reader.
type Command struct {
	reader *reader.Reader
	offset int64
	size   uint32
	order  binary.ByteOrder
	cpu    cpu.Type
}

// FlavorRecord is one entry of the flavor list.
type FlavorRecord struct {
	Flavor Flavor
	Count  uint32
	State  State
}

// NewCommand describes a flavor list occupying size bytes at offset.
func NewCommand(r *reader.Reader, offset int64, size uint32, order binary.ByteOrder, typ cpu.Type) *Command {
	return &Command{
		reader: r,
		offset: offset,
		size:   size,
		order:  order,
		cpu:    typ,
	}
}

func (c *Command) Offset() int64 {
	return c.offset
}

func (c *Command) Size() uint32 {
	return c.size
}

func (c *Command) ByteOrder() binary.ByteOrder {
	return c.order
}

func (c *Command) CPU() cpu.Type {
	return c.cpu
}

// Iterator starts a new pass over the flavor list. Iterators are independent
// of each other.
func (c *Command) Iterator(opts ...IteratorOption) *Iterator {
	it := &Iterator{cmd: c}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Flavors yields every record of the flavor list. Decoding failures end the
// sequence silently; use Iterator to observe them.
func (c *Command) Flavors() iter.Seq[FlavorRecord] {
	return func(yield func(FlavorRecord) bool) {
		it := c.Iterator()
		for rec, ok := it.Next(); ok; rec, ok = it.Next() {
			if !yield(rec) {
				return
			}
		}
	}
}

func (c *Command) Fields() []describe.Field {
	return []describe.Field{
		describe.String("cpu", c.cpu.String()),
		describe.Hex("offset", c.offset),
		describe.Dec("cmdsize", c.size),
	}
}

// readFlavor decodes the record at offset. It reports false for the
// zero/zero end sentinel. With strict set, a record longer than remaining
// fails before its payload is read.
func (c *Command) readFlavor(offset int64, remaining uint64, strict bool) (rec FlavorRecord, ok bool, err error) {
	err = c.reader.At(offset, c.order, func(stream encoding.Stream) error {
		var hdr StateHeader
		if err := encoding.Decode(stream, &hdr); err != nil {
			return err
		}
		if hdr.Flavor == 0 && hdr.Count == 0 {
			return nil
		}
		if strict && stateHeaderSize+uint64(hdr.Count)*4 > remaining {
			return encoding.Wrap(ErrFlavorOverrun)
		}
		state, err := c.decodePayload(hdr, stream)
		if err != nil {
			return err
		}
		rec, ok = FlavorRecord{Flavor: hdr.Flavor, Count: hdr.Count, State: state}, true
		return nil
	})
	return
}

// decodePayload never reads past the declared payload: a count too small for
// the registered layout yields Unknown.
func (c *Command) decodePayload(hdr StateHeader, stream encoding.Stream) (State, error) {
	size, ok := StateSize(c.cpu, hdr.Flavor)
	if !ok {
		return Unknown{}, nil
	}
	if uint64(hdr.Count)*4 < uint64(size) {
		log.WithFields(log.Fields{
			"cpu":    c.cpu,
			"flavor": uint32(hdr.Flavor),
			"count":  hdr.Count,
			"need":   size,
		}).Debug("flavor payload shorter than its state layout")
		return Unknown{}, nil
	}
	return DecodeState(c.cpu, hdr.Flavor, stream)
}

// Size returns the span of the record in the flavor list: the header plus
// count 32-bit words.
func (rec FlavorRecord) Size() uint64 {
	return stateHeaderSize + uint64(rec.Count)*4
}

func (rec FlavorRecord) Fields() []describe.Field {
	return []describe.Field{
		describe.String("state", rec.State.Name()),
		describe.Dec("flavor", uint32(rec.Flavor)),
		describe.Dec("count", rec.Count),
	}
}

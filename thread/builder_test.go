package thread

import (
	"encoding/binary"
	"testing"

	"github.com/wnxd/machoinspect/cpu"
	"github.com/wnxd/machoinspect/reader"
)

// listBuilder assembles a flavor list behind an optional prefix, so that
// base offsets are never zero.
// byteOrder can both read and append multi-byte integers.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

type listBuilder struct {
	order  byteOrder
	buf    []byte
	prefix int
}

func newListBuilder(order byteOrder, prefix int) *listBuilder {
	buf := make([]byte, prefix)
	for i := range buf {
		buf[i] = 0xee
	}
	return &listBuilder{order: order, buf: buf, prefix: prefix}
}

func (b *listBuilder) record(flavor Flavor, count uint32, payload []byte) *listBuilder {
	b.buf = b.order.AppendUint32(b.buf, uint32(flavor))
	b.buf = b.order.AppendUint32(b.buf, count)
	b.buf = append(b.buf, payload...)
	return b
}

func (b *listBuilder) words(flavor Flavor, payload []byte) *listBuilder {
	return b.record(flavor, uint32(len(payload)/4), payload)
}

func (b *listBuilder) sentinel() *listBuilder {
	return b.record(0, 0, nil)
}

// size is the length of the list written so far.
func (b *listBuilder) size() uint32 {
	return uint32(len(b.buf) - b.prefix)
}

func (b *listBuilder) command(t *testing.T, typ cpu.Type, size uint32) *Command {
	t.Helper()
	r, err := reader.Build(reader.Memory(b.buf))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })
	return NewCommand(r, int64(b.prefix), size, b.order, typ)
}

type payload struct {
	order byteOrder
	buf   []byte
}

func newPayload(order byteOrder) *payload {
	return &payload{order: order}
}

func (p *payload) u16(vals ...uint16) *payload {
	for _, v := range vals {
		p.buf = p.order.AppendUint16(p.buf, v)
	}
	return p
}

func (p *payload) u32(vals ...uint32) *payload {
	for _, v := range vals {
		p.buf = p.order.AppendUint32(p.buf, v)
	}
	return p
}

func (p *payload) u64(vals ...uint64) *payload {
	for _, v := range vals {
		p.buf = p.order.AppendUint64(p.buf, v)
	}
	return p
}

func (p *payload) bytes() []byte {
	return p.buf
}

func arm64ThreadPayload(pc uint64) []byte {
	p := newPayload(binary.LittleEndian)
	for i := 0; i < 29; i++ {
		p.u64(uint64(i))
	}
	return p.u64(0x16fdff0f0, 0x1000040a4, 0x16fdff0e0, pc).u32(0x60000000, 0).bytes()
}

func collect(c *Command) []FlavorRecord {
	var recs []FlavorRecord
	for rec := range c.Flavors() {
		recs = append(recs, rec)
	}
	return recs
}

package encoding

import (
	"encoding/binary"
	"io"
	"slices"
)

type memStream struct {
	data  []byte
	off   int
	order binary.ByteOrder
}

func newMemStream(order binary.ByteOrder, data []byte) *memStream {
	return &memStream{data: data, order: order}
}

func (ms *memStream) ByteOrder() binary.ByteOrder {
	return ms.order
}

func (ms *memStream) Offset() uint64 {
	return uint64(ms.off)
}

func (ms *memStream) Skip(n int) error {
	if ms.off+n > len(ms.data) {
		ms.off = len(ms.data)
		return ErrBadBufferLength
	}
	ms.off += n
	return nil
}

func (ms *memStream) Read(b []byte) (int, error) {
	if ms.off >= len(ms.data) {
		return 0, io.EOF
	}
	n := copy(b, ms.data[ms.off:])
	ms.off += n
	return n, nil
}

func (ms *memStream) ReadString() (string, error) {
	rest := ms.data[ms.off:]
	i := slices.Index(rest, 0)
	if i == -1 {
		ms.off = len(ms.data)
		return string(rest), nil
	}
	ms.off += i + 1
	return string(rest[:i]), nil
}

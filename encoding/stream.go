package encoding

import "encoding/binary"

// Stream is a positioned, endian-aware byte cursor.
type Stream interface {
	ByteOrder() binary.ByteOrder
	Offset() uint64
	Skip(int) error
	Read([]byte) (int, error)
	ReadString() (string, error)
}

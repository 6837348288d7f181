package encoding

// FixedUnsigned is every unsigned integer type with a fixed width.
type FixedUnsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ReadUint decodes a single unsigned integer of T's width.
func ReadUint[T FixedUnsigned](stream Stream) (T, error) {
	var v T
	err := Decode(stream, &v)
	return v, err
}

// ReadBytes reads exactly n raw bytes.
func ReadBytes(stream Stream, n int) ([]byte, error) {
	b := make([]byte, n)
	if err := readFull(stream, b); err != nil {
		return nil, err
	}
	return b, nil
}

package reader

import "io"

// Buffer is an immutable in-memory image.
type Buffer []byte

func (buf Buffer) ReadAt(b []byte, off int64) (n int, err error) {
	if off < 0 || off >= int64(len(buf)) {
		return 0, io.EOF
	}
	n = copy(b, buf[off:])
	if n < len(b) {
		err = io.EOF
	}
	return
}

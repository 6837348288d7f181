// Package reader provides the seekable byte source shared by every decoder
// working on one Mach-O image.
//
// A Reader has a single cursor. Consumers that interleave must position it
// immediately before reading; At does both under the Reader's lock, which makes
// a Reader safe to share between goroutines.
package reader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/wnxd/machoinspect/encoding"
)

var (
	ErrSeekOutOfRange = errors.New("seek out of range")
	ErrClosed         = errors.New("reader closed")
)

type Reader struct {
	mu      sync.Mutex
	src     *source
	strings map[int64]string
}

// Build opens the backing selected by opt. A file that cannot be opened
// fails here, before any decoding is attempted.
func Build(opt BuildOption) (*Reader, error) {
	src, err := opt.open()
	if err != nil {
		return nil, err
	}
	return &Reader{src: src}, nil
}

func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.src == nil {
		return nil
	}
	err := r.src.Close()
	r.src = nil
	r.strings = nil
	return encoding.Wrap(err)
}

// Size returns the length of the backing in bytes, or 0 once closed.
func (r *Reader) Size() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.src == nil {
		return 0
	}
	return r.src.Size()
}

// Seek moves the cursor to an absolute offset. Offsets past the end fail
// instead of being clamped.
func (r *Reader) Seek(offset int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seek(offset)
}

// Read reads from the cursor with io.Reader short-read semantics.
func (r *Reader) Read(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read(b)
}

// ReadZeroTerminatedString reads up to the next zero byte, or the end of the
// backing, and returns the bytes in printable form.
func (r *Reader) ReadZeroTerminatedString() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readString()
}

// At positions the cursor at offset and runs fn with a stream reading in the
// given byte order. No other consumer can move the cursor until fn returns.
func (r *Reader) At(offset int64, order binary.ByteOrder, fn func(encoding.Stream) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.seek(offset); err != nil {
		return err
	}
	return fn(&cursor{r, order})
}

// ReadStringAt reads the zero-terminated string at offset.
func (r *Reader) ReadStringAt(offset int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.seek(offset); err != nil {
		return "", err
	}
	return r.readString()
}

// StringAt is ReadStringAt memoised per offset. The backing is treated as
// immutable for the lifetime of the Reader.
func (r *Reader) StringAt(offset int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.src == nil {
		return "", encoding.Wrap(ErrClosed)
	}
	if str, ok := r.strings[offset]; ok {
		return str, nil
	}
	if err := r.seek(offset); err != nil {
		return "", err
	}
	str, err := r.readString()
	if err != nil {
		return "", err
	}
	if r.strings == nil {
		r.strings = make(map[int64]string)
	}
	r.strings[offset] = str
	return str, nil
}

func (r *Reader) seek(offset int64) error {
	if r.src == nil {
		return encoding.Wrap(ErrClosed)
	}
	if offset < 0 || offset > r.src.Size() {
		return encoding.Wrap(fmt.Errorf("%w: %#x (size %#x)", ErrSeekOutOfRange, offset, r.src.Size()))
	}
	if offset == r.src.pos {
		return nil
	}
	if _, err := r.src.section.Seek(offset, io.SeekStart); err != nil {
		return encoding.Wrap(err)
	}
	r.src.buf.Reset(r.src.section)
	r.src.pos = offset
	return nil
}

func (r *Reader) read(b []byte) (int, error) {
	if r.src == nil {
		return 0, encoding.Wrap(ErrClosed)
	}
	n, err := r.src.buf.Read(b)
	r.src.pos += int64(n)
	return n, err
}

func (r *Reader) skip(n int) error {
	if r.src == nil {
		return encoding.Wrap(ErrClosed)
	}
	d, err := r.src.buf.Discard(n)
	r.src.pos += int64(d)
	if errors.Is(err, io.EOF) {
		return encoding.ErrBadBufferLength
	}
	return encoding.Wrap(err)
}

func (r *Reader) readString() (string, error) {
	if r.src == nil {
		return "", encoding.Wrap(ErrClosed)
	}
	data, err := r.src.buf.ReadBytes(0)
	r.src.pos += int64(len(data))
	if err != nil && !errors.Is(err, io.EOF) {
		return "", encoding.Wrap(err)
	}
	if n := len(data); n > 0 && data[n-1] == 0 {
		data = data[:n-1]
	}
	return Printable(data), nil
}

type cursor struct {
	r     *Reader
	order binary.ByteOrder
}

func (c *cursor) ByteOrder() binary.ByteOrder {
	return c.order
}

func (c *cursor) Offset() uint64 {
	if c.r.src == nil {
		return 0
	}
	return uint64(c.r.src.pos)
}

func (c *cursor) Skip(n int) error {
	return c.r.skip(n)
}

func (c *cursor) Read(b []byte) (int, error) {
	return c.r.read(b)
}

func (c *cursor) ReadString() (string, error) {
	return c.r.readString()
}

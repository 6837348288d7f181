package reader

import (
	"bufio"
	"io"
	"io/fs"
	"os"

	"github.com/wnxd/machoinspect/encoding"
)

// BuildOption selects the backing of a Reader.
type BuildOption interface {
	open() (*source, error)
}

type fileOption string

type memoryOption []byte

type fsOption struct {
	fsys fs.FS
	name string
}

// File backs a Reader with a buffered file stream.
func File(path string) BuildOption {
	return fileOption(path)
}

// Memory backs a Reader with a private copy of data.
func Memory(data []byte) BuildOption {
	return memoryOption(data)
}

// FS backs a Reader with name opened from fsys. Files that cannot be read
// at arbitrary offsets are loaded into memory.
func FS(fsys fs.FS, name string) BuildOption {
	return fsOption{fsys, name}
}

func (path fileOption) open() (*source, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return nil, encoding.Wrap(err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, encoding.Wrap(err)
	}
	return newSource(f, fi.Size(), f), nil
}

func (data memoryOption) open() (*source, error) {
	buf := make(Buffer, len(data))
	copy(buf, data)
	return newSource(buf, int64(len(buf)), nil), nil
}

func (opt fsOption) open() (*source, error) {
	f, err := opt.fsys.Open(opt.name)
	if err != nil {
		return nil, encoding.Wrap(err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, encoding.Wrap(err)
	}
	if ra, ok := f.(io.ReaderAt); ok {
		return newSource(ra, fi.Size(), f), nil
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, encoding.Wrap(err)
	}
	return newSource(Buffer(data), int64(len(data)), nil), nil
}

type source struct {
	section *io.SectionReader
	buf     *bufio.Reader
	closer  io.Closer
	pos     int64
}

func newSource(r io.ReaderAt, size int64, closer io.Closer) *source {
	section := io.NewSectionReader(r, 0, size)
	return &source{
		section: section,
		buf:     bufio.NewReader(section),
		closer:  closer,
	}
}

func (src *source) Size() int64 {
	return src.section.Size()
}

func (src *source) Close() error {
	if src.closer == nil {
		return nil
	}
	return src.closer.Close()
}

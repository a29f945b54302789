package xdf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// File provides random access to an XDF container's raw bytes. Open
// memory-maps the file read-only where possible, so the locator's scan
// and a splice's byte copies run over the page cache without a second
// read of the input. If mmap is unavailable, it falls back to loading
// the contents through the handle. The returned file must be closed to
// release any mapping.
type File struct {
	*bytes.Reader
	data    []byte
	mmapped bool
}

// Open maps the file at path for reading.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		// cannot index this file safely as []byte on this architecture.
		return nil, fmt.Errorf("%s: file too large to map (%d bytes)", path, size64)
	}
	size := int(size64)

	if size > 0 {
		data, err := unix.Mmap(
			int(f.Fd()),
			0,
			size,
			unix.PROT_READ,
			unix.MAP_SHARED,
		)
		if err == nil {
			return &File{Reader: bytes.NewReader(data), data: data, mmapped: true}, nil
		}
	}

	// Fallback path that does not require mmap support.
	data, err := readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return &File{Reader: bytes.NewReader(data), data: data}, nil
}

// Size returns the container's size in bytes.
func (f *File) Size() int64 { return int64(len(f.data)) }

// Close releases any mmap backing. The underlying file handle is closed
// by Open; a closed File must not be read again.
func (f *File) Close() error {
	if f == nil || f.data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.data)
	}
	f.data = nil
	f.mmapped = false
	return err
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

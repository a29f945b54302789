package xdf

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// ReadVarlenInt reads one variable-length integer: a 1-byte width selector
// that must be 1, 4 or 8, followed by a little-endian unsigned value of
// that many bytes. Any other selector, or input ending inside the field,
// fails with ErrMalformedLength.
func ReadVarlenInt(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return 0, fmt.Errorf("%w: reading width selector: %v", ErrMalformedLength, err)
	}
	width := int(buf[0])
	switch width {
	case 1, 4, 8:
	default:
		return 0, fmt.Errorf("%w: width selector %d", ErrMalformedLength, width)
	}
	if _, err := io.ReadFull(r, buf[:width]); err != nil {
		return 0, fmt.Errorf("%w: reading %d-byte value: %v", ErrMalformedLength, width, err)
	}
	switch width {
	case 1:
		return uint64(buf[0]), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf[:4])), nil
	default:
		return binary.LittleEndian.Uint64(buf[:8]), nil
	}
}

// WriteVarlenInt writes v using the smallest of the three encodings that
// fits it.
func WriteVarlenInt(w io.Writer, v uint64) error {
	var buf [9]byte
	var n int
	switch {
	case v <= math.MaxUint8:
		buf[0] = 1
		buf[1] = byte(v)
		n = 2
	case v <= math.MaxUint32:
		buf[0] = 4
		binary.LittleEndian.PutUint32(buf[1:5], uint32(v))
		n = 5
	default:
		buf[0] = 8
		binary.LittleEndian.PutUint64(buf[1:9], v)
		n = 9
	}
	_, err := w.Write(buf[:n])
	return err
}

package xdf

import (
	"bytes"
	"errors"
	"io"
)

// scanBlockSize is the window size used when searching for a boundary
// chunk signature.
const scanBlockSize = 1 << 20

// ScanForward searches forward from the current position for the next
// boundary-chunk signature. It returns true with r positioned immediately
// after the 16-byte signature, or false when the input ends without a
// match. A missing boundary is a normal terminal condition, not an error.
func ScanForward(r io.ReadSeeker) (bool, error) {
	buf := make([]byte, scanBlockSize)
	for {
		cur, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return false, err
		}
		n, err := io.ReadFull(r, buf)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return false, err
		}
		if i := bytes.Index(buf[:n], BoundarySignature); i >= 0 {
			if _, err := r.Seek(cur+int64(i)+int64(len(BoundarySignature)), io.SeekStart); err != nil {
				return false, err
			}
			return true, nil
		}
		if n < len(buf) {
			return false, nil
		}
		// Overlap windows by one signature length so a match straddling
		// the window edge is not missed.
		if _, err := r.Seek(cur+int64(n)-int64(len(BoundarySignature))+1, io.SeekStart); err != nil {
			return false, err
		}
	}
}

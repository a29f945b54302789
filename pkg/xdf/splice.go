package xdf

import (
	"encoding/binary"
	"fmt"
	"io"
)

// copyBlockSize is the transfer block used when copying file bytes around
// the spliced chunk.
const copyBlockSize = 64 * 1024

// Splice writes a copy of src (size bytes long) to dst with the metadata
// chunk described by loc replaced by a stream header carrying newDoc.
// When newDoc equals the located content the file is copied verbatim and
// no framing is involved. Every byte outside the spliced span is
// reproduced exactly, whatever chunks it belongs to.
func Splice(dst io.Writer, src io.ReadSeeker, size int64, loc MetadataLocation, newDoc string) error {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return err
	}
	buf := make([]byte, copyBlockSize)

	if newDoc == loc.Content {
		if err := copyRange(dst, src, size, buf); err != nil {
			return fmt.Errorf("copy file: %w", err)
		}
		return nil
	}

	if err := copyRange(dst, src, loc.Begin, buf); err != nil {
		return fmt.Errorf("copy leading bytes: %w", err)
	}

	content := make([]byte, 4+len(newDoc))
	binary.LittleEndian.PutUint32(content[:4], loc.StreamID)
	copy(content[4:], newDoc)
	if err := WriteChunk(dst, TagStreamHeader, content); err != nil {
		return fmt.Errorf("write metadata chunk: %w", err)
	}

	// Skip the original chunk's bytes; a zero-length span means the chunk
	// was synthesized and there is nothing to skip.
	if _, err := src.Seek(loc.Begin+loc.Length, io.SeekStart); err != nil {
		return err
	}
	if err := copyRange(dst, src, size-loc.Begin-loc.Length, buf); err != nil {
		return fmt.Errorf("copy trailing bytes: %w", err)
	}
	return nil
}

// copyRange transfers exactly n bytes from src to dst in fixed-size
// blocks.
func copyRange(dst io.Writer, src io.Reader, n int64, buf []byte) error {
	written, err := io.CopyBuffer(dst, io.LimitReader(src, n), buf)
	if err != nil {
		return err
	}
	if written != n {
		return io.ErrUnexpectedEOF
	}
	return nil
}

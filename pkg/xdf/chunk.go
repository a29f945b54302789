package xdf

import (
	"encoding/binary"
	"fmt"
	"io"
)

// chunkLenOverhead is the part of the encoded chunk length that covers the
// tag field rather than content bytes.
const chunkLenOverhead = 2

// WriteChunk frames content under tag and writes it to w. The encoded
// length covers the 2-byte tag plus the content, per the container format.
func WriteChunk(w io.Writer, tag Tag, content []byte) error {
	if err := WriteVarlenInt(w, uint64(len(content))+chunkLenOverhead); err != nil {
		return fmt.Errorf("write chunk length: %w", err)
	}
	var t [2]byte
	binary.LittleEndian.PutUint16(t[:], uint16(tag))
	if _, err := w.Write(t[:]); err != nil {
		return fmt.Errorf("write chunk tag: %w", err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write chunk content: %w", err)
	}
	return nil
}

// ReadFrameHeader decodes one chunk header, returning the tag and the
// number of content bytes that follow it. On success the reader is left at
// the first content byte. On failure the reader is wherever the partial
// read left it; recovering from that is the caller's job.
func ReadFrameHeader(r io.Reader) (contentLen uint64, tag Tag, err error) {
	length, err := ReadVarlenInt(r)
	if err != nil {
		return 0, 0, err
	}
	if length < chunkLenOverhead {
		return 0, 0, fmt.Errorf("%w: chunk length %d shorter than tag field", ErrMalformedLength, length)
	}
	var t [2]byte
	if _, err := io.ReadFull(r, t[:]); err != nil {
		return 0, 0, fmt.Errorf("%w: reading chunk tag: %v", ErrMalformedLength, err)
	}
	return length - chunkLenOverhead, Tag(binary.LittleEndian.Uint16(t[:])), nil
}

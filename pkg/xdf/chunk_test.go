package xdf

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestChunkRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tag     Tag
		content []byte
	}{
		{TagStreamHeader, []byte("hello")},
		{TagSamples, nil},
		{TagStreamFooter, []byte{0x00, 0xFF, 0x10}},
		{Tag(77), bytes.Repeat([]byte{0xAB}, 300)}, // forces a 4-byte length
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := WriteChunk(&buf, tc.tag, tc.content); err != nil {
			t.Fatalf("write chunk tag %d: %v", tc.tag, err)
		}

		contentLen, tag, err := ReadFrameHeader(&buf)
		if err != nil {
			t.Fatalf("read frame header tag %d: %v", tc.tag, err)
		}
		if tag != tc.tag {
			t.Errorf("tag: got %d, want %d", tag, tc.tag)
		}
		if contentLen != uint64(len(tc.content)) {
			t.Errorf("content length: got %d, want %d", contentLen, len(tc.content))
		}
		got := make([]byte, contentLen)
		if _, err := io.ReadFull(&buf, got); err != nil {
			t.Fatalf("read content: %v", err)
		}
		if !bytes.Equal(got, tc.content) {
			t.Errorf("content mismatch: got %x, want %x", got, tc.content)
		}
	}
}

func TestReadFrameHeaderLengthBelowTagField(t *testing.T) {
	t.Parallel()

	// Encoded lengths 0 and 1 cannot even cover the 2-byte tag.
	for _, length := range []byte{0, 1} {
		_, _, err := ReadFrameHeader(bytes.NewReader([]byte{1, length, 0x02, 0x00}))
		if !errors.Is(err, ErrMalformedLength) {
			t.Errorf("length %d: got %v, want ErrMalformedLength", length, err)
		}
	}
}

func TestReadFrameHeaderTruncatedTag(t *testing.T) {
	t.Parallel()

	_, _, err := ReadFrameHeader(bytes.NewReader([]byte{1, 10, 0x02}))
	if !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("got %v, want ErrMalformedLength", err)
	}
}

package xdf

import (
	"bytes"
	"io"
	"testing"
)

func TestScanForwardFindsSignature(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte{0x11}, 5000))
	sigAt := int64(buf.Len())
	buf.Write(BoundarySignature)
	buf.Write(bytes.Repeat([]byte{0x22}, 100))

	r := bytes.NewReader(buf.Bytes())
	found, err := ScanForward(r)
	if err != nil {
		t.Fatalf("scan forward: %v", err)
	}
	if !found {
		t.Fatalf("expected signature to be found")
	}
	pos, _ := r.Seek(0, io.SeekCurrent)
	if want := sigAt + int64(len(BoundarySignature)); pos != want {
		t.Fatalf("position after scan: got %d, want %d", pos, want)
	}
}

func TestScanForwardNoSignatureIsNotAnError(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader(bytes.Repeat([]byte{0x42}, 4096))
	found, err := ScanForward(r)
	if err != nil {
		t.Fatalf("scan forward: %v", err)
	}
	if found {
		t.Fatalf("found a signature in noise")
	}
}

func TestScanForwardSignatureStraddlingWindowEdge(t *testing.T) {
	t.Parallel()

	// Place the signature so it crosses the scan window boundary.
	sigAt := int64(scanBlockSize - 7)
	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte{0x00}, int(sigAt)))
	buf.Write(BoundarySignature)
	buf.Write(bytes.Repeat([]byte{0x00}, 64))

	r := bytes.NewReader(buf.Bytes())
	found, err := ScanForward(r)
	if err != nil {
		t.Fatalf("scan forward: %v", err)
	}
	if !found {
		t.Fatalf("signature straddling window edge was missed")
	}
	pos, _ := r.Seek(0, io.SeekCurrent)
	if want := sigAt + int64(len(BoundarySignature)); pos != want {
		t.Fatalf("position after scan: got %d, want %d", pos, want)
	}
}

func TestScanForwardStartsAtCurrentPosition(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	buf.Write(BoundarySignature) // skipped: scan starts past it
	buf.Write(bytes.Repeat([]byte{0x33}, 128))
	secondAt := int64(buf.Len())
	buf.Write(BoundarySignature)

	r := bytes.NewReader(buf.Bytes())
	if _, err := r.Seek(int64(len(BoundarySignature)), io.SeekStart); err != nil {
		t.Fatalf("seek: %v", err)
	}
	found, err := ScanForward(r)
	if err != nil {
		t.Fatalf("scan forward: %v", err)
	}
	if !found {
		t.Fatalf("expected second signature to be found")
	}
	pos, _ := r.Seek(0, io.SeekCurrent)
	if want := secondAt + int64(len(BoundarySignature)); pos != want {
		t.Fatalf("position after scan: got %d, want %d", pos, want)
	}
}

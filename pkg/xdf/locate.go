package xdf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
)

// eofSlack is how close to the end of the file a malformed length field
// must be before it is treated as ordinary truncation instead of
// corruption worth resynchronizing over.
const eofSlack = 1024

// Logger is the subset of logging the locator reports progress and
// recoverable corruption through.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// MetadataLocation describes where the metadata stream header lives in a
// file or, when none exists, where one should be inserted. A zero Length
// means the chunk was synthesized and Begin is the insertion point.
type MetadataLocation struct {
	// Content is the stream header document text, lossily decoded as
	// UTF-8. For a synthesized location it is the default document.
	Content string
	// Begin is the byte offset of the chunk's length field, or the
	// insertion point when Length is zero.
	Begin int64
	// Length is the full on-disk size of the chunk, zero when synthesized.
	Length int64
	// StreamID is the chunk's stream id, freshly allocated when
	// synthesized.
	StreamID uint32
}

// Present reports whether the location refers to a chunk that exists in
// the file rather than a synthesized insertion point.
func (m MetadataLocation) Present() bool { return m.Length > 0 }

// LocateOptions supplies the document-level collaborators the locator
// needs; the locator itself treats document text as opaque.
type LocateOptions struct {
	// IsMetadata reports whether a stream header document declares the
	// managed metadata stream. Required.
	IsMetadata func(doc string) bool
	// DefaultDoc produces the document text for a synthesized metadata
	// stream.
	DefaultDoc func() string
	// Log receives corruption warnings and traversal progress. Optional.
	Log Logger
}

type tagClass int

const (
	classOpaque tagClass = iota
	classHeader
	classDataBoundary
)

func classify(tag Tag) tagClass {
	switch tag {
	case TagStreamHeader:
		return classHeader
	case TagSamples, TagStreamFooter:
		return classDataBoundary
	default:
		return classOpaque
	}
}

// scanState accumulates locator progress across chunk headers.
type scanState struct {
	headersBegin int64 // offset of the first stream header, -1 until seen
	meta         *MetadataLocation
	otherIDs     map[uint32]struct{}
	sawDuplicate bool
}

// LocateMetadata traverses the chunk stream from the start of r and
// returns the metadata stream's byte span and content. Traversal stops at
// the first Samples or StreamFooter chunk; if no metadata stream was seen
// by then, a synthesized location is returned pointing at the start of the
// stream header region. Metadata chunks past the header region are
// deliberately ignored, matching the scan's single-pass semantics.
//
// This is a read-only scan: r's position is restored before returning, so
// the same handle can be reused for the byte copies of a later splice.
func LocateMetadata(r io.ReadSeeker, size int64, opts LocateOptions) (MetadataLocation, error) {
	if opts.IsMetadata == nil {
		return MetadataLocation{}, errors.New("locate: IsMetadata is required")
	}
	log := opts.Log
	if log == nil {
		log = nopLogger{}
	}

	oldPos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return MetadataLocation{}, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return MetadataLocation{}, err
	}

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return MetadataLocation{}, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}
	if string(magic[:]) != Magic {
		return MetadataLocation{}, fmt.Errorf("%w: got %q", ErrInvalidContainer, magic[:])
	}

	st := scanState{headersBegin: -1, otherIDs: make(map[uint32]struct{})}
	var beginPos int64

scan:
	for {
		beginPos, err = r.Seek(0, io.SeekCurrent)
		if err != nil {
			return MetadataLocation{}, err
		}

		contentLen, tag, err := ReadFrameHeader(r)
		if err == nil {
			// A corrupted length field can carry a valid width selector
			// and still declare more content than the file holds; bound
			// it here so it takes the corruption path instead of driving
			// a huge allocation or a negative skip.
			cur, serr := r.Seek(0, io.SeekCurrent)
			if serr != nil {
				return MetadataLocation{}, serr
			}
			if contentLen > uint64(size-cur) {
				err = fmt.Errorf("%w: declared length %d exceeds the %d bytes left in the file", ErrMalformedLength, contentLen, size-cur)
			}
		}
		if err != nil {
			if !errors.Is(err, ErrMalformedLength) {
				return MetadataLocation{}, err
			}
			cur, serr := r.Seek(0, io.SeekCurrent)
			if serr != nil {
				return MetadataLocation{}, serr
			}
			if cur < size-eofSlack {
				log.Warn("malformed chunk length, scanning forward to next boundary chunk", "offset", beginPos)
				found, serr := ScanForward(r)
				if serr != nil {
					return MetadataLocation{}, serr
				}
				if found {
					continue
				}
			} else {
				log.Debug("reached end of file", "offset", cur)
			}
			break scan
		}

		switch classify(tag) {
		case classHeader:
			if st.headersBegin < 0 {
				st.headersBegin = beginPos
			}
			if contentLen < 4 {
				return MetadataLocation{}, fmt.Errorf("stream header at offset %d too short: %d content bytes", beginPos, contentLen)
			}
			var sid [4]byte
			if _, err := io.ReadFull(r, sid[:]); err != nil {
				if isTruncation(err) {
					break scan
				}
				return MetadataLocation{}, fmt.Errorf("read stream id: %w", err)
			}
			streamID := binary.LittleEndian.Uint32(sid[:])
			docBytes := make([]byte, contentLen-4)
			if _, err := io.ReadFull(r, docBytes); err != nil {
				if isTruncation(err) {
					break scan
				}
				return MetadataLocation{}, fmt.Errorf("read stream header document: %w", err)
			}
			doc := strings.ToValidUTF8(string(docBytes), "�")
			log.Debug("read stream header", "offset", beginPos, "stream_id", streamID)
			if opts.IsMetadata(doc) {
				if st.meta == nil {
					cur, serr := r.Seek(0, io.SeekCurrent)
					if serr != nil {
						return MetadataLocation{}, serr
					}
					st.meta = &MetadataLocation{
						Content:  doc,
						Begin:    beginPos,
						Length:   cur - beginPos,
						StreamID: streamID,
					}
				} else {
					// First one wins; the duplicate only claims its id.
					st.sawDuplicate = true
					st.otherIDs[streamID] = struct{}{}
				}
			} else {
				st.otherIDs[streamID] = struct{}{}
			}

		case classDataBoundary:
			// Samples or StreamFooter: the header region is over.
			break scan

		default:
			// Opaque chunk: skip the content unread.
			if _, err := r.Seek(int64(contentLen), io.SeekCurrent); err != nil {
				return MetadataLocation{}, err
			}
		}
	}

	if st.sawDuplicate {
		log.Warn("more than one metadata stream present, using only the first")
	}

	loc := st.result(beginPos, opts, log)

	if _, err := r.Seek(oldPos, io.SeekStart); err != nil {
		return MetadataLocation{}, err
	}
	return loc, nil
}

// result returns the located metadata span, synthesizing one when the scan
// ended without finding a metadata stream.
func (st *scanState) result(endPos int64, opts LocateOptions, log Logger) MetadataLocation {
	if st.meta != nil {
		return *st.meta
	}
	begin := st.headersBegin
	if begin < 0 {
		begin = endPos
	}
	var content string
	if opts.DefaultDoc != nil {
		content = opts.DefaultDoc()
	}
	log.Debug("no metadata stream found, noting insertion point", "offset", begin)
	return MetadataLocation{
		Content:  content,
		Begin:    begin,
		Length:   0,
		StreamID: newStreamID(st.otherIDs),
	}
}

// newStreamID allocates a stream id for a synthesized metadata chunk.
// Ids are drawn from a high range: the scan stops at the first data chunk,
// so later headers with typical low sequential ids may exist that it never
// saw.
func newStreamID(taken map[uint32]struct{}) uint32 {
	for {
		id := uint32(rand.IntN(90000) + 10000)
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

func isTruncation(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

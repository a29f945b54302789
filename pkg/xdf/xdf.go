// Package xdf implements the chunk-level structure of XDF container files:
// the variable-length integer encoding used for all length fields, chunk
// framing, forward scanning to a boundary chunk after a corrupted length
// field, locating the metadata stream header, and splicing a replacement
// metadata chunk into a copy of the file while reproducing every other byte
// verbatim.
package xdf

// Magic is the 4-byte marker every XDF file starts with.
const Magic = "XDF:"

// Tag identifies the kind of payload a chunk carries.
type Tag uint16

// Chunk tags the engine acts on. All other tags are opaque and their
// content is skipped byte-for-byte, unread.
const (
	TagStreamHeader Tag = 2
	TagSamples      Tag = 3
	TagStreamFooter Tag = 6
)

// BoundarySignature is the fixed byte pattern carried by boundary chunks.
// It is matched as raw bytes during resynchronization, not decoded as a
// frame.
var BoundarySignature = []byte{
	0x43, 0xA5, 0x46, 0xDC, 0xCB, 0xF5, 0x41, 0x0F,
	0xB3, 0x0E, 0xD5, 0x46, 0x73, 0x83, 0xCB, 0xE4,
}

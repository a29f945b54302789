package tagger

import (
	"github.com/intheon/xdf-tagger/internal/metadata"
	"github.com/intheon/xdf-tagger/pkg/xdf"
)

// Info summarizes a file's metadata stream for display.
type Info struct {
	File     string            `json:"file"`
	StreamID uint32            `json:"stream_id"`
	Offset   int64             `json:"offset"`
	Length   int64             `json:"length"`
	Present  bool              `json:"present"`
	Tags     map[string]string `json:"tags"`
}

// Inspect locates and parses a file's metadata stream without writing
// anything. For files without a metadata chunk the reported tags come
// from the default document that a modifying run would insert.
func Inspect(path string) (Info, error) {
	f, err := xdf.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	loc, err := xdf.LocateMetadata(f, f.Size(), xdf.LocateOptions{
		IsMetadata: metadata.IsMetadataStream,
		DefaultDoc: metadata.DefaultDocument,
	})
	if err != nil {
		return Info{}, err
	}
	doc, err := metadata.Parse(loc.Content)
	if err != nil {
		return Info{}, err
	}
	return Info{
		File:     path,
		StreamID: loc.StreamID,
		Offset:   loc.Begin,
		Length:   loc.Length,
		Present:  loc.Present(),
		Tags:     doc.Tags(),
	}, nil
}

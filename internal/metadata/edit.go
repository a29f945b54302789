package metadata

import (
	"fmt"
	"io"
	"strings"
)

// Edit is one batch of tag operations applied to a metadata document.
// Names use dotted syntax ("subject.age") resolving below <desc>.
type Edit struct {
	Set   []string // name=value assignments
	Clear []string // names whose elements are all removed
	Show  []string // names whose values are printed
}

// Modifies reports whether applying the edit can change the document.
func (e Edit) Modifies() bool { return len(e.Set) > 0 || len(e.Clear) > 0 }

// Validate checks the directives without touching any document.
func (e Edit) Validate() error {
	for _, assignment := range e.Set {
		if _, _, ok := strings.Cut(assignment, "="); !ok {
			return fmt.Errorf("malformed set directive %q, want name=value", assignment)
		}
	}
	return nil
}

// Apply runs the edit against content, printing requested values to out,
// and returns the document text to write back. A purely read-only edit
// returns content untouched, so callers can take the verbatim-copy path.
func (e Edit) Apply(content string, out io.Writer) (string, error) {
	doc, err := Parse(content)
	if err != nil {
		return "", err
	}
	for _, name := range e.Show {
		for _, v := range doc.Values(name) {
			fmt.Fprintf(out, "%s: %s\n", name, v)
		}
	}
	if !e.Modifies() {
		return content, nil
	}
	for _, name := range e.Clear {
		doc.Clear(name)
	}
	for _, assignment := range e.Set {
		name, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return "", fmt.Errorf("malformed set directive %q, want name=value", assignment)
		}
		doc.Set(name, value)
	}
	return doc.String()
}

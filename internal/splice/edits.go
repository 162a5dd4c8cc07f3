// Package splice inserts generated fragments into an existing HTML document.
//
// Sections are located with anchored regular expressions since they never
// nest. The factions container is located with the x/net/html tokenizer so
// nested same-name tags and attribute text cannot confuse the closing tag
// search.
package splice

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Edit represents a targeted byte-range replacement.
//
// Start and End are byte offsets into the original document, with End
// exclusive. Replacement replaces doc[Start:End]; a zero-width range inserts.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// ApplyEdits applies a set of byte-range edits to doc and returns the result.
//
// Edits must be non-overlapping and refer to offsets in the original doc.
// They are applied from the end of the document toward the beginning so
// earlier offsets stay valid.
func ApplyEdits(doc string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return doc, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End > sorted[j].End
		}
		return sorted[i].Start > sorted[j].Start
	})

	for i, e := range sorted {
		if e.Start < 0 || e.End < 0 {
			return "", fmt.Errorf("invalid edit[%d]: negative range", i)
		}
		if e.End < e.Start {
			return "", fmt.Errorf("invalid edit[%d]: end before start", i)
		}
		if e.End > len(doc) {
			return "", fmt.Errorf("invalid edit[%d]: range out of bounds", i)
		}
		if i > 0 && e.End > sorted[i-1].Start {
			return "", errors.New("invalid edits: overlapping ranges")
		}
	}

	var b strings.Builder
	b.Grow(len(doc))
	cursor := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		b.WriteString(doc[cursor:e.Start])
		b.WriteString(e.Replacement)
		cursor = e.End
	}
	b.WriteString(doc[cursor:])
	return b.String(), nil
}

package splice

import (
	"regexp"
	"strings"
)

// Strategy names the rule that placed a section fragment.
type Strategy string

const (
	StrategyReplaced       Strategy = "replaced"
	StrategyAfterAnchor    Strategy = "after-anchor"
	StrategyContainerStart Strategy = "container-start"
	StrategyBeforeEnd      Strategy = "before-end"
	StrategyAppended       Strategy = "appended"
)

// Anchors are the document landmarks used when a section is not present yet.
type Anchors struct {
	// Section is the id of the section new fragments follow.
	Section string
	// Container is a class of the <div> holding all panel sections.
	Container string
	// End is the literal marker new fragments precede, matched
	// case-insensitively.
	End string
}

// DefaultAnchors returns the landmarks of the stock site layout.
func DefaultAnchors() Anchors {
	return Anchors{
		Section:   "section-docs",
		Container: "panel-content",
		End:       "</body>",
	}
}

func sectionPattern(id string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<section\b[^>]*?\sid\s*=\s*["']` + regexp.QuoteMeta(id) + `["'][^>]*>.*?</section\s*>`)
}

func containerPattern(class string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<div\b[^>]*?\sclass\s*=\s*["'](?:[^"']*\s)?` + regexp.QuoteMeta(class) + `(?:\s[^"']*)?["'][^>]*>`)
}

// UpsertSection places fragment as the section with the given id.
//
// An existing section is replaced in place. Otherwise the fragment goes after
// the anchor section, then right after the container opening tag, then before
// the end marker, and as a last resort at the end of the document. The
// fragment is trimmed so running the same upsert twice yields the same
// document.
func UpsertSection(doc, id, fragment string, anchors Anchors) (string, Strategy) {
	fragment = strings.TrimSpace(fragment)

	if loc := sectionPattern(id).FindStringIndex(doc); loc != nil {
		return mustApply(doc, Edit{Start: loc[0], End: loc[1], Replacement: fragment}), StrategyReplaced
	}

	if anchors.Section != "" {
		if loc := sectionPattern(anchors.Section).FindStringIndex(doc); loc != nil {
			return insertAt(doc, loc[1], "\n\n"+fragment), StrategyAfterAnchor
		}
	}

	if anchors.Container != "" {
		if loc := containerPattern(anchors.Container).FindStringIndex(doc); loc != nil {
			return insertAt(doc, loc[1], "\n"+fragment), StrategyContainerStart
		}
	}

	if anchors.End != "" {
		if loc := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(anchors.End)).FindStringIndex(doc); loc != nil {
			return insertAt(doc, loc[0], fragment+"\n"), StrategyBeforeEnd
		}
	}

	return doc + "\n" + fragment + "\n", StrategyAppended
}

func insertAt(doc string, pos int, text string) string {
	return mustApply(doc, Edit{Start: pos, End: pos, Replacement: text})
}

// mustApply is used with single edits whose bounds come from a match on doc.
func mustApply(doc string, e Edit) string {
	out, err := ApplyEdits(doc, []Edit{e})
	if err != nil {
		panic(err)
	}
	return out
}

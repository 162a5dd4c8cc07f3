// Package stamp bumps the version marker shown on the site.
package stamp

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	gerrors "git.home.luguber.info/inful/gallerygen/internal/errors"
	"git.home.luguber.info/inful/gallerygen/internal/splice"
)

// DefaultStep is the increment applied on every build.
const DefaultStep = 0.1

// Result describes a version bump.
type Result struct {
	Previous string
	Current  string
}

var numberRe = regexp.MustCompile(`[vV]\s?(\d+(?:[.,]\d+)?)`)

func markerPattern(id string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<[a-z][a-z0-9]*\b[^>]*?\sid\s*=\s*["']` + regexp.QuoteMeta(id) + `["'][^>]*>`)
}

// Bump finds the element with the given id and increments the first vX.Y
// number in its text by step, rounded to one decimal. Only the number bytes
// change. A missing marker or a marker without a number leaves doc unchanged
// and returns a version error.
func Bump(doc, markerID string, step float64) (string, Result, error) {
	loc := markerPattern(markerID).FindStringIndex(doc)
	if loc == nil {
		return doc, Result{}, gerrors.VersionFormatError(markerID, "marker element not found")
	}

	text := doc[loc[1]:]
	if end := strings.Index(text, "</"); end >= 0 {
		text = text[:end]
	}
	m := numberRe.FindStringSubmatchIndex(text)
	if m == nil {
		return doc, Result{}, gerrors.VersionFormatError(markerID, "no vX.Y number in marker text")
	}

	prev := text[m[2]:m[3]]
	n, err := strconv.ParseFloat(strings.Replace(prev, ",", ".", 1), 64)
	if err != nil {
		return doc, Result{}, gerrors.VersionFormatError(markerID, err.Error())
	}
	next := strconv.FormatFloat(math.Round((n+step)*10)/10, 'f', 1, 64)

	start := loc[1] + m[2]
	out, err := splice.ApplyEdits(doc, []splice.Edit{{Start: start, End: loc[1] + m[3], Replacement: next}})
	if err != nil {
		return doc, Result{}, gerrors.InternalError("apply version edit", err)
	}
	return out, Result{Previous: prev, Current: next}, nil
}

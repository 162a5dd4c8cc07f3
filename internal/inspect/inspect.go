// Package inspect reports which gallery fragments a site document contains.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"git.home.luguber.info/inful/gallerygen/internal/markup"
)

// Options names the landmarks to look for.
type Options struct {
	FactionsClass string
	VersionID     string
}

// SlugReport describes the fragments found for one slug.
type SlugReport struct {
	Slug string
	// Section is true when a section with the slug's id exists.
	Section bool
	// Anchors counts gallery anchors inside the section.
	Anchors int
	// Triggers counts trigger links for the slug inside the factions container.
	Triggers int
	// Duplicates is true when the section id appears more than once.
	Duplicates bool
}

// Report is the outcome of inspecting a document.
type Report struct {
	Version string
	Slugs   []SlugReport
}

// Missing returns the slugs without a section.
func (r *Report) Missing() []string {
	var out []string
	for _, s := range r.Slugs {
		if !s.Section {
			out = append(out, s.Slug)
		}
	}
	return out
}

// Inspect parses doc and reports on each slug.
func Inspect(doc io.Reader, slugs []string, opts Options) (*Report, error) {
	d, err := goquery.NewDocumentFromReader(doc)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	report := &Report{}
	if opts.VersionID != "" {
		report.Version = strings.TrimSpace(d.Find(idSelector(opts.VersionID)).First().Text())
	}

	factions := d.Selection
	if opts.FactionsClass != "" {
		factions = d.Find("." + opts.FactionsClass).First()
	}

	for _, slug := range slugs {
		id := markup.SectionID(slug)
		sections := d.Find(idSelector(id))
		sr := SlugReport{
			Slug:       slug,
			Section:    sections.Length() > 0,
			Duplicates: sections.Length() > 1,
			Anchors:    sections.First().Find(".pswp-gallery a[data-pswp-width]").Length(),
		}
		target := markup.TargetSelector(slug)
		factions.Find("[data-panel-target]").Each(func(_ int, s *goquery.Selection) {
			if v, _ := s.Attr("data-panel-target"); v == target {
				sr.Triggers++
			}
		})
		report.Slugs = append(report.Slugs, sr)
	}
	return report, nil
}

// idSelector matches an id attribute literally, without CSS escaping.
func idSelector(id string) string {
	return fmt.Sprintf(`[id=%q]`, id)
}

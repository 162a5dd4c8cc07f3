// Package markup renders faction records into HTML fragments.
//
// Every function here is pure: the same record and options always produce
// the same bytes, which keeps repeated splices idempotent.
package markup

import (
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five HTML-reserved characters with entities.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

var imageExtRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)$`)

// ImageStem strips a known image extension from a declared file name.
func ImageStem(name string) string {
	return imageExtRe.ReplaceAllString(name, "")
}

var multiSlashRe = regexp.MustCompile(`/{2,}`)

// BaseHref returns /<root>/<slug> with duplicate slashes collapsed.
func BaseHref(root, slug string) string {
	root = strings.Trim(root, "/")
	return multiSlashRe.ReplaceAllString("/"+root+"/"+slug, "/")
}

// SectionID is the fragment identifier of a slug's gallery section.
func SectionID(slug string) string { return "section-" + slug }

// GalleryID is the identifier of the gallery container inside the section.
func GalleryID(slug string) string { return "gallery--" + slug }

// TargetSelector is the data-panel-target value that opens a slug's section.
func TargetSelector(slug string) string { return "#" + SectionID(slug) }

var titleCaser = cases.Title(language.Und)

// TitleFromSlug turns "ordine-dei-maghi" into "Ordine Dei Maghi".
func TitleFromSlug(slug string) string {
	return titleCaser.String(strings.ReplaceAll(slug, "-", " "))
}

// DisplayName is the record name, falling back to the title-cased slug.
func DisplayName(name, slug string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return TitleFromSlug(slug)
}

func joinHref(parts ...string) string {
	return path.Join(parts...)
}

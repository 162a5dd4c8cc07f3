package markup

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/gallerygen/internal/content"
)

// ImagePaths returns the full-size and thumbnail hrefs for an item image.
func ImagePaths(baseHref, image string, opts ImageOptions) (full, thumb string) {
	file := ImageStem(image) + ".jpg"
	full = joinHref(baseHref, file)
	thumb = joinHref(baseHref, opts.ThumbDir, file)
	return full, thumb
}

// Section renders the gallery <section> for a record. The fragment starts
// with "<section" and ends with "</section>" with no surrounding whitespace.
func Section(rec *content.FactionRecord, opts ImageOptions) string {
	slug := rec.Slug
	baseHref := BaseHref(opts.BaseRoot, slug)

	var b strings.Builder
	fmt.Fprintf(&b, "<section id=\"%s\" class=\"panel-section\">\n", Escape(SectionID(slug)))
	b.WriteString("  <header class=\"major\">\n")
	fmt.Fprintf(&b, "    <h2>%s</h2>\n", Escape(DisplayName(rec.Name, slug)))
	if rec.Text != "" {
		fmt.Fprintf(&b, "    <p>%s</p>\n", Escape(rec.Text))
	}
	b.WriteString("  </header>\n")
	fmt.Fprintf(&b, "  <div class=\"pswp-gallery\" id=\"%s\">\n", Escape(GalleryID(slug)))
	for _, item := range rec.Players {
		writeAnchor(&b, item, baseHref, opts)
	}
	for _, item := range rec.Masters {
		writeAnchor(&b, item, baseHref, opts)
	}
	b.WriteString("  </div>\n")
	b.WriteString("</section>")
	return b.String()
}

func writeAnchor(b *strings.Builder, item content.Item, baseHref string, opts ImageOptions) {
	full, thumb := ImagePaths(baseHref, item.Image, opts)
	name := Escape(item.Name)

	fmt.Fprintf(b, "    <a href=\"%s\" data-pswp-width=\"%d\" data-pswp-height=\"%d\" title=\"%s\">\n",
		Escape(full), opts.Width, opts.Height, name)
	fmt.Fprintf(b, "      <img src=\"%s\" width=\"%d\" alt=\"%s\" loading=\"lazy\" />\n",
		Escape(thumb), opts.ThumbWidth, name)
	b.WriteString("      <span class=\"pswp-caption-content\">\n")
	fmt.Fprintf(b, "        <span class=\"myimage-name\">%s</span>\n", name)
	if item.Owner != "" {
		fmt.Fprintf(b, "        <span class=\"myimage-owner\">- %s</span>\n", Escape(item.Owner))
	}
	b.WriteString("        <br />\n")
	fmt.Fprintf(b, "        <span class=\"myimage-desc\">%s</span>\n", Escape(item.Text))
	b.WriteString("      </span>\n")
	b.WriteString("    </a>\n")
}

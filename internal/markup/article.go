package markup

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/gallerygen/internal/content"
)

// Article renders the trigger block that opens the slug's section in the
// shared panel. Lines after the first carry no base indentation; the splicer
// indents the whole block to match its siblings.
func Article(rec *content.FactionRecord, imgOpts ImageOptions, opts ArticleOptions) string {
	slug := rec.Slug
	target := Escape(TargetSelector(slug))
	name := Escape(DisplayName(rec.Name, slug))
	trigger := fmt.Sprintf(`href="%s" data-panel-open data-panel-target="%s" data-panel-title="%s"`, target, target, name)

	var b strings.Builder
	b.WriteString("<article>\n")
	if rec.Icon != "" {
		icon := joinHref(BaseHref(imgOpts.BaseRoot, slug), rec.Icon)
		fmt.Fprintf(&b, "  <a class=\"image\" %s><img src=\"%s\" alt=\"%s\" loading=\"lazy\" /></a>\n", trigger, Escape(icon), name)
	}
	fmt.Fprintf(&b, "  <h3 class=\"major\">%s</h3>\n", name)
	fmt.Fprintf(&b, "  <a class=\"special\" %s>%s</a>\n", trigger, Escape(opts.Label))
	b.WriteString("</article>")
	return b.String()
}

package markup

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/gallerygen/internal/content"
)

//go:embed page.html.tmpl
var pageTemplateSource string

var pageTemplate = template.Must(template.New("page").Parse(pageTemplateSource))

// PageOptions controls standalone page rendering.
type PageOptions struct {
	Images   ImageOptions
	SiteName string
	HomeHref string
	// Markdown renders the record text as Markdown. Raw HTML in the source
	// is dropped.
	Markdown bool
}

type pageEntry struct {
	Full  string
	Thumb string
	Name  string
	Owner string
	Text  string
}

type pageData struct {
	SiteName string
	Title    string
	HomeHref string
	Intro    template.HTML
	Entries  []pageEntry
}

var markdown = goldmark.New()

// Page renders a complete HTML page listing one faction's roster.
func Page(rec *content.FactionRecord, opts PageOptions) ([]byte, error) {
	intro, err := renderIntro(rec.Text, opts.Markdown)
	if err != nil {
		return nil, fmt.Errorf("render intro for %s: %w", rec.Slug, err)
	}

	homeHref := opts.HomeHref
	if homeHref == "" {
		homeHref = "../index.html"
	}

	data := pageData{
		SiteName: opts.SiteName,
		Title:    DisplayName(rec.Name, rec.Slug),
		HomeHref: homeHref,
		Intro:    intro,
	}
	baseHref := BaseHref(opts.Images.BaseRoot, rec.Slug)
	for _, item := range rec.Entries() {
		full, thumb := ImagePaths(baseHref, item.Image, opts.Images)
		data.Entries = append(data.Entries, pageEntry{
			Full:  full,
			Thumb: thumb,
			Name:  item.Name,
			Owner: item.Owner,
			Text:  item.Text,
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}

func renderIntro(text string, asMarkdown bool) (template.HTML, error) {
	if text == "" {
		return "", nil
	}
	if !asMarkdown {
		// #nosec G203 -- text is escaped before it is marked safe
		return template.HTML(Escape(text)), nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	// #nosec G203 -- goldmark omits raw HTML unless WithUnsafe is set
	return template.HTML(buf.String()), nil
}

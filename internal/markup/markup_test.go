package markup

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gallerygen/internal/content"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;Tom &amp; &quot;Jerry&quot; &#39;x&#39;&lt;/b&gt;", Escape(`<b>Tom & "Jerry" 'x'</b>`))
	assert.Equal(t, "plain", Escape("plain"))
}

func TestImageStem(t *testing.T) {
	tests := map[string]string{
		"hero.jpg":    "hero",
		"hero.JPEG":   "hero",
		"hero.png":    "hero",
		"hero.webp":   "hero",
		"hero":        "hero",
		"hero.gif":    "hero.gif",
		"my.hero.Png": "my.hero",
		"":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ImageStem(in), in)
	}
}

func TestBaseHref(t *testing.T) {
	assert.Equal(t, "/rhymil/ordine-dei-maghi", BaseHref("rhymil", "ordine-dei-maghi"))
	assert.Equal(t, "/rhymil/ordine-dei-maghi", BaseHref("/rhymil/", "ordine-dei-maghi"))
	assert.Equal(t, "/a/b/slug", BaseHref("a//b", "slug"))
	assert.Equal(t, "/slug", BaseHref("", "slug"))
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Ordine Dei Maghi", TitleFromSlug("ordine-dei-maghi"))
	assert.Equal(t, "Named", DisplayName("Named", "ordine-dei-maghi"))
	assert.Equal(t, "Terre Barbariche", DisplayName("  ", "terre-barbariche"))
}

func sampleRecord() *content.FactionRecord {
	return &content.FactionRecord{
		Slug: "ordine-dei-maghi",
		Name: "Ordine dei Maghi",
		Icon: "icon.png",
		Text: "Custodi <del> sapere",
		Players: []content.Item{
			{Name: "Aria", Owner: "Luca", Text: "Maga & guida", Image: "aria.png"},
			{Name: "Borin", Text: "Apprendista", Image: "borin"},
		},
		Masters: []content.Item{
			{Name: "Master O'Neil", Owner: "Staff", Text: "Narratore", Image: "oneil.webp"},
		},
	}
}

func TestSection(t *testing.T) {
	opts := DefaultImageOptions()
	out := Section(sampleRecord(), opts)

	require.True(t, strings.HasPrefix(out, `<section id="section-ordine-dei-maghi" class="panel-section">`))
	require.True(t, strings.HasSuffix(out, "</section>"))
	assert.Contains(t, out, "<p>Custodi &lt;del&gt; sapere</p>")
	assert.NotContains(t, out, "<del>")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, "Ordine dei Maghi", doc.Find("header.major h2").Text())
	anchors := doc.Find("#gallery--ordine-dei-maghi.pswp-gallery > a")
	require.Equal(t, 3, anchors.Length())

	var titles []string
	anchors.Each(func(_ int, s *goquery.Selection) {
		title, _ := s.Attr("title")
		titles = append(titles, title)
	})
	assert.Equal(t, []string{"Aria", "Borin", "Master O'Neil"}, titles)

	first := anchors.First()
	href, _ := first.Attr("href")
	assert.Equal(t, "/rhymil/ordine-dei-maghi/aria.jpg", href)
	w, _ := first.Attr("data-pswp-width")
	h, _ := first.Attr("data-pswp-height")
	assert.Equal(t, "1200", w)
	assert.Equal(t, "750", h)
	src, _ := first.Find("img").Attr("src")
	assert.Equal(t, "/rhymil/ordine-dei-maghi/aria.jpg", src)
	assert.Equal(t, "- Luca", first.Find(".myimage-owner").Text())
	assert.Equal(t, "Maga & guida", first.Find(".myimage-desc").Text())

	assert.Equal(t, 0, anchors.Eq(1).Find(".myimage-owner").Length(), "empty owner is omitted")
}

func TestSectionThumbDir(t *testing.T) {
	opts := DefaultImageOptions()
	opts.ThumbDir = "thumbs"
	out := Section(sampleRecord(), opts)
	assert.Contains(t, out, `<img src="/rhymil/ordine-dei-maghi/thumbs/aria.jpg" width="150"`)
	assert.Contains(t, out, `<a href="/rhymil/ordine-dei-maghi/aria.jpg"`)
}

func TestSectionOmitsEmptyText(t *testing.T) {
	rec := &content.FactionRecord{Slug: "ordine-clericale"}
	out := Section(rec, DefaultImageOptions())
	assert.NotContains(t, out, "<p>")
	assert.Contains(t, out, "<h2>Ordine Clericale</h2>")
}

func TestSectionEscapesImageAttribute(t *testing.T) {
	rec := &content.FactionRecord{
		Slug:    "terre-barbariche",
		Players: []content.Item{{Name: "x", Image: `a" onerror="alert(1)`}},
	}
	out := Section(rec, DefaultImageOptions())
	assert.NotContains(t, out, `" onerror="`)
	assert.Contains(t, out, "&quot; onerror=&quot;")
}

func TestSectionIsDeterministic(t *testing.T) {
	opts := DefaultImageOptions()
	assert.Equal(t, Section(sampleRecord(), opts), Section(sampleRecord(), opts))
}

func TestArticle(t *testing.T) {
	out := Article(sampleRecord(), DefaultImageOptions(), DefaultArticleOptions())
	require.True(t, strings.HasPrefix(out, "<article>"))
	require.True(t, strings.HasSuffix(out, "</article>"))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	triggers := doc.Find("a[data-panel-open]")
	require.Equal(t, 2, triggers.Length())
	triggers.Each(func(_ int, s *goquery.Selection) {
		target, _ := s.Attr("data-panel-target")
		title, _ := s.Attr("data-panel-title")
		assert.Equal(t, "#section-ordine-dei-maghi", target)
		assert.Equal(t, "Ordine dei Maghi", title)
	})
	src, _ := doc.Find("a.image img").Attr("src")
	assert.Equal(t, "/rhymil/ordine-dei-maghi/icon.png", src)
	assert.Equal(t, "Ordine dei Maghi", doc.Find("h3.major").Text())
	assert.Equal(t, "Scopri", doc.Find("a.special").Text())
}

func TestArticleWithoutIcon(t *testing.T) {
	rec := &content.FactionRecord{Slug: "stato-del-popolo-libero"}
	out := Article(rec, DefaultImageOptions(), DefaultArticleOptions())
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, `data-panel-title="Stato Del Popolo Libero"`)
}

func TestPage(t *testing.T) {
	rec := sampleRecord()
	rec.Text = "Custodi del **sapere**.\n\n<script>alert(1)</script>"

	out, err := Page(rec, PageOptions{
		Images:   DefaultImageOptions(),
		SiteName: "Rhymil",
		Markdown: true,
	})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	require.NoError(t, err)

	assert.Equal(t, "Rhymil | Ordine dei Maghi", doc.Find("title").Text())
	assert.Equal(t, "sapere", doc.Find(".intro strong").Text())
	assert.Equal(t, 0, doc.Find(".intro script").Length())
	assert.NotContains(t, string(out), "<script>alert(1)</script>")

	articles := doc.Find("#thumbnails article")
	require.Equal(t, 3, articles.Length())
	href, _ := articles.First().Find("a.thumbnail").Attr("href")
	assert.Equal(t, "/rhymil/ordine-dei-maghi/aria.jpg", href)
	assert.Equal(t, "- Luca", articles.First().Find("h2 span").Text())
	assert.Equal(t, 0, articles.Eq(1).Find("h2 span").Length())

	home, _ := doc.Find("a.home-button").Attr("href")
	assert.Equal(t, "../index.html", home)
}

func TestPagePlainText(t *testing.T) {
	rec := sampleRecord()
	rec.Text = "a **b** <i>"
	out, err := Page(rec, PageOptions{Images: DefaultImageOptions(), SiteName: "Rhymil"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "a **b** &lt;i&gt;")
}

package markup

// ImageOptions controls asset links and lightbox sizing.
type ImageOptions struct {
	// BaseRoot is the site-relative folder holding one sub-folder per slug.
	BaseRoot string
	// Width and Height are the full-size dimensions announced to the lightbox.
	Width  int
	Height int
	// ThumbWidth is the rendered thumbnail width.
	ThumbWidth int
	// ThumbDir is an optional sub-folder for thumbnails; empty means the
	// thumbnail shares the full-size image.
	ThumbDir string
}

// DefaultImageOptions mirrors the site's stock gallery layout.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		BaseRoot:   "rhymil",
		Width:      1200,
		Height:     750,
		ThumbWidth: 150,
	}
}

// ArticleOptions controls the trigger block placed in the factions list.
type ArticleOptions struct {
	// Label is the text of the trigger link.
	Label string
}

// DefaultArticleOptions returns the stock trigger label.
func DefaultArticleOptions() ArticleOptions {
	return ArticleOptions{Label: "Scopri"}
}

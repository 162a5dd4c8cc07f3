package config

import (
	"strings"
	"time"
)

// DefaultSlugs are the factions published on the stock site.
var DefaultSlugs = []string{
	"fratellanza-dei-pirati",
	"ordine-dei-cavalieri",
	"ordine-dei-paladini",
	"ordine-dei-maghi",
	"ordine-clericale",
	"terre-barbariche",
	"stato-del-popolo-libero",
}

// DefaultDebounce is the watch quiet period.
const DefaultDebounce = 300 * time.Millisecond

// normalize trims and case-folds enumerations before defaults are applied.
func normalize(cfg *Config) {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	for i, s := range cfg.Slugs {
		cfg.Slugs[i] = strings.TrimSpace(s)
	}
	cfg.Images.BaseRoot = strings.Trim(strings.TrimSpace(cfg.Images.BaseRoot), "/")
}

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if len(cfg.Slugs) == 0 {
		cfg.Slugs = append([]string(nil), DefaultSlugs...)
	}

	if cfg.Input.Dir == "" {
		cfg.Input.Dir = "./rhymil"
	}
	if cfg.Input.HTML == "" {
		cfg.Input.HTML = "./index.html"
	}

	if cfg.Images.BaseRoot == "" {
		cfg.Images.BaseRoot = "rhymil"
	}
	if cfg.Images.Width == 0 {
		cfg.Images.Width = 1200
	}
	if cfg.Images.Height == 0 {
		cfg.Images.Height = 750
	}
	if cfg.Images.ThumbWidth == 0 {
		cfg.Images.ThumbWidth = 150
	}

	m := &cfg.Markers
	if m.AnchorSection == "" {
		m.AnchorSection = "section-docs"
	}
	if m.PanelContainer == "" {
		m.PanelContainer = "panel-content"
	}
	if m.End == "" {
		m.End = "</body>"
	}
	if m.FactionsClass == "" {
		m.FactionsClass = "factions"
	}
	if m.VersionID == "" {
		m.VersionID = "version"
	}
	if m.VersionStep == 0 {
		m.VersionStep = 0.1
	}

	if cfg.Articles.Label == "" {
		cfg.Articles.Label = "Scopri"
	}
	if cfg.Pages.SiteName == "" {
		cfg.Pages.SiteName = "Rhymil"
	}
	if cfg.Pages.HomeHref == "" {
		cfg.Pages.HomeHref = "../index.html"
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultDebounce.String()
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

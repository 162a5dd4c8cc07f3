// Package config loads the gallery generator configuration.
//
// The file is YAML with ${VAR} expansion. Variables from .env and .env.local
// are loaded first without overriding the process environment. Every key is
// optional; unset keys take the stock site defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	gerrors "git.home.luguber.info/inful/gallerygen/internal/errors"
	"git.home.luguber.info/inful/gallerygen/internal/retry"
)

// CurrentVersion is the configuration format version written by Init.
const CurrentVersion = "1"

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "gallerygen.yaml"

// Config is the root configuration document.
type Config struct {
	Version  string         `yaml:"version"`
	Slugs    []string       `yaml:"slugs"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Images   ImagesConfig   `yaml:"images"`
	Markers  MarkersConfig  `yaml:"markers"`
	Articles ArticlesConfig `yaml:"articles"`
	Pages    PagesConfig    `yaml:"pages"`
	Watch    WatchConfig    `yaml:"watch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// InputConfig locates the content folder and the document to splice into.
type InputConfig struct {
	Dir  string `yaml:"dir"`  // folder with one <slug>.json per faction
	HTML string `yaml:"html"` // document read at the start of a build
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	HTML     string `yaml:"html"`      // empty: overwrite the input document
	Backup   *bool  `yaml:"backup"`    // write <html>.bak when overwriting the input
	PagesDir string `yaml:"pages_dir"` // standalone pages; empty: the input dir
	Metrics  string `yaml:"metrics"`   // Prometheus textfile written after each build
}

// ImagesConfig controls generated asset links.
type ImagesConfig struct {
	BaseRoot   string `yaml:"base_root"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	ThumbWidth int    `yaml:"thumb_width"`
	ThumbDir   string `yaml:"thumb_dir"`
}

// MarkersConfig names the document landmarks the splicer and stamper use.
type MarkersConfig struct {
	AnchorSection  string  `yaml:"anchor_section"`
	PanelContainer string  `yaml:"panel_container"`
	End            string  `yaml:"end"`
	FactionsClass  string  `yaml:"factions_class"`
	VersionID      string  `yaml:"version_id"`
	VersionStep    float64 `yaml:"version_step"`
}

// ArticlesConfig controls the trigger blocks in the factions list.
type ArticlesConfig struct {
	Label string `yaml:"label"`
}

// PagesConfig controls standalone faction pages.
type PagesConfig struct {
	SiteName string `yaml:"site_name"`
	HomeHref string `yaml:"home_href"`
	Markdown *bool  `yaml:"markdown"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // quiet period before a rebuild
	Every    string `yaml:"every"`    // optional periodic rebuild interval

	RetryBackoff string `yaml:"retry_backoff"` // fixed|linear|exponential
	RetryInitial string `yaml:"retry_initial"`
	RetryMax     string `yaml:"retry_max"`
	MaxRetries   int    `yaml:"max_retries"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// OutputHTML returns the document path a build writes to.
func (c *Config) OutputHTML() string {
	if c.Output.HTML != "" {
		return c.Output.HTML
	}
	return c.Input.HTML
}

// BackupEnabled reports whether the input is backed up before overwriting.
func (c *Config) BackupEnabled() bool {
	return c.Output.Backup == nil || *c.Output.Backup
}

// MarkdownPages reports whether page intros are rendered as Markdown.
func (c *Config) MarkdownPages() bool {
	return c.Pages.Markdown == nil || *c.Pages.Markdown
}

// PagesDir returns the directory standalone pages are written to.
func (c *Config) PagesDir() string {
	if c.Output.PagesDir != "" {
		return c.Output.PagesDir
	}
	return c.Input.Dir
}

// DebounceDuration returns the parsed watch debounce.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return DefaultDebounce
	}
	return d
}

// EveryDuration returns the periodic rebuild interval, zero when disabled.
func (c *Config) EveryDuration() time.Duration {
	if c.Watch.Every == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Watch.Every)
	if err != nil {
		return 0
	}
	return d
}

// RetryPolicy returns the backoff applied to failed watch rebuilds.
func (c *Config) RetryPolicy() retry.Policy {
	initial, _ := time.ParseDuration(c.Watch.RetryInitial)
	maxDelay, _ := time.ParseDuration(c.Watch.RetryMax)
	return retry.NewPolicy(retry.ParseMode(c.Watch.RetryBackoff), initial, maxDelay, c.Watch.MaxRetries)
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands, defaults and validates a configuration file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, gerrors.ConfigNotFound(configPath)
		}
		return nil, gerrors.ReadFailed(configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, gerrors.ConfigInvalid(configPath, err)
	}

	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, gerrors.ConfigInvalid(configPath,
			fmt.Errorf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion))
	}

	normalize(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOptional loads configPath when it exists and returns defaults when it
// does not. found reports which case applied.
func LoadOptional(configPath string) (cfg *Config, found bool, err error) {
	if _, statErr := os.Stat(configPath); errors.Is(statErr, fs.ErrNotExist) {
		loadEnvFiles()
		return Default(), false, nil
	}
	cfg, err = Load(configPath)
	return cfg, err == nil, err
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Default()
	example.Version = CurrentVersion
	example.Output.Metrics = ""
	example.Watch.Every = "15m"
	example.Watch.RetryBackoff = string(retry.ModeLinear)
	example.Watch.RetryInitial = "1s"
	example.Watch.RetryMax = "30s"
	example.Watch.MaxRetries = 2

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// #nosec G306 -- config files are meant to be world-readable
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return gerrors.WriteFailed(configPath, err)
	}
	return nil
}

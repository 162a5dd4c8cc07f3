package config

import (
	"fmt"
	"time"

	"github.com/goliatone/go-slug"

	gerrors "git.home.luguber.info/inful/gallerygen/internal/errors"
	"git.home.luguber.info/inful/gallerygen/internal/retry"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if err := validateSlugs(cfg.Slugs); err != nil {
		return err
	}

	sizes := []struct {
		field string
		value int
	}{
		{"images.width", cfg.Images.Width},
		{"images.height", cfg.Images.Height},
		{"images.thumb_width", cfg.Images.ThumbWidth},
	}
	for _, s := range sizes {
		if s.value <= 0 {
			return gerrors.ValidationFailed(s.field, fmt.Sprintf("must be positive, got %d", s.value))
		}
	}

	if cfg.Markers.VersionStep <= 0 {
		return gerrors.ValidationFailed("markers.version_step", "must be positive")
	}

	if d, err := time.ParseDuration(cfg.Watch.Debounce); err != nil || d <= 0 {
		return gerrors.ValidationFailed("watch.debounce", fmt.Sprintf("invalid duration %q", cfg.Watch.Debounce))
	}
	if cfg.Watch.Every != "" {
		if d, err := time.ParseDuration(cfg.Watch.Every); err != nil || d < time.Second {
			return gerrors.ValidationFailed("watch.every", fmt.Sprintf("invalid interval %q (minimum 1s)", cfg.Watch.Every))
		}
	}
	if cfg.Watch.RetryBackoff != "" && retry.ParseMode(cfg.Watch.RetryBackoff) == "" {
		return gerrors.ValidationFailed("watch.retry_backoff", fmt.Sprintf("unknown mode %q", cfg.Watch.RetryBackoff))
	}
	if cfg.Watch.MaxRetries < 0 {
		return gerrors.ValidationFailed("watch.max_retries", "cannot be negative")
	}
	if err := cfg.RetryPolicy().Validate(); err != nil {
		return gerrors.ValidationFailed("watch.retry", err.Error())
	}
	return nil
}

// ValidateSlugs checks a slug list for emptiness, format and duplicates.
func ValidateSlugs(slugs []string) error {
	return validateSlugs(slugs)
}

func validateSlugs(slugs []string) error {
	if len(slugs) == 0 {
		return gerrors.ValidationFailed("slugs", "at least one slug is required")
	}
	seen := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		if !slug.IsValid(s) {
			hint := ""
			if normalized, err := slug.Normalize(s); err == nil && normalized != "" {
				hint = fmt.Sprintf(" (did you mean %q?)", normalized)
			}
			return gerrors.ValidationFailed("slugs", fmt.Sprintf("invalid slug %q%s", s, hint))
		}
		if _, dup := seen[s]; dup {
			return gerrors.ValidationFailed("slugs", fmt.Sprintf("duplicate slug %q", s))
		}
		seen[s] = struct{}{}
	}
	return nil
}

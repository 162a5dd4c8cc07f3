package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeySlug       = "slug"
	KeyPath       = "path"
	KeyFragment   = "fragment"
	KeyStrategy   = "strategy"
	KeyMarker     = "marker"
	KeyVersion    = "version"
	KeyPrevious   = "previous"
	KeyCount      = "count"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Fragment(id string) slog.Attr    { return slog.String(KeyFragment, id) }
func Strategy(s string) slog.Attr     { return slog.String(KeyStrategy, s) }
func Marker(m string) slog.Attr       { return slog.String(KeyMarker, m) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Previous(v string) slog.Attr     { return slog.String(KeyPrevious, v) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

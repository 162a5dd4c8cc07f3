package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/gallerygen/internal/config"
	"git.home.luguber.info/inful/gallerygen/internal/splice"
	"git.home.luguber.info/inful/gallerygen/internal/stamp"
)

// BuildService executes gallery batches. The CLI build command and the
// watcher both route through it.
type BuildService interface {
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a batch.
type BuildRequest struct {
	// Config is the loaded configuration for this batch.
	Config *config.Config

	// Options provides optional behavior modifiers.
	Options BuildOptions
}

// BuildOptions provides optional configuration for batch behavior.
type BuildOptions struct {
	// NoStamp leaves the version marker untouched.
	NoStamp bool

	// DryRun runs every stage but skips the backup and the write.
	DryRun bool
}

// BuildStatus represents the outcome of a batch.
type BuildStatus string

const (
	BuildStatusSuccess   BuildStatus = "success"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// SlugOutcome is the per-slug result of a batch.
type SlugOutcome string

const (
	SlugUpdated    SlugOutcome = "updated"
	SlugMissing    SlugOutcome = "missing"
	SlugParseError SlugOutcome = "parse-error"
	SlugReadError  SlugOutcome = "read-error"
)

// ArticleOutcome reports what happened to the trigger article.
type ArticleOutcome string

const (
	ArticleSpliced ArticleOutcome = "spliced"
	ArticleSkipped ArticleOutcome = "skipped"
)

// SlugResult records how one slug was processed.
type SlugResult struct {
	Slug     string
	Outcome  SlugOutcome
	Strategy splice.Strategy
	Article  ArticleOutcome
	Err      error
}

// BuildResult contains the outcome of a batch.
type BuildResult struct {
	BuildID string
	Status  BuildStatus

	InputPath  string
	OutputPath string
	// BackupPath is empty when no backup was written.
	BackupPath string

	Slugs []SlugResult

	// Version is zero when stamping was skipped or the marker was unusable.
	Version  stamp.Result
	Stamped  bool
	StampErr error

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Updated returns the number of slugs spliced into the document.
func (r *BuildResult) Updated() int {
	n := 0
	for _, s := range r.Slugs {
		if s.Outcome == SlugUpdated {
			n++
		}
	}
	return n
}

// Skipped returns the number of slugs left out because of content errors.
func (r *BuildResult) Skipped() int {
	return len(r.Slugs) - r.Updated()
}

// Slug returns the result for slug.
func (r *BuildResult) Slug(slug string) (SlugResult, bool) {
	for _, s := range r.Slugs {
		if s.Slug == slug {
			return s, true
		}
	}
	return SlugResult{}, false
}

func (r *BuildResult) finish(status BuildStatus) {
	r.Status = status
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}

package build

import (
	"context"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/gallerygen/internal/config"
	"git.home.luguber.info/inful/gallerygen/internal/content"
	gerrors "git.home.luguber.info/inful/gallerygen/internal/errors"
	"git.home.luguber.info/inful/gallerygen/internal/logfields"
	"git.home.luguber.info/inful/gallerygen/internal/markup"
	"git.home.luguber.info/inful/gallerygen/internal/metrics"
	"git.home.luguber.info/inful/gallerygen/internal/observability"
	"git.home.luguber.info/inful/gallerygen/internal/splice"
	"git.home.luguber.info/inful/gallerygen/internal/stamp"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	recorder  metrics.Recorder
	newID     func() string
	writeFile func(path string, data []byte) error
}

// NewBuildService creates a DefaultBuildService with a no-op recorder.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		recorder:  metrics.NoopRecorder{},
		newID:     observability.NewBuildID,
		writeFile: writeFileAtomic,
	}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// Run executes one batch.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	result := &BuildResult{
		BuildID:   s.newID(),
		StartTime: time.Now(),
	}
	ctx = observability.WithBuildID(ctx, result.BuildID)

	cfg := req.Config
	if cfg == nil {
		result.finish(BuildStatusFailed)
		return result, gerrors.InternalError("config required", nil)
	}
	result.InputPath = cfg.Input.HTML
	result.OutputPath = cfg.OutputHTML()

	// The input document gates the whole batch.
	original, err := os.ReadFile(cfg.Input.HTML)
	if err != nil {
		result.finish(BuildStatusFailed)
		if os.IsNotExist(err) {
			return result, gerrors.InputMissing(cfg.Input.HTML)
		}
		return result, gerrors.ReadFailed(cfg.Input.HTML, err)
	}

	loader, err := content.NewLoader(cfg.Input.Dir)
	if err != nil {
		result.finish(BuildStatusFailed)
		return result, err
	}

	observability.InfoContext(ctx, "Starting gallery build",
		logfields.Path(cfg.Input.HTML),
		logfields.Count(len(cfg.Slugs)))

	stageStart := time.Now()
	doc := string(original)
	sctx := observability.WithStage(ctx, "splice")
	for _, slug := range cfg.Slugs {
		select {
		case <-ctx.Done():
			result.finish(BuildStatusCancelled)
			return result, ctx.Err()
		default:
		}

		var sr SlugResult
		doc, sr = s.processSlug(observability.WithSlug(sctx, slug), cfg, loader, doc, slug)
		result.Slugs = append(result.Slugs, sr)
	}
	s.recorder.ObserveStageDuration("splice", time.Since(stageStart))

	if !req.Options.NoStamp {
		doc = s.stampVersion(observability.WithStage(ctx, "stamp"), cfg, doc, result)
	}

	if req.Options.DryRun {
		observability.InfoContext(ctx, "Dry run, document not written", logfields.Path(result.OutputPath))
	} else if err := s.write(observability.WithStage(ctx, "write"), cfg, original, doc, result); err != nil {
		result.finish(BuildStatusFailed)
		return result, err
	}

	result.finish(BuildStatusSuccess)
	s.recorder.ObserveBuildDuration(result.Duration)

	observability.InfoContext(ctx, "Gallery build complete",
		slog.Int("updated", result.Updated()),
		slog.Int("skipped", result.Skipped()),
		logfields.Path(result.OutputPath),
		logfields.DurationMS(float64(result.Duration.Microseconds())/1000))

	return result, nil
}

func (s *DefaultBuildService) processSlug(ctx context.Context, cfg *config.Config, loader *content.Loader, doc, slug string) (string, SlugResult) {
	sr := SlugResult{Slug: slug, Article: ArticleSkipped}

	rec, err := loader.Load(slug)
	if err != nil {
		sr.Err = err
		switch {
		case gerrors.IsCategory(err, gerrors.CategoryNotFound):
			sr.Outcome = SlugMissing
			s.recorder.IncSlugResult(metrics.ResultMissing)
			observability.WarnContext(ctx, "Content file not found, slug skipped",
				logfields.Path(loader.PathFor(slug)))
		case gerrors.IsCategory(err, gerrors.CategoryFileSystem):
			sr.Outcome = SlugReadError
			s.recorder.IncSlugResult(metrics.ResultReadError)
			observability.WarnContext(ctx, "Content read failed, slug skipped",
				logfields.Path(loader.PathFor(slug)),
				logfields.Error(err))
		default:
			sr.Outcome = SlugParseError
			s.recorder.IncSlugResult(metrics.ResultParseError)
			observability.WarnContext(ctx, "Content parse failed, slug skipped",
				logfields.Path(loader.PathFor(slug)),
				logfields.Error(err))
		}
		return doc, sr
	}

	imgOpts := ImageOptions(cfg)
	section := markup.Section(rec, imgOpts)
	doc, sr.Strategy = splice.UpsertSection(doc, markup.SectionID(slug), section, Anchors(cfg))
	s.recorder.IncSectionStrategy(string(sr.Strategy))
	observability.DebugContext(ctx, "Section spliced",
		logfields.Fragment(markup.SectionID(slug)),
		logfields.Strategy(string(sr.Strategy)),
		slog.Int("bytes", len(section)))

	article := markup.Article(rec, imgOpts, markup.ArticleOptions{Label: cfg.Articles.Label})
	next, err := splice.UpsertArticle(doc, cfg.Markers.FactionsClass, markup.TargetSelector(slug), article)
	if err != nil {
		observability.WarnContext(ctx, "Factions container not found, trigger article skipped",
			logfields.Marker(cfg.Markers.FactionsClass),
			logfields.Error(err))
	} else {
		doc = next
		sr.Article = ArticleSpliced
	}

	sr.Outcome = SlugUpdated
	s.recorder.IncSlugResult(metrics.ResultUpdated)
	observability.InfoContext(ctx, "Slug updated",
		logfields.Fragment(markup.SectionID(slug)),
		logfields.Strategy(string(sr.Strategy)),
		logfields.Count(len(rec.Players)+len(rec.Masters)),
		slog.String("article", string(sr.Article)))
	return doc, sr
}

func (s *DefaultBuildService) stampVersion(ctx context.Context, cfg *config.Config, doc string, result *BuildResult) string {
	start := time.Now()
	defer func() { s.recorder.ObserveStageDuration("stamp", time.Since(start)) }()

	next, res, err := stamp.Bump(doc, cfg.Markers.VersionID, cfg.Markers.VersionStep)
	if err != nil {
		result.StampErr = err
		s.recorder.IncVersionBump(false)
		observability.WarnContext(ctx, "Version marker unusable, left unchanged",
			logfields.Marker(cfg.Markers.VersionID),
			logfields.Error(err))
		return doc
	}

	result.Version = res
	result.Stamped = true
	s.recorder.IncVersionBump(true)
	observability.InfoContext(ctx, "Version bumped",
		logfields.Previous(res.Previous),
		logfields.Version(res.Current))
	return next
}

func (s *DefaultBuildService) write(ctx context.Context, cfg *config.Config, original []byte, doc string, result *BuildResult) error {
	start := time.Now()
	defer func() { s.recorder.ObserveStageDuration("write", time.Since(start)) }()

	if cfg.BackupEnabled() && samePath(cfg.Input.HTML, result.OutputPath) {
		backup := BackupPath(cfg.Input.HTML)
		if err := s.writeFile(backup, original); err != nil {
			observability.ErrorContext(ctx, "Backup write failed", logfields.Path(backup), logfields.Error(err))
			return gerrors.WriteFailed(backup, err)
		}
		result.BackupPath = backup
		observability.InfoContext(ctx, "Backup written", logfields.Path(backup))
	}

	if err := s.writeFile(result.OutputPath, []byte(doc)); err != nil {
		observability.ErrorContext(ctx, "Document write failed", logfields.Path(result.OutputPath), logfields.Error(err))
		return gerrors.WriteFailed(result.OutputPath, err)
	}
	observability.InfoContext(ctx, "Document written", logfields.Path(result.OutputPath))
	return nil
}

// ImageOptions maps the images configuration onto the markup builder.
func ImageOptions(cfg *config.Config) markup.ImageOptions {
	return markup.ImageOptions{
		BaseRoot:   cfg.Images.BaseRoot,
		Width:      cfg.Images.Width,
		Height:     cfg.Images.Height,
		ThumbWidth: cfg.Images.ThumbWidth,
		ThumbDir:   cfg.Images.ThumbDir,
	}
}

// Anchors maps the markers configuration onto the section splicer.
func Anchors(cfg *config.Config) splice.Anchors {
	return splice.Anchors{
		Section:   cfg.Markers.AnchorSection,
		Container: cfg.Markers.PanelContainer,
		End:       cfg.Markers.End,
	}
}

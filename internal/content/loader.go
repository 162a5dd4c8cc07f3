package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	gerrors "git.home.luguber.info/inful/gallerygen/internal/errors"
)

// Loader reads <slug>.json files from a content directory.
type Loader struct {
	dir    string
	schema *jsonschema.Schema
}

// NewLoader returns a loader for dir with the faction schema compiled.
func NewLoader(dir string) (*Loader, error) {
	schema, err := compileFactionSchema()
	if err != nil {
		return nil, gerrors.InternalError("faction schema", err)
	}
	return &Loader{dir: dir, schema: schema}, nil
}

// Dir returns the content directory.
func (l *Loader) Dir() string { return l.dir }

// PathFor returns the content file path for slug.
func (l *Loader) PathFor(slug string) string {
	return filepath.Join(l.dir, slug+".json")
}

// Load reads and decodes the record for slug.
//
// A missing file yields a NotFound error and malformed content a ParseError;
// both are meant to skip the slug, not abort the batch.
func (l *Loader) Load(slug string) (*FactionRecord, error) {
	path := l.PathFor(slug)
	data, err := os.ReadFile(path) // #nosec G304 -- path is derived from a configured slug.
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, gerrors.NotFound(slug, path)
		}
		return nil, gerrors.ReadFailed(path, err).WithContext("slug", slug)
	}
	return l.Decode(slug, data)
}

// Decode parses lenient JSON content for slug.
func (l *Loader) Decode(slug string, data []byte) (*FactionRecord, error) {
	normalized := Normalize(data)

	var raw any
	if err := json.Unmarshal(normalized, &raw); err != nil {
		return nil, gerrors.ParseError(slug, err)
	}
	if err := l.schema.Validate(raw); err != nil {
		return nil, gerrors.ParseError(slug, fmt.Errorf("schema: %s", schemaIssues(err)))
	}

	var rec FactionRecord
	if err := json.Unmarshal(normalized, &rec); err != nil {
		return nil, gerrors.ParseError(slug, err)
	}
	rec.Slug = slug
	return &rec, nil
}

// Result is the outcome of loading one slug.
type Result struct {
	Slug   string
	Record *FactionRecord
	Err    error
}

// LoadAll loads every slug in order. Per-slug failures are returned in the
// matching Result rather than stopping the walk.
func (l *Loader) LoadAll(slugs []string) []Result {
	results := make([]Result, 0, len(slugs))
	for _, slug := range slugs {
		rec, err := l.Load(slug)
		results = append(results, Result{Slug: slug, Record: rec, Err: err})
	}
	return results
}

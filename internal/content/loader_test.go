package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	gerrors "git.home.luguber.info/inful/gallerygen/internal/errors"
)

func writeContent(t *testing.T, dir, slug, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".json"), []byte(body), 0o600))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "ordine-dei-maghi", `{
  "name": "Ordine dei Maghi",
  "icon": "icon.png",
  "text": "Custodi del sapere",
  "players": [
    {"name": "A", "owner": "Luca", "text": "first", "image": "a.jpg"},
    {"name": "B", "image": "b"},
  ],
  // masters follow
  "masters": [{"name": "C", "image": "c.webp"}],
}`)

	l, err := NewLoader(dir)
	require.NoError(t, err)

	rec, err := l.Load("ordine-dei-maghi")
	require.NoError(t, err)
	require.Equal(t, "ordine-dei-maghi", rec.Slug)
	require.Equal(t, "Ordine dei Maghi", rec.Name)
	require.Len(t, rec.Players, 2)
	require.Equal(t, "Luca", rec.Players[0].Owner)
	require.Len(t, rec.Masters, 1)

	names := []string{}
	for _, it := range rec.Entries() {
		names = append(names, it.Name)
	}
	require.Equal(t, []string{"A", "B", "C"}, names)
}

func TestLoader_MissingFileIsNotFound(t *testing.T) {
	l, err := NewLoader(t.TempDir())
	require.NoError(t, err)

	_, err = l.Load("terre-barbariche")
	require.Error(t, err)
	require.True(t, gerrors.IsCategory(err, gerrors.CategoryNotFound))
}

func TestLoader_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"single quotes", `{'name': 'x'}`},
		{"truncated", `{"name": "x"`},
		{"raw control character", "{\"name\": \"a\tb\"}"},
		{"players not an array", `{"players": {"name": "x"}}`},
		{"item not an object", `{"masters": ["x"]}`},
		{"name not a string", `{"name": 12}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLoader(t.TempDir())
			require.NoError(t, err)

			_, err = l.Decode("ordine-clericale", []byte(tt.body))
			require.Error(t, err)
			require.True(t, gerrors.IsCategory(err, gerrors.CategoryParse), err.Error())
			ge, ok := gerrors.As(err)
			require.True(t, ok)
			require.Equal(t, "ordine-clericale", ge.Context["slug"])
		})
	}
}

func TestLoader_NullAndAbsentFields(t *testing.T) {
	l, err := NewLoader(t.TempDir())
	require.NoError(t, err)

	rec, err := l.Decode("x", []byte(`{"name": null, "players": null, "masters": [{"name": "m", "owner": null, "image": "m.png"}]}`))
	require.NoError(t, err)
	require.Empty(t, rec.Name)
	require.Empty(t, rec.Players)
	require.Len(t, rec.Masters, 1)
	require.Empty(t, rec.Masters[0].Owner)
}

func TestLoader_LoadAll(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "a", `{"name": "A"}`)
	writeContent(t, dir, "c", `{"name": `)

	l, err := NewLoader(dir)
	require.NoError(t, err)

	results := l.LoadAll([]string{"a", "b", "c"})
	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	require.Equal(t, "A", results[0].Record.Name)
	require.True(t, gerrors.IsCategory(results[1].Err, gerrors.CategoryNotFound))
	require.True(t, gerrors.IsCategory(results[2].Err, gerrors.CategoryParse))
}

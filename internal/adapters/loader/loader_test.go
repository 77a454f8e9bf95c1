package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/federate/internal/adapters/loader"
	"go.trai.ch/federate/internal/core/domain"
)

func sampleMap() *domain.ImportMap {
	m := domain.NewImportMap()
	m.AddImport("rxjs", "http://localhost:3001/rxjs.js")
	m.AddScoped("http://localhost:3002/", "rxjs", "http://localhost:3002/rxjs.js")
	return m
}

func TestRegistry_ImportBeforeExpose(t *testing.T) {
	r := loader.NewRegistry()
	_, err := r.Import(context.Background(), "rxjs")
	require.ErrorIs(t, err, domain.ErrNotExposed)

	require.ErrorIs(t, r.Expose(context.Background(), nil), domain.ErrNotExposed)
}

func TestRegistry_ExposeAndImport(t *testing.T) {
	ctx := context.Background()
	r := loader.NewRegistry()
	m := sampleMap()
	require.NoError(t, r.Expose(ctx, m))

	url, err := r.Import(ctx, "rxjs")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001/rxjs.js", url)

	m.AddImport("rxjs", "http://mutated/rxjs.js")
	url, err = r.Import(ctx, "rxjs")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001/rxjs.js", url, "exposed map is copied")

	_, err = r.Import(ctx, "lodash")
	require.ErrorIs(t, err, domain.ErrUnresolvedSpecifier)

	next := domain.NewImportMap()
	next.AddImport("lodash", "http://localhost:3003/lodash.js")
	require.NoError(t, r.Expose(ctx, next))
	_, err = r.Import(ctx, "rxjs")
	require.ErrorIs(t, err, domain.ErrUnresolvedSpecifier, "expose replaces the previous map")
}

func TestRender_HTML(t *testing.T) {
	data, err := loader.Render(domain.FormatHTML, sampleMap())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "html_output", data)
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := loader.Render("xml", sampleMap())
	require.ErrorIs(t, err, domain.ErrUnknownOutputFormat)
}

func TestFileWriter_WritesJSON(t *testing.T) {
	root := t.TempDir()
	w := loader.NewFileWriter(root)

	err := w.Write(domain.OutputConfig{Path: filepath.Join("dist", "importmap.json"), Format: domain.FormatJSON}, sampleMap())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "dist", "importmap.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"imports": {"rxjs": "http://localhost:3001/rxjs.js"},
		"scopes": {"http://localhost:3002/": {"rxjs": "http://localhost:3002/rxjs.js"}}
	}`, string(data))

	entries, err := os.ReadDir(filepath.Join(root, "dist"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestFileWriter_AbsolutePath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "importmap.html")
	w := loader.NewFileWriter("/nonexistent")

	require.NoError(t, w.Write(domain.OutputConfig{Path: target, Format: domain.FormatHTML}, sampleMap()))
	assert.FileExists(t, target)
}

func TestFileWriter_UnknownFormat(t *testing.T) {
	root := t.TempDir()
	w := loader.NewFileWriter(root)

	err := w.Write(domain.OutputConfig{Path: "importmap.xml", Format: "xml"}, sampleMap())
	require.ErrorIs(t, err, domain.ErrUnknownOutputFormat)
	assert.NoFileExists(t, filepath.Join(root, "importmap.xml"))
}

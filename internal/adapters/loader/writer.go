package loader

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ImportMapWriter = (*FileWriter)(nil)

// FileWriter writes import maps to the filesystem.
type FileWriter struct {
	root string
}

// NewFileWriter creates a FileWriter resolving relative paths against root.
func NewFileWriter(root string) *FileWriter {
	return &FileWriter{root: root}
}

// Write renders importMap in the configured format and replaces the output file atomically.
func (w *FileWriter) Write(out domain.OutputConfig, importMap *domain.ImportMap) error {
	data, err := Render(out.Format, importMap)
	if err != nil {
		return err
	}

	path := out.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.root, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrImportMapWriteFailed.Error()), "path", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".importmap-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrImportMapWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrImportMapWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrImportMapWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrImportMapWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrImportMapWriteFailed.Error()), "path", path)
	}
	return nil
}

// Render encodes importMap as a JSON document or an HTML script tag.
func Render(format domain.OutputFormat, importMap *domain.ImportMap) ([]byte, error) {
	data, err := json.MarshalIndent(importMap, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrImportMapWriteFailed.Error())
	}

	switch format {
	case domain.FormatJSON, "":
		return append(data, '\n'), nil
	case domain.FormatHTML:
		var buf bytes.Buffer
		buf.WriteString("<script type=\"importmap\">\n")
		buf.Write(data)
		buf.WriteString("\n</script>\n")
		return buf.Bytes(), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownOutputFormat, "cannot render import map"), "format", string(format))
	}
}

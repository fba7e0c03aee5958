package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/fascia/pkg/scaffold"
)

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc *scaffold.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the indented JSON encoding of doc.
func MarshalJSON(doc *scaffold.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes doc to path atomically.
func ExportJSON(doc *scaffold.Document, path string) error {
	data, err := MarshalJSON(doc)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data)
}

// File is one output of [WriteFilesAtomic].
type File struct {
	Path string
	Data []byte
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it over path. Parent directories are created as needed.
func WriteFileAtomic(path string, data []byte) error {
	return WriteFilesAtomic(File{Path: path, Data: data})
}

// WriteFilesAtomic stages every file in a temporary file next to its path
// and renames them into place only once all of them were written. If any
// file cannot be staged, no path is touched.
func WriteFilesAtomic(files ...File) error {
	temps := make([]string, 0, len(files))
	defer func() {
		for _, t := range temps {
			os.Remove(t)
		}
	}()

	for _, f := range files {
		tmp, err := stage(f)
		if err != nil {
			return err
		}
		temps = append(temps, tmp)
	}
	for i, f := range files {
		if err := os.Rename(temps[i], f.Path); err != nil {
			return fmt.Errorf("rename into %s: %w", f.Path, err)
		}
	}
	return nil
}

// stage writes f to a temporary file in its target directory.
func stage(f File) (string, error) {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", f.Path, err)
	}
	if _, err := tmp.Write(f.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", f.Path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("chmod %s: %w", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close %s: %w", f.Path, err)
	}
	return tmp.Name(), nil
}

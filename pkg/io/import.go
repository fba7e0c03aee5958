package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	ferrors "github.com/matzehuels/fascia/pkg/errors"
	"github.com/matzehuels/fascia/pkg/scaffold"
)

// ReadJSON decodes a scaffold document from r.
//
// Missing arrays decode as empty lists, so the returned document always
// serializes back with all required fields. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*scaffold.Document, error) {
	var doc scaffold.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "decode scaffold")
	}
	if doc.Anchors == nil {
		doc.Anchors = []scaffold.Anchor{}
	}
	if doc.Wires == nil {
		doc.Wires = []scaffold.Wire{}
	}
	if doc.Components == nil {
		doc.Components = []scaffold.Component{}
	}
	for i := range doc.Components {
		c := &doc.Components[i]
		if c.Anchors == nil {
			c.Anchors = []string{}
		}
		if c.Wires == nil {
			c.Wires = []string{}
		}
	}
	return &doc, nil
}

// ImportJSON reads the scaffold document at path.
func ImportJSON(path string) (*scaffold.Document, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "scaffold document not found at %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

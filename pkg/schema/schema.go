// Package schema counts the properties of the classes in a JSON schema.
//
// A class is an entry under "definitions" that has type "object", its own
// "properties" or an "allOf" list. Its effective properties are its own
// plus those of every "allOf" item, following local "#/definitions/..."
// references transitively.
package schema

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	ferrors "github.com/matzehuels/fascia/pkg/errors"
)

// DefaultPath is the schema file counted when no path is given.
const DefaultPath = "src/model/graphScheme.json"

const localRef = "#/definitions/"

// ClassCount is the number of effective properties of one class.
type ClassCount struct {
	Name       string `json:"name"`
	Properties int    `json:"properties"`
}

// Report is the result of [Count].
type Report struct {
	// Classes are ordered by descending property count, then by name.
	Classes []ClassCount `json:"classes"`
	// TotalUnique counts distinct property names over every resolved
	// definition, including definitions reached only through references.
	TotalUnique int `json:"total_unique"`
}

type definition struct {
	Type       json.RawMessage            `json:"type"`
	Properties map[string]json.RawMessage `json:"properties"`
	AllOf      []struct {
		Properties map[string]json.RawMessage `json:"properties"`
		Ref        string                     `json:"$ref"`
	} `json:"allOf"`
}

func (d definition) isClass() bool {
	return bytes.Equal(bytes.TrimSpace(d.Type), []byte(`"object"`)) || d.Properties != nil || d.AllOf != nil
}

// Count reads a schema document and counts the properties of its classes.
func Count(r io.Reader) (*Report, error) {
	var doc struct {
		Definitions map[string]definition `json:"definitions"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "decode schema")
	}

	res := resolver{defs: doc.Definitions, memo: make(map[string]map[string]bool)}
	report := &Report{Classes: []ClassCount{}}
	for name, def := range doc.Definitions {
		if !def.isClass() {
			continue
		}
		report.Classes = append(report.Classes, ClassCount{Name: name, Properties: len(res.resolve(name))})
	}
	slices.SortFunc(report.Classes, func(a, b ClassCount) int {
		if c := cmp.Compare(b.Properties, a.Properties); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	unique := make(map[string]bool)
	for _, props := range res.memo {
		for p := range props {
			unique[p] = true
		}
	}
	report.TotalUnique = len(unique)
	return report, nil
}

// CountFile counts the schema at path.
func CountFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "schema not found at %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	report, err := Count(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

type resolver struct {
	defs map[string]definition
	memo map[string]map[string]bool
}

// resolve returns the effective property set of a definition. A reference
// cycle contributes the properties collected so far.
func (r *resolver) resolve(name string) map[string]bool {
	if props, ok := r.memo[name]; ok {
		return props
	}
	props := make(map[string]bool)
	r.memo[name] = props

	def := r.defs[name]
	for p := range def.Properties {
		props[p] = true
	}
	for _, item := range def.AllOf {
		for p := range item.Properties {
			props[p] = true
		}
		if ref, ok := strings.CutPrefix(item.Ref, localRef); ok {
			for p := range r.resolve(ref) {
				props[p] = true
			}
		}
	}
	return props
}

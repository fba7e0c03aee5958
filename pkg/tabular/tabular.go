// Package tabular reads anchor and wire tables from CSV files.
//
// Both tables start with a header row and are matched by column name, so
// column order is free and extra columns are ignored. Required columns:
//
//	anchors: id, name, x, y, z
//	wires:   id, source, target
//
// Coordinates must parse as finite floating point numbers. Any malformed
// row fails the whole table; there is no per-row recovery. A missing file
// is reported with code FILE_NOT_FOUND so callers can continue with an
// empty table.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	ferrors "github.com/matzehuels/fascia/pkg/errors"
	"github.com/matzehuels/fascia/pkg/scaffold"
)

// Column sets required by each table.
var (
	AnchorColumns = []string{"id", "name", "x", "y", "z"}
	WireColumns   = []string{"id", "source", "target"}
)

// ReadAnchors decodes an anchor table. Rows are returned in file order.
func ReadAnchors(r io.Reader) ([]scaffold.Anchor, error) {
	anchors := []scaffold.Anchor{}
	err := readTable(r, AnchorColumns, func(row record) error {
		var coords [3]float64
		for i, col := range []string{"x", "y", "z"} {
			v, err := row.float(col)
			if err != nil {
				return err
			}
			coords[i] = v
		}
		anchors = append(anchors, scaffold.Anchor{
			ID:     row.get("id"),
			Name:   row.get("name"),
			Layout: scaffold.NewPoint(coords[0], coords[1], coords[2]),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return anchors, nil
}

// ReadWires decodes a wire table. Each wire id is the row id prefixed with
// [scaffold.WirePrefix].
func ReadWires(r io.Reader) ([]scaffold.Wire, error) {
	wires := []scaffold.Wire{}
	err := readTable(r, WireColumns, func(row record) error {
		wires = append(wires, scaffold.Wire{
			ID:     scaffold.WirePrefix + row.get("id"),
			Source: row.get("source"),
			Target: row.get("target"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wires, nil
}

// LoadAnchors reads the anchor table at path.
func LoadAnchors(path string) ([]scaffold.Anchor, error) {
	var anchors []scaffold.Anchor
	err := withFile(path, "nodes", func(f io.Reader) (err error) {
		anchors, err = ReadAnchors(f)
		return err
	})
	return anchors, err
}

// LoadWires reads the wire table at path.
func LoadWires(path string) ([]scaffold.Wire, error) {
	var wires []scaffold.Wire
	err := withFile(path, "edges", func(f io.Reader) (err error) {
		wires, err = ReadWires(f)
		return err
	})
	return wires, err
}

func withFile(path, table string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "%s file not found at %s", table, path)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// record is one data row addressed by column name.
type record struct {
	line   int
	index  map[string]int
	fields []string
}

func (r record) get(col string) string {
	return r.fields[r.index[col]]
}

func (r record) float(col string) (float64, error) {
	raw := strings.TrimSpace(r.get(col))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ferrors.New(ferrors.ErrCodeInvalidRow, "line %d: column %q: %q is not a finite number", r.line, col, raw)
	}
	return v, nil
}

func readTable(r io.Reader, required []string, fn func(record) error) error {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return ferrors.New(ferrors.ErrCodeMissingColumn, "empty table: missing header %s", strings.Join(required, ","))
	}
	if err != nil {
		return ferrors.Wrap(ferrors.ErrCodeInvalidRow, err, "header")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return ferrors.New(ferrors.ErrCodeMissingColumn, "missing required column %q", col)
		}
	}

	for {
		fields, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return ferrors.Wrap(ferrors.ErrCodeInvalidRow, err, "malformed row")
		}
		line, _ := cr.FieldPos(0)
		if err := fn(record{line: line, index: index, fields: fields}); err != nil {
			return err
		}
	}
}

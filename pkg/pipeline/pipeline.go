// Package pipeline runs the scaffold passes end to end.
//
// A [Runner] loads the anchor and wire tables, groups them into layer
// components, binds background images, derives the filtered view and
// writes both documents. The filter and normalization passes are also
// available on their own for documents that already exist on disk.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Build(ctx, pipeline.Options{
//	    NodesPath:    "nodes.csv",
//	    EdgesPath:    "edges.csv",
//	    Resources:    resource.NewDirSource("torso_images"),
//	    Keep:         scaffold.DefaultKeep,
//	    Policy:       scaffold.ExactKeys,
//	    FullPath:     "out/fascia_scaffold.json",
//	    FilteredPath: "out/fascia_scaffold_filtered.json",
//	})
//
// Built documents are cached under a key covering the table contents, the
// resource ids and every grouping option, so an unchanged rerun skips
// loading and grouping.
package pipeline

import (
	"time"

	ferrors "github.com/matzehuels/fascia/pkg/errors"
	"github.com/matzehuels/fascia/pkg/resource"
	"github.com/matzehuels/fascia/pkg/scaffold"
)

// Options configures [Runner.Build].
type Options struct {
	NodesPath string
	EdgesPath string

	// Resources lists background images. Nil binds nothing.
	Resources resource.Source
	Pairing   scaffold.Pairing

	// Keep is the number of components kept verbatim in the filtered view.
	Keep   int
	Policy scaffold.KeyPolicy

	// FullPath and FilteredPath receive the documents; empty skips writing.
	FullPath     string
	FilteredPath string

	// Refresh ignores cached results.
	Refresh bool
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.Keep < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "keep must not be negative, got %d", o.Keep)
	}
	if o.NodesPath == "" && o.EdgesPath == "" {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "no input tables given")
	}
	return nil
}

// Result is the outcome of one build.
type Result struct {
	// RunID identifies the run in logs.
	RunID    string
	Full     *scaffold.Document
	Filtered *scaffold.Document
	Stats    Stats
	CacheHit bool
	// Warnings are non-fatal conditions, such as a missing input table.
	Warnings []string
}

// Stats summarizes a build.
type Stats struct {
	Anchors    int
	Wires      int
	Components int
	Resources  int
	Bound      int
	Kept       int
	Duration   time.Duration
}

// FilterOptions configures [Runner.Filter].
type FilterOptions struct {
	Input  string
	Output string
	Keep   int
}

// ScaleOptions configures [Runner.Scale].
type ScaleOptions struct {
	Input     string
	Output    string
	Normalize scaffold.NormalizeOptions
	Refresh   bool
}

// ScaleResult is the outcome of one normalization run.
type ScaleResult struct {
	RunID    string
	Document *scaffold.Document
	// Axes holds the observed range of every transformed axis.
	Axes     []scaffold.AxisStats
	CacheHit bool
	// Written is false when the input had no anchors and nothing was
	// produced.
	Written  bool
	Warnings []string
}

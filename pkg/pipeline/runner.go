package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/fascia/pkg/cache"
	ferrors "github.com/matzehuels/fascia/pkg/errors"
	fio "github.com/matzehuels/fascia/pkg/io"
	"github.com/matzehuels/fascia/pkg/observability"
	"github.com/matzehuels/fascia/pkg/resource"
	"github.com/matzehuels/fascia/pkg/scaffold"
	"github.com/matzehuels/fascia/pkg/tabular"
)

// Runner executes pipeline passes with caching. It holds no per-run
// state, so one Runner may serve several runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.NewDefaultKeyer] and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// built is the cached form of a build.
type built struct {
	Full     *scaffold.Document `json:"full"`
	Filtered *scaffold.Document `json:"filtered"`
}

// Build loads both tables, groups, binds and filters, and writes the full
// and filtered documents. A missing table is a warning and contributes an
// empty list; a malformed table fails the run before anything is written.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run", res.RunID[:8])

	resources, err := r.listResources(ctx, opts.Resources, logger, &res.Warnings)
	if err != nil {
		return nil, err
	}

	nodesHash, err := r.hashInput(opts.NodesPath, "nodes", logger, &res.Warnings)
	if err != nil {
		return nil, err
	}
	edgesHash, err := r.hashInput(opts.EdgesPath, "edges", logger, &res.Warnings)
	if err != nil {
		return nil, err
	}
	rkeys := make([]cache.ResourceKey, len(resources))
	for i, rsc := range resources {
		rkeys[i] = cache.ResourceKey{ID: rsc.ID, Name: rsc.Name, Path: rsc.Path, Type: rsc.Type}
	}
	key := r.Keyer.BuildKey(cache.BuildKeyOpts{
		NodesHash: nodesHash,
		EdgesHash: edgesHash,
		Resources: rkeys,
		Keep:      opts.Keep,
		Precision: opts.Policy.Precision,
		Pairing:   opts.Pairing.Name,
	})

	var out built
	if !opts.Refresh && r.lookup(ctx, key, "scaffold", &out) {
		res.CacheHit = true
		logger.Debug("using cached scaffold")
	} else {
		if out, err = r.build(ctx, opts, resources, logger); err != nil {
			return nil, err
		}
		r.store(ctx, key, "scaffold", out, cache.TTLScaffold)
	}
	res.Full, res.Filtered = out.Full, out.Filtered

	err = r.stage(ctx, logger, observability.StageWrite, func() (int, error) {
		var files []fio.File
		for _, f := range []struct {
			path string
			doc  *scaffold.Document
		}{{opts.FullPath, out.Full}, {opts.FilteredPath, out.Filtered}} {
			if f.path == "" {
				continue
			}
			data, err := fio.MarshalJSON(f.doc)
			if err != nil {
				return 0, ferrors.Wrap(ferrors.ErrCodeInternal, err, "encode %s", f.path)
			}
			files = append(files, fio.File{Path: f.path, Data: data})
		}
		if err := fio.WriteFilesAtomic(files...); err != nil {
			return 0, ferrors.Wrap(ferrors.ErrCodeInvalidPath, err, "write scaffolds")
		}
		return len(files), nil
	})
	if err != nil {
		return nil, err
	}

	res.Stats = Stats{
		Anchors:    len(out.Full.Anchors),
		Wires:      len(out.Full.Wires),
		Components: len(out.Full.Components),
		Resources:  len(resources),
		Bound:      boundCount(out.Full),
		Kept:       min(opts.Keep, len(out.Full.Components)),
		Duration:   time.Since(start),
	}
	logger.Info("built scaffold",
		"anchors", res.Stats.Anchors,
		"wires", res.Stats.Wires,
		"components", res.Stats.Components,
		"cached", res.CacheHit,
		"duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) build(ctx context.Context, opts Options, resources []scaffold.ExternalResource, logger *log.Logger) (built, error) {
	var (
		anchors []scaffold.Anchor
		wires   []scaffold.Wire
		out     built
	)
	err := r.stage(ctx, logger, observability.StageLoad, func() (int, error) {
		var err error
		if anchors, err = loadTable(opts.NodesPath, tabular.LoadAnchors); err != nil {
			return 0, err
		}
		if wires, err = loadTable(opts.EdgesPath, tabular.LoadWires); err != nil {
			return len(anchors), err
		}
		return len(anchors) + len(wires), nil
	})
	if err != nil {
		return out, err
	}

	var doc *scaffold.Document
	_ = r.stage(ctx, logger, observability.StageGroup, func() (int, error) {
		doc = scaffold.Build(anchors, wires, opts.Policy)
		return len(doc.Components), nil
	})
	_ = r.stage(ctx, logger, observability.StageBind, func() (int, error) {
		out.Full = scaffold.BindDocument(doc, resources, opts.Pairing)
		return boundCount(out.Full), nil
	})
	_ = r.stage(ctx, logger, observability.StageFilter, func() (int, error) {
		out.Filtered = scaffold.Filter(out.Full, opts.Keep)
		return len(out.Filtered.Components), nil
	})
	return out, ctx.Err()
}

// loadTable reads one table; an empty path or a missing file yields an
// empty list.
func loadTable[T any](path string, load func(string) ([]T, error)) ([]T, error) {
	if path == "" {
		return []T{}, nil
	}
	rows, err := load(path)
	if ferrors.Is(err, ferrors.ErrCodeFileNotFound) {
		return []T{}, nil
	}
	return rows, err
}

// hashInput hashes a table file for the cache key and records a warning
// when it is missing.
func (r *Runner) hashInput(path, table string, logger *log.Logger, warnings *[]string) (string, error) {
	if path == "" {
		return "", nil
	}
	h, err := cache.HashFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if h == "" {
		msg := fmt.Sprintf("%s file not found at %s", table, path)
		logger.Warn(msg)
		*warnings = append(*warnings, msg)
	}
	return h, nil
}

func (r *Runner) listResources(ctx context.Context, src resource.Source, logger *log.Logger, warnings *[]string) ([]scaffold.ExternalResource, error) {
	if src == nil {
		return nil, nil
	}
	if d, ok := src.(*resource.DirSource); ok && !d.Exists() {
		msg := fmt.Sprintf("resource directory not found at %s", d.Dir)
		logger.Warn(msg)
		*warnings = append(*warnings, msg)
		return nil, nil
	}

	start := time.Now()
	resources, err := src.List(ctx)
	observability.Storage().OnList(ctx, fmt.Sprint(src), len(resources), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	logger.Debug("listed resources", "source", fmt.Sprint(src), "count", len(resources))
	return resources, nil
}

// Filter reads a full scaffold document and writes its filtered view. A
// missing input is fatal.
func (r *Runner) Filter(ctx context.Context, opts FilterOptions) (*scaffold.Document, error) {
	if opts.Keep < 0 {
		return nil, ferrors.New(ferrors.ErrCodeInvalidInput, "keep must not be negative, got %d", opts.Keep)
	}
	logger := r.Logger.With("run", uuid.NewString()[:8])

	var doc, filtered *scaffold.Document
	err := r.stage(ctx, logger, observability.StageLoad, func() (n int, err error) {
		doc, err = fio.ImportJSON(opts.Input)
		if err != nil {
			return 0, err
		}
		return len(doc.Components), nil
	})
	if err != nil {
		return nil, err
	}
	_ = r.stage(ctx, logger, observability.StageFilter, func() (int, error) {
		filtered = scaffold.Filter(doc, opts.Keep)
		return len(filtered.Components), nil
	})
	if err := r.writeOne(ctx, logger, filtered, opts.Output); err != nil {
		return nil, err
	}
	logger.Info("filtered scaffold", "components", len(doc.Components), "kept", len(filtered.Components))
	return filtered, nil
}

// Scale reads a scaffold document, normalizes its anchor coordinates and
// writes the result. A missing input is fatal. A document without anchors
// produces a warning and no output.
func (r *Runner) Scale(ctx context.Context, opts ScaleOptions) (*ScaleResult, error) {
	if err := opts.Normalize.Validate(); err != nil {
		return nil, err
	}
	res := &ScaleResult{RunID: uuid.NewString()}
	logger := r.Logger.With("run", res.RunID[:8])

	raw, err := os.ReadFile(opts.Input)
	if os.IsNotExist(err) {
		return nil, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "scaffold document not found at %s", opts.Input)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.Input, err)
	}

	key := r.Keyer.ScaleKey(cache.Hash(raw), scaleKeyOpts(opts.Normalize))
	var cached scaled
	if !opts.Refresh && r.lookup(ctx, key, "scaled", &cached) {
		res.CacheHit = true
		res.Document, res.Axes = cached.Document, cached.Axes
	} else {
		doc, err := fio.ReadJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.Input, err)
		}
		if len(doc.Anchors) == 0 {
			msg := fmt.Sprintf("no anchors found in %s", opts.Input)
			logger.Warn(msg)
			res.Warnings = append(res.Warnings, msg)
			res.Document = doc
			return res, nil
		}
		err = r.stage(ctx, logger, observability.StageNormalize, func() (int, error) {
			res.Document, res.Axes, err = scaffold.Normalize(doc, opts.Normalize)
			return len(res.Axes), err
		})
		if err != nil {
			return nil, err
		}
		r.store(ctx, key, "scaled", scaled{Document: res.Document, Axes: res.Axes}, cache.TTLScaled)
	}

	for _, s := range res.Axes {
		logger.Debug("observed range", "axis", s.Axis, "min", s.Min, "max", s.Max)
	}
	if err := r.writeOne(ctx, logger, res.Document, opts.Output); err != nil {
		return nil, err
	}
	res.Written = opts.Output != ""
	logger.Info("scaled coordinates", "target", fmt.Sprintf("[%g, %g]", opts.Normalize.Target.Min, opts.Normalize.Target.Max), "cached", res.CacheHit)
	return res, nil
}

type scaled struct {
	Document *scaffold.Document   `json:"document"`
	Axes     []scaffold.AxisStats `json:"axes"`
}

func scaleKeyOpts(o scaffold.NormalizeOptions) cache.ScaleKeyOpts {
	k := cache.ScaleKeyOpts{Min: o.Target.Min, Max: o.Target.Max}
	for _, a := range o.Axes {
		k.Axes = append(k.Axes, string(a))
	}
	for _, a := range o.ZeroBase {
		k.ZeroBase = append(k.ZeroBase, string(a))
	}
	return k
}

func (r *Runner) writeOne(ctx context.Context, logger *log.Logger, doc *scaffold.Document, path string) error {
	if path == "" {
		return nil
	}
	return r.stage(ctx, logger, observability.StageWrite, func() (int, error) {
		if err := fio.ExportJSON(doc, path); err != nil {
			return 0, ferrors.Wrap(ferrors.ErrCodeInvalidPath, err, "write %s", path)
		}
		return 1, nil
	})
}

// stage runs fn between the pipeline hooks. Cancellation is checked
// before the stage starts.
func (r *Runner) stage(ctx context.Context, logger *log.Logger, name string, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name)
	start := time.Now()
	n, err := fn()
	elapsed := time.Since(start)
	hooks.OnStageComplete(ctx, name, n, elapsed, err)
	if err == nil {
		logger.Debug("stage complete", "stage", name, "count", n, "duration", elapsed)
	}
	return err
}

// lookup decodes a cached value into v and reports whether it was usable.
func (r *Runner) lookup(ctx context.Context, key, keyType string, v any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "error", err)
	}
	if err != nil || !hit || json.Unmarshal(data, v) != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

func (r *Runner) store(ctx context.Context, key, keyType string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func boundCount(doc *scaffold.Document) int {
	n := 0
	for _, c := range doc.Components {
		if c.Background != "" {
			n++
		}
	}
	return n
}

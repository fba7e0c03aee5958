package scaffold

import (
	"fmt"
	"math"
	"slices"

	ferrors "github.com/matzehuels/fascia/pkg/errors"
)

// Axis names one coordinate of an anchor layout.
type Axis string

// Layout axes.
const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

var allAxes = []Axis{AxisX, AxisY, AxisZ}

// ParseAxis validates an axis name.
func ParseAxis(s string) (Axis, error) {
	a := Axis(s)
	if !slices.Contains(allAxes, a) {
		return "", ferrors.New(ferrors.ErrCodeInvalidInput, "unknown axis %q (want x, y or z)", s)
	}
	return a, nil
}

// Range is a closed numeric interval.
type Range struct {
	Min float64 `toml:"min" json:"min"`
	Max float64 `toml:"max" json:"max"`
}

// Mid returns the midpoint of r.
func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// Contains reports whether v lies in r, bounds included.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// ScaleValue maps v linearly from the observed range [lo, hi] onto target.
// A degenerate observed range maps every value to the target midpoint. The
// observed bounds map exactly onto the target bounds and no result leaves
// target.
func ScaleValue(v, lo, hi float64, target Range) float64 {
	switch {
	case hi == lo:
		return target.Mid()
	case v <= lo:
		return target.Min
	case v >= hi:
		return target.Max
	}
	scaled := target.Min + (v-lo)*(target.Max-target.Min)/(hi-lo)
	return min(max(scaled, target.Min), target.Max)
}

// NormalizeOptions configures one normalization run.
type NormalizeOptions struct {
	// Axes are rescaled onto Target.
	Axes []Axis
	// Target is the output range of every rescaled axis.
	Target Range
	// ZeroBase axes are shifted so their observed minimum becomes 0.
	ZeroBase []Axis
}

// Validate checks that the options describe a well-formed transform.
func (o NormalizeOptions) Validate() error {
	if !(o.Target.Min < o.Target.Max) {
		return ferrors.New(ferrors.ErrCodeInvalidRange, "target range [%g, %g] is empty", o.Target.Min, o.Target.Max)
	}
	for _, a := range append(slices.Clone(o.Axes), o.ZeroBase...) {
		if _, err := ParseAxis(string(a)); err != nil {
			return err
		}
	}
	for _, a := range o.ZeroBase {
		if slices.Contains(o.Axes, a) {
			return ferrors.New(ferrors.ErrCodeInvalidInput, "axis %s cannot be both scaled and zero-based", a)
		}
	}
	return nil
}

// AxisStats reports the observed range of one axis before normalization.
type AxisStats struct {
	Axis  Axis
	Min   float64
	Max   float64
	Count int
}

func (s AxisStats) String() string {
	return fmt.Sprintf("%s range: [%g, %g]", s.Axis, s.Min, s.Max)
}

// Normalize returns a copy of doc whose anchor coordinates are rescaled per
// opts. Wires and components are copied unchanged. Anchors lacking an axis
// keep it absent; axes observed on no anchor are skipped and do not appear
// in the returned stats.
func Normalize(doc *Document, opts NormalizeOptions) (*Document, []AxisStats, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	out := doc.Clone()

	var stats []AxisStats
	for _, a := range opts.Axes {
		s, ok := observe(out.Anchors, a)
		if !ok {
			continue
		}
		stats = append(stats, s)
		rewrite(out.Anchors, a, func(v float64) float64 {
			return ScaleValue(v, s.Min, s.Max, opts.Target)
		})
	}
	for _, a := range opts.ZeroBase {
		s, ok := observe(out.Anchors, a)
		if !ok {
			continue
		}
		stats = append(stats, s)
		rewrite(out.Anchors, a, func(v float64) float64 { return v - s.Min })
	}
	return out, stats, nil
}

func observe(anchors []Anchor, a Axis) (AxisStats, bool) {
	s := AxisStats{Axis: a, Min: math.Inf(1), Max: math.Inf(-1)}
	for _, an := range anchors {
		if v, ok := an.Layout.Get(a); ok {
			s.Min = min(s.Min, v)
			s.Max = max(s.Max, v)
			s.Count++
		}
	}
	return s, s.Count > 0
}

func rewrite(anchors []Anchor, a Axis, fn func(float64) float64) {
	for i := range anchors {
		if v, ok := anchors[i].Layout.Get(a); ok {
			anchors[i].Layout.set(a, fn(v))
		}
	}
}

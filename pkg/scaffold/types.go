package scaffold

import "slices"

// Identifier conventions shared by the loader and the grouping pass.
const (
	// WirePrefix is prepended to the source row id to form a wire id.
	WirePrefix = "w_"

	// ComponentPrefix is prepended to the formatted layer key to form a component id.
	ComponentPrefix = "comp_"

	// DefaultComponentID and DefaultComponentName identify the synthetic
	// component produced by [Filter].
	DefaultComponentID   = "Default"
	DefaultComponentName = "Default"

	// ResourceTypeImage is the only external resource type produced today.
	ResourceTypeImage = "image"
)

// Point is an anchor position. Absent axes are nil and are left untouched
// by [Normalize].
type Point struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	Z *float64 `json:"z,omitempty"`
}

// NewPoint returns a point with all three axes set.
func NewPoint(x, y, z float64) *Point {
	return &Point{X: &x, Y: &y, Z: &z}
}

// Get returns the value of axis a and whether it is present.
func (p *Point) Get(a Axis) (float64, bool) {
	if p == nil {
		return 0, false
	}
	var v *float64
	switch a {
	case AxisX:
		v = p.X
	case AxisY:
		v = p.Y
	case AxisZ:
		v = p.Z
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// set writes axis a. The point must be non-nil.
func (p *Point) set(a Axis, v float64) {
	switch a {
	case AxisX:
		p.X = &v
	case AxisY:
		p.Y = &v
	case AxisZ:
		p.Z = &v
	}
}

func (p *Point) clone() *Point {
	if p == nil {
		return nil
	}
	out := &Point{}
	for _, a := range allAxes {
		if v, ok := p.Get(a); ok {
			out.set(a, v)
		}
	}
	return out
}

// Anchor is a named point in layout space.
type Anchor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Layout *Point `json:"layout,omitempty"`
}

// Wire connects two anchors by id. Endpoints are not required to exist.
type Wire struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Component groups anchors and wires that share a layer.
type Component struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Anchors    []string `json:"anchors"`
	Wires      []string `json:"wires"`
	Background string   `json:"background,omitempty"`
}

func (c Component) clone() Component {
	c.Anchors = cloneIDs(c.Anchors)
	c.Wires = cloneIDs(c.Wires)
	return c
}

// ExternalResource is an asset produced outside the pipeline, referenced by
// id from [Component.Background].
type ExternalResource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// Document is the unit of persistence handed to the visualization tool.
type Document struct {
	Anchors    []Anchor           `json:"anchors"`
	Wires      []Wire             `json:"wires"`
	Components []Component        `json:"components"`
	External   []ExternalResource `json:"external,omitempty"`
}

// Clone returns a deep copy of d. Nil slices become empty slices so the
// copy always serializes with all three required arrays.
func (d *Document) Clone() *Document {
	out := &Document{
		Anchors:    make([]Anchor, len(d.Anchors)),
		Wires:      slices.Clone(d.Wires),
		Components: make([]Component, len(d.Components)),
		External:   slices.Clone(d.External),
	}
	if out.Wires == nil {
		out.Wires = []Wire{}
	}
	for i, a := range d.Anchors {
		a.Layout = a.Layout.clone()
		out.Anchors[i] = a
	}
	for i, c := range d.Components {
		out.Components[i] = c.clone()
	}
	return out
}

// Component returns the component with the given id.
func (d *Document) Component(id string) (Component, bool) {
	for _, c := range d.Components {
		if c.ID == id {
			return c, true
		}
	}
	return Component{}, false
}

// AnchorIDs returns anchor ids in document order.
func (d *Document) AnchorIDs() []string {
	ids := make([]string, len(d.Anchors))
	for i, a := range d.Anchors {
		ids[i] = a.ID
	}
	return ids
}

// WireIDs returns wire ids in document order.
func (d *Document) WireIDs() []string {
	ids := make([]string, len(d.Wires))
	for i, w := range d.Wires {
		ids[i] = w.ID
	}
	return ids
}

// cloneIDs copies an id list, never returning nil.
func cloneIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}

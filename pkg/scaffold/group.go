package scaffold

import (
	"cmp"
	"slices"
)

// layer accumulates the members of one layer key in input order.
type layer struct {
	key     float64
	anchors []string
	wires   []string
}

// Group buckets anchors by layer key and returns one component per key,
// ordered by ascending key.
//
// A wire joins a component only when both endpoints resolve to anchors with
// the same key. Wires with an unknown endpoint, or endpoints on different
// layers, join no component. Member order within a component follows input
// order. When an anchor id repeats, the last row decides the key used for
// wire lookups.
func Group(anchors []Anchor, wires []Wire, policy KeyPolicy) []Component {
	layers := make(map[float64]*layer)
	keyOf := make(map[string]float64, len(anchors))

	for _, a := range anchors {
		k, ok := policy.KeyOf(a)
		if !ok {
			continue
		}
		keyOf[a.ID] = k
		l, ok := layers[k]
		if !ok {
			l = &layer{key: k}
			layers[k] = l
		}
		l.anchors = append(l.anchors, a.ID)
	}

	for _, w := range wires {
		src, ok := keyOf[w.Source]
		if !ok {
			continue
		}
		dst, ok := keyOf[w.Target]
		if !ok || src != dst {
			continue
		}
		layers[src].wires = append(layers[src].wires, w.ID)
	}

	sorted := make([]*layer, 0, len(layers))
	for _, l := range layers {
		sorted = append(sorted, l)
	}
	slices.SortFunc(sorted, func(a, b *layer) int { return cmp.Compare(a.key, b.key) })

	components := make([]Component, 0, len(sorted))
	for _, l := range sorted {
		if len(l.anchors) == 0 && len(l.wires) == 0 {
			continue
		}
		components = append(components, Component{
			ID:      ComponentID(l.key),
			Name:    ComponentName(l.key),
			Anchors: cloneIDs(l.anchors),
			Wires:   cloneIDs(l.wires),
		})
	}
	return components
}

// Build groups anchors and wires into a full scaffold document. The anchor
// and wire lists are copied into the document unchanged.
func Build(anchors []Anchor, wires []Wire, policy KeyPolicy) *Document {
	doc := &Document{
		Anchors:    slices.Clone(anchors),
		Wires:      slices.Clone(wires),
		Components: Group(anchors, wires, policy),
	}
	if doc.Anchors == nil {
		doc.Anchors = []Anchor{}
	}
	if doc.Wires == nil {
		doc.Wires = []Wire{}
	}
	return doc
}

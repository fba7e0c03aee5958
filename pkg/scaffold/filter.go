package scaffold

import (
	"slices"
)

// DefaultKeep is the number of components [Filter] keeps verbatim when
// callers have no preference.
const DefaultKeep = 3

// Filter returns a reduced copy of doc. The first keep components are kept
// verbatim; every anchor and wire referenced by a later component, or by no
// component at all, is moved into one synthetic Default component with
// sorted member lists. Default is omitted when nothing remains.
//
// Every anchor and wire id of the flat lists ends up in exactly one of the
// kept components or Default. Filter is idempotent for a fixed keep.
func Filter(doc *Document, keep int) *Document {
	out := doc.Clone()
	keep = max(0, min(keep, len(out.Components)))
	kept, rest := out.Components[:keep], out.Components[keep:]

	keptAnchors, keptWires := members(kept)
	allAnchors, allWires := members(out.Components)

	remAnchors := make(map[string]bool)
	remWires := make(map[string]bool)
	for _, c := range rest {
		addMissing(remAnchors, c.Anchors, keptAnchors)
		addMissing(remWires, c.Wires, keptWires)
	}
	for _, a := range out.Anchors {
		if !allAnchors[a.ID] {
			remAnchors[a.ID] = true
		}
	}
	for _, w := range out.Wires {
		if !allWires[w.ID] {
			remWires[w.ID] = true
		}
	}

	components := slices.Clip(kept)
	if len(remAnchors) > 0 || len(remWires) > 0 {
		components = append(components, Component{
			ID:      DefaultComponentID,
			Name:    DefaultComponentName,
			Anchors: sortedKeys(remAnchors),
			Wires:   sortedKeys(remWires),
		})
	}
	out.Components = components
	return out
}

// members collects the anchor and wire ids referenced by components.
func members(components []Component) (anchors, wires map[string]bool) {
	anchors = make(map[string]bool)
	wires = make(map[string]bool)
	for _, c := range components {
		for _, id := range c.Anchors {
			anchors[id] = true
		}
		for _, id := range c.Wires {
			wires[id] = true
		}
	}
	return anchors, wires
}

func addMissing(dst map[string]bool, ids []string, exclude map[string]bool) {
	for _, id := range ids {
		if !exclude[id] {
			dst[id] = true
		}
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

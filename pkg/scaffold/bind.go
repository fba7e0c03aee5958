package scaffold

import (
	"fmt"
	"slices"
)

// Pairing orders resource ids before they are matched to components by
// position: the resource at ordered position i becomes the background of
// component i.
type Pairing struct {
	Name  string
	order func(ids []string) []string
}

var (
	// PairReversed binds the last extracted resource to the first
	// (lowest-key) component. The source slices run top to bottom while
	// layer keys grow upward, so this is the default.
	PairReversed = Pairing{Name: "reversed", order: func(ids []string) []string {
		out := slices.Clone(ids)
		slices.Reverse(out)
		return out
	}}

	// PairInOrder binds resources to components in extraction order.
	PairInOrder = Pairing{Name: "in-order", order: slices.Clone[[]string]}
)

// Pairings lists the strategies accepted by [ParsePairing].
var Pairings = []Pairing{PairReversed, PairInOrder}

// ParsePairing returns the pairing strategy with the given name.
func ParsePairing(name string) (Pairing, error) {
	for _, p := range Pairings {
		if p.Name == name {
			return p, nil
		}
	}
	return Pairing{}, fmt.Errorf("unknown pairing %q", name)
}

// Order returns the resource ids in binding order. A zero Pairing uses
// [PairReversed].
func (p Pairing) Order(ids []string) []string {
	if p.order == nil {
		return PairReversed.order(ids)
	}
	return p.order(ids)
}

// Bind returns a copy of components with backgrounds assigned from
// resources. Component i receives the i-th id of the pairing order for
// i < min(len(components), len(resources)); every other component has no
// background. The number of bound components is returned alongside.
func Bind(components []Component, resources []ExternalResource, p Pairing) ([]Component, int) {
	ids := make([]string, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}
	ordered := p.Order(ids)

	out := make([]Component, len(components))
	bound := 0
	for i, c := range components {
		c = c.clone()
		c.Background = ""
		if i < len(ordered) {
			c.Background = ordered[i]
			bound++
		}
		out[i] = c
	}
	return out, bound
}

// BindDocument returns a copy of doc with component backgrounds bound from
// resources. The resource list is attached as the document's external list
// only when at least one component received a background.
func BindDocument(doc *Document, resources []ExternalResource, p Pairing) *Document {
	out := doc.Clone()
	var bound int
	out.Components, bound = Bind(out.Components, resources, p)
	out.External = nil
	if bound > 0 {
		out.External = slices.Clone(resources)
	}
	return out
}

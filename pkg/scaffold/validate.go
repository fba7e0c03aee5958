package scaffold

import "fmt"

// IssueKind classifies a referential problem found by [Validate].
type IssueKind string

// Issue kinds reported by [Validate].
const (
	IssueDuplicateAnchor   IssueKind = "duplicate-anchor"
	IssueDuplicateWire     IssueKind = "duplicate-wire"
	IssueDanglingEndpoint  IssueKind = "dangling-endpoint"
	IssueCrossLayerWire    IssueKind = "cross-layer-wire"
	IssueMissingLayout     IssueKind = "missing-layout"
	IssueUnknownMember     IssueKind = "unknown-member"
	IssueUnknownBackground IssueKind = "unknown-background"
)

// Issue is one finding of [Validate].
type Issue struct {
	Kind IssueKind
	ID   string
	Msg  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Kind, i.ID, i.Msg)
}

// Validate checks referential integrity of doc and returns every problem
// found, in document order. It never modifies doc; grouping and filtering
// tolerate all of these conditions.
func Validate(doc *Document, policy KeyPolicy) []Issue {
	var issues []Issue
	report := func(kind IssueKind, id, format string, args ...any) {
		issues = append(issues, Issue{Kind: kind, ID: id, Msg: fmt.Sprintf(format, args...)})
	}

	anchors := make(map[string]Anchor, len(doc.Anchors))
	for _, a := range doc.Anchors {
		if _, dup := anchors[a.ID]; dup {
			report(IssueDuplicateAnchor, a.ID, "anchor id appears more than once")
		}
		anchors[a.ID] = a
		if _, ok := a.Layout.Get(AxisZ); !ok {
			report(IssueMissingLayout, a.ID, "anchor has no z coordinate")
		}
	}

	wires := make(map[string]bool, len(doc.Wires))
	for _, w := range doc.Wires {
		if wires[w.ID] {
			report(IssueDuplicateWire, w.ID, "wire id appears more than once")
		}
		wires[w.ID] = true

		src, srcOK := anchors[w.Source]
		dst, dstOK := anchors[w.Target]
		if !srcOK {
			report(IssueDanglingEndpoint, w.ID, "source %q is not a known anchor", w.Source)
		}
		if !dstOK {
			report(IssueDanglingEndpoint, w.ID, "target %q is not a known anchor", w.Target)
		}
		if !srcOK || !dstOK {
			continue
		}
		sk, sok := policy.KeyOf(src)
		tk, tok := policy.KeyOf(dst)
		if sok && tok && sk != tk {
			report(IssueCrossLayerWire, w.ID, "connects z=%s to z=%s", FormatKey(sk), FormatKey(tk))
		}
	}

	external := make(map[string]bool, len(doc.External))
	for _, r := range doc.External {
		external[r.ID] = true
	}
	for _, c := range doc.Components {
		for _, id := range c.Anchors {
			if _, ok := anchors[id]; !ok {
				report(IssueUnknownMember, c.ID, "anchor %q is not in the anchor list", id)
			}
		}
		for _, id := range c.Wires {
			if !wires[id] {
				report(IssueUnknownMember, c.ID, "wire %q is not in the wire list", id)
			}
		}
		if c.Background != "" && !external[c.Background] {
			report(IssueUnknownBackground, c.ID, "background %q is not an external resource", c.Background)
		}
	}
	return issues
}

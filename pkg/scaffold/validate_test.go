package scaffold

import "testing"

func TestValidate(t *testing.T) {
	doc := fixture()
	doc.Anchors = append(doc.Anchors, anchorAt("a0", 9, 9, 0), Anchor{ID: "floating"})
	doc.Wires = append(doc.Wires, wire("0", "a0", "b0"))
	doc.Components[0].Background = "slice_099"
	doc.Components[1].Anchors = append(doc.Components[1].Anchors, "phantom")

	counts := make(map[IssueKind]int)
	for _, is := range Validate(doc, ExactKeys) {
		counts[is.Kind]++
	}

	want := map[IssueKind]int{
		IssueDuplicateAnchor:   1,
		IssueDuplicateWire:     1,
		IssueDanglingEndpoint:  1,
		IssueCrossLayerWire:    1,
		IssueMissingLayout:     1,
		IssueUnknownMember:     1,
		IssueUnknownBackground: 1,
	}
	for kind, n := range want {
		if counts[kind] != n {
			t.Errorf("%s: %d issues, want %d", kind, counts[kind], n)
		}
	}
}

func TestValidateClean(t *testing.T) {
	doc := Build(
		[]Anchor{anchorAt("a", 0, 0, 1), anchorAt("b", 0, 0, 1)},
		[]Wire{wire("1", "a", "b")},
		ExactKeys,
	)
	if issues := Validate(doc, ExactKeys); len(issues) != 0 {
		t.Errorf("clean document reported issues: %v", issues)
	}
}

func TestValidateRespectsKeyPolicy(t *testing.T) {
	doc := Build(
		[]Anchor{anchorAt("a", 0, 0, 1.0001), anchorAt("b", 0, 0, 1)},
		[]Wire{wire("1", "a", "b")},
		ExactKeys,
	)
	if n := len(Validate(doc, ExactKeys)); n != 1 {
		t.Errorf("exact keys: %d issues, want 1 cross-layer wire", n)
	}
	if n := len(Validate(doc, KeyPolicy{Precision: 2})); n != 0 {
		t.Errorf("rounded keys: %d issues, want 0", n)
	}
}

package scaffold_test

import (
	"fmt"

	"github.com/matzehuels/fascia/pkg/scaffold"
)

func ExampleBuild() {
	anchors := []scaffold.Anchor{
		{ID: "a1", Name: "a1", Layout: scaffold.NewPoint(0, 0, 0)},
		{ID: "a2", Name: "a2", Layout: scaffold.NewPoint(1, 0, 0)},
		{ID: "a3", Name: "a3", Layout: scaffold.NewPoint(0, 1, 5)},
	}
	wires := []scaffold.Wire{
		{ID: "w_w1", Source: "a1", Target: "a2"},
		{ID: "w_w2", Source: "a2", Target: "a3"}, // cross-layer
	}

	doc := scaffold.Build(anchors, wires, scaffold.ExactKeys)
	for _, c := range doc.Components {
		fmt.Println(c.ID, c.Anchors, c.Wires)
	}
	fmt.Println("wires:", len(doc.Wires))
	// Output:
	// comp_0.0 [a1 a2] [w_w1]
	// comp_5.0 [a3] []
	// wires: 2
}

func ExampleFilter() {
	var anchors []scaffold.Anchor
	for i, z := range []float64{0, 1, 2, 3, 4} {
		id := fmt.Sprintf("n%d", i)
		anchors = append(anchors, scaffold.Anchor{ID: id, Layout: scaffold.NewPoint(0, 0, z)})
	}
	doc := scaffold.Build(anchors, nil, scaffold.ExactKeys)

	filtered := scaffold.Filter(doc, 3)
	for _, c := range filtered.Components {
		fmt.Println(c.ID, c.Anchors)
	}
	// Output:
	// comp_0.0 [n0]
	// comp_1.0 [n1]
	// comp_2.0 [n2]
	// Default [n3 n4]
}

func ExampleBind() {
	components := scaffold.Group([]scaffold.Anchor{
		{ID: "low", Layout: scaffold.NewPoint(0, 0, 0)},
		{ID: "high", Layout: scaffold.NewPoint(0, 0, 10)},
	}, nil, scaffold.ExactKeys)
	images := []scaffold.ExternalResource{
		{ID: "slice_001", Type: scaffold.ResourceTypeImage},
		{ID: "slice_003", Type: scaffold.ResourceTypeImage},
	}

	bound, _ := scaffold.Bind(components, images, scaffold.PairReversed)
	for _, c := range bound {
		fmt.Println(c.ID, "->", c.Background)
	}
	// Output:
	// comp_0.0 -> slice_003
	// comp_10.0 -> slice_001
}

func ExampleNormalize() {
	doc := scaffold.Build([]scaffold.Anchor{
		{ID: "a", Layout: scaffold.NewPoint(10, 0, 7)},
		{ID: "b", Layout: scaffold.NewPoint(30, 50, 9)},
	}, nil, scaffold.ExactKeys)

	out, _, _ := scaffold.Normalize(doc, scaffold.NormalizeOptions{
		Axes:     []scaffold.Axis{scaffold.AxisX, scaffold.AxisY},
		Target:   scaffold.Range{Min: -100, Max: 100},
		ZeroBase: []scaffold.Axis{scaffold.AxisZ},
	})
	for _, a := range out.Anchors {
		fmt.Println(a.ID, *a.Layout.X, *a.Layout.Y, *a.Layout.Z)
	}
	// Output:
	// a -100 -100 0
	// b 100 100 2
}

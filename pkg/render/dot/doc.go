// Package dot previews scaffold documents with Graphviz.
//
// [FromScaffold] turns a document into DOT source: one cluster per
// component labelled with its name and background, anchors as nodes and
// wires as edges. Wires that belong to no component are dashed, and wire
// endpoints that name no anchor appear as dotted placeholder nodes, so
// incomplete source data stays visible instead of silently disappearing.
//
//	src := dot.FromScaffold(doc, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//
// With [Options.Positioned] the neato engine pins every anchor at its x/y
// layout coordinates, which is handy for checking a normalization run.
//
// Rendering uses [github.com/goccy/go-graphviz], so no Graphviz
// installation is needed.
package dot

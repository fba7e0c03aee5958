// Package scaffold builds layered scene graphs ("scaffolds") from flat
// anchor and wire lists.
//
// # Overview
//
// A scaffold bundles anchors (points in 3-D layout space), wires
// (connections between two anchors), components (groups of anchors and wires
// that share a layer) and, optionally, external resources such as per-layer
// background images. The package implements the transformations between
// these forms; file formats live in pkg/tabular (input tables) and pkg/io
// (JSON documents).
//
// # Passes
//
// Every pass is a pure function of its inputs and returns a new value:
//
//   - [Group] buckets anchors by layer key and attaches wires whose two
//     endpoints share a layer. [Build] wraps the result in a [Document].
//   - [Bind] pairs components with external resources using a [Pairing].
//   - [Filter] keeps the first K components verbatim and collapses every
//     other anchor and wire into one synthetic "Default" component.
//   - [Normalize] rescales anchor coordinates into a target range.
//   - [Validate] reports referential problems without changing anything.
//
// # Layer Keys
//
// The layer key of an anchor is its z coordinate. [KeyPolicy] controls
// equality: the default [ExactKeys] policy groups only bit-identical values,
// while a non-negative precision rounds z to that many decimal places first.
//
//	doc := scaffold.Build(anchors, wires, scaffold.ExactKeys)
//	full := scaffold.BindDocument(doc, images, scaffold.PairReversed)
//	filtered := scaffold.Filter(doc, 3)
//
// # Tolerance
//
// Wires that reference unknown anchors, or connect anchors on different
// layers, stay in the flat wire list but belong to no component. [Filter]
// rescues them into the Default component.
package scaffold

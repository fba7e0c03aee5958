// Package render holds the scaffold preview renderers.
//
// The [dot] subpackage draws a scaffold document as a Graphviz diagram with
// one cluster per component.
//
// [dot]: github.com/matzehuels/fascia/pkg/render/dot
package render

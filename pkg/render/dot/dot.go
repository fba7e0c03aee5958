package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/fascia/pkg/scaffold"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds layout coordinates to node labels.
	Detailed bool
	// Positioned pins anchors at their x/y coordinates using neato.
	Positioned bool
	// Scale multiplies coordinates in positioned mode. Zero means 1.
	Scale float64
}

// FromScaffold converts doc to Graphviz DOT source. An anchor listed by
// several components is drawn in the first.
func FromScaffold(doc *scaffold.Document, opts Options) string {
	anchors := make(map[string]scaffold.Anchor, len(doc.Anchors))
	for _, a := range doc.Anchors {
		anchors[a.ID] = a
	}
	grouped := make(map[string]bool)
	placed := make(map[string]bool)

	var buf bytes.Buffer
	buf.WriteString("digraph scaffold {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Positioned {
		buf.WriteString("  layout=neato;\n")
	} else {
		buf.WriteString("  rankdir=LR;\n")
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")

	for i, c := range doc.Components {
		for _, id := range c.Wires {
			grouped[id] = true
		}
		fmt.Fprintf(&buf, "\n  subgraph \"cluster_%d\" {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", clusterLabel(c))
		buf.WriteString("    style=\"rounded\";\n")
		for _, id := range c.Anchors {
			if placed[id] {
				continue
			}
			placed[id] = true
			a, ok := anchors[id]
			if !ok {
				fmt.Fprintf(&buf, "    %q [style=dotted];\n", id)
				continue
			}
			fmt.Fprintf(&buf, "    %q [%s];\n", id, strings.Join(nodeAttrs(a, opts), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, a := range doc.Anchors {
		if !placed[a.ID] {
			placed[a.ID] = true
			fmt.Fprintf(&buf, "  %q [%s];\n", a.ID, strings.Join(nodeAttrs(a, opts), ", "))
		}
	}
	for _, w := range doc.Wires {
		for _, id := range []string{w.Source, w.Target} {
			if !placed[id] {
				placed[id] = true
				fmt.Fprintf(&buf, "  %q [style=dotted];\n", id)
			}
		}
	}

	buf.WriteString("\n")
	for _, w := range doc.Wires {
		attrs := []string{fmt.Sprintf("tooltip=%q", w.ID)}
		if !grouped[w.ID] {
			attrs = append(attrs, "style=dashed", "color=grey40")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", w.Source, w.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func clusterLabel(c scaffold.Component) string {
	if c.Background == "" {
		return c.Name
	}
	return c.Name + " (" + c.Background + ")"
}

func nodeAttrs(a scaffold.Anchor, opts Options) []string {
	label := a.Name
	if label == "" {
		label = a.ID
	}
	if opts.Detailed {
		label += "\n" + fmtPoint(a.Layout)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	if opts.Positioned {
		x, okX := a.Layout.Get(scaffold.AxisX)
		y, okY := a.Layout.Get(scaffold.AxisY)
		if okX && okY {
			scale := opts.Scale
			if scale == 0 {
				scale = 1
			}
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(x*scale), fmtFloat(y*scale)))
		}
	}
	return attrs
}

func fmtPoint(p *scaffold.Point) string {
	var parts []string
	for _, axis := range []scaffold.Axis{scaffold.AxisX, scaffold.AxisY, scaffold.AxisZ} {
		if v, ok := p.Get(axis); ok {
			parts = append(parts, fmt.Sprintf("%s=%s", axis, fmtFloat(v)))
		}
	}
	return strings.Join(parts, " ")
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag with one whose viewBox starts
// at the origin and whose width and height match it.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

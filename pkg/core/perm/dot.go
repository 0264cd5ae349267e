package perm

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// edgeColors cycles through a small palette so generators stay distinguishable.
var edgeColors = []string{"#1f77b4", "#d62728", "#2ca02c", "#9467bd", "#ff7f0e", "#8c564b"}

// ToDOT returns a Graphviz DOT representation of the cycle structure of the
// given permutations drawn over their shared labels.
//
// Every label is a node. Each permutation contributes one edge per moved
// label, from the label to its image, colored per permutation and tagged
// g1, g2, ... in argument order. Fixed points are drawn without edges.
//
// Example:
//
//	r := perm.MustParseCycles("(A1 B1 A2 B2)", labels)
//	dot := perm.ToDOT(r)
//	// Use 'dot' command or RenderSVG to visualize
func ToDOT(perms ...*Permutation) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Permutation {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, shape=circle, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowsize=0.7];\n\n")

	if len(perms) > 0 {
		for _, l := range perms[0].labels {
			fmt.Fprintf(&buf, "  %q;\n", l)
		}
		buf.WriteString("\n")
	}

	for gi, p := range perms {
		color := edgeColors[gi%len(edgeColors)]
		for i, l := range p.labels {
			if p.image[i] == i {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [color=%q, label=\"g%d\", fontcolor=%q];\n",
				l, p.labels[p.image[i]], color, gi+1, color)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the cycle structure of perms as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses Graphviz to
// render it to SVG format. Errors are returned if Graphviz cannot initialize,
// the DOT is malformed, or rendering fails.
func RenderSVG(ctx context.Context, perms ...*Permutation) ([]byte, error) {
	dot := ToDOT(perms...)

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
	return buf.Bytes(), nil
}

package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/grid"
)

// DOTOptions configures DOT output.
type DOTOptions struct {
	// Scale is the distance in inches between adjacent grid cells.
	// Zero means 1.
	Scale float64

	// Footprints adds the footprint id as a second label line.
	Footprints bool
}

// ToDOT converts a layout to a Graphviz graph. Every room is a node pinned
// to its grid cell ("x,y!"), so the result must be laid out with neato.
// An edge joins two rooms only when their cells happen to be adjacent on the
// grid. Edges are incidental adjacency, not the anchor a room grew from.
func ToDOT(l dungeon.Layout, opts DOTOptions) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=10, width=0.8, height=0.5, fixedsize=true];\n")
	buf.WriteString("\n")

	for _, r := range l.Rooms {
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(r, opts.Footprints)),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(float64(r.Pos.X)*scale), fmtCoord(float64(r.Pos.Y)*scale)),
		}
		switch {
		case r.ID == 0:
			attrs = append(attrs, "fillcolor=gold", "penwidth=2")
		case r.Footprint == "":
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(r), strings.Join(attrs, ", "))
	}

	occupied := make(map[grid.Pos]dungeon.Room, len(l.Rooms))
	for _, r := range l.Rooms {
		occupied[r.Pos] = r
	}
	var edges []string
	for _, r := range l.Rooms {
		// Right and up neighbours only, so each pair appears once.
		for _, d := range []grid.Dir{grid.Right, grid.Up} {
			if n, ok := occupied[r.Pos.Add(d)]; ok {
				edges = append(edges, fmt.Sprintf("  %q -- %q;\n", nodeID(r), nodeID(n)))
			}
		}
	}
	if len(edges) > 0 {
		buf.WriteString("\n")
		for _, e := range edges {
			buf.WriteString(e)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(r dungeon.Room) string {
	return "r" + strconv.Itoa(r.ID)
}

func fmtLabel(r dungeon.Room, footprints bool) string {
	if !footprints || r.Footprint == "" {
		return r.Label
	}
	return r.Label + "\n" + string(r.Footprint)
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG lays out a DOT graph with neato and renders it to SVG.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

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

// normalizeViewBox replaces Graphviz's svg element with one whose viewBox
// starts at the origin and whose size matches the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

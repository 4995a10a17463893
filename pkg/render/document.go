package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/strategos/pkg/shape"
)

// Default frame of a full SVG document. Larger diagrams grow the frame.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// margin is the room kept around the outermost node.
const margin = 50.0

// Document is a composed diagram: one fragment per node, then one per edge.
type Document struct {
	Nodes []string `json:"nodes"`
	Edges []string `json:"edges"`

	// Width and Height bound the drawn nodes, labels included.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Fragments returns all fragments, nodes first.
func (d *Document) Fragments() []string {
	out := make([]string, 0, len(d.Nodes)+len(d.Edges))
	out = append(out, d.Nodes...)
	return append(out, d.Edges...)
}

// Body returns the fragments joined by newlines.
func (d *Document) Body() string {
	return strings.Join(d.Fragments(), "\n")
}

func (d *Document) extend(a shape.Attrs, spacing float64) {
	size := a.Size
	if size <= 0 {
		size = 10
	}
	pad := margin
	if spacing > 0 {
		pad = spacing / 2
	}
	d.Width = max(d.Width, a.X+2*size+pad)
	d.Height = max(d.Height, a.Y+size+pad)
}

// SVGOption configures SVG.
type SVGOption func(*svgOptions)

type svgOptions struct {
	title         string
	width, height float64
}

// WithTitle sets the document <title>.
func WithTitle(t string) SVGOption { return func(o *svgOptions) { o.title = t } }

// WithFrame sets the minimum frame size.
func WithFrame(w, h float64) SVGOption {
	return func(o *svgOptions) { o.width, o.height = w, h }
}

// SVG wraps the body in a standalone SVG document with the arrowhead marker
// edges refer to. The frame is at least 800x600 and grows to fit the nodes.
func (d *Document) SVG(opts ...SVGOption) []byte {
	o := svgOptions{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&o)
	}
	w, h := max(o.width, d.Width), max(o.height, d.Height)

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n", w, h, w, h)
	if o.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(o.title))
	}
	writeDefs(&buf)
	if body := d.Body(); body != "" {
		buf.WriteString(body)
		buf.WriteByte('\n')
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="%s" markerWidth="10" markerHeight="7" refX="10" refY="3.5" orient="auto">`+"\n", shape.ArrowheadID)
	buf.WriteString(`      <polygon points="0 0, 10 3.5, 0 7" fill="#333" />` + "\n")
	buf.WriteString("    </marker>\n")
	buf.WriteString("  </defs>\n")
}

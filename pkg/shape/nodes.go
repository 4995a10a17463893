package shape

import (
	"bytes"
	"fmt"
	"html"
	"math"
)

const (
	fill        = "#f1f1f1"
	stroke      = "#333"
	labelOffset = 20.0
	labelFont   = `font-family="Arial" font-size="14"`
)

// Circle draws a node as a circle of radius Size centered on (X, Y), with
// its label underneath.
type Circle struct{}

// Draw implements Template.
func (Circle) Draw(a Attrs) string {
	r := radius(a)
	var buf bytes.Buffer
	openGroup(&buf, a, r, r)
	fmt.Fprintf(&buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" />`+"\n", r, r, r, fill, stroke)
	writeLabel(&buf, a, r, 2*r)
	buf.WriteString(`</g>`)
	return buf.String()
}

// Rectangle draws a node as a box twice as wide as it is tall.
type Rectangle struct{}

// Draw implements Template.
func (Rectangle) Draw(a Attrs) string {
	h := 2 * radius(a)
	w := 2 * h
	var buf bytes.Buffer
	openGroup(&buf, a, w/2, h/2)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.2f" height="%.2f" fill="%s" stroke="%s" />`+"\n", w, h, fill, stroke)
	writeLabel(&buf, a, w/2, h)
	buf.WriteString(`</g>`)
	return buf.String()
}

// Ellipse draws a node as an ellipse with a horizontal radius of 2*Size.
type Ellipse struct{}

// Draw implements Template.
func (Ellipse) Draw(a Attrs) string {
	ry := radius(a)
	rx := 2 * ry
	var buf bytes.Buffer
	openGroup(&buf, a, rx, ry)
	fmt.Fprintf(&buf, `  <ellipse cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="%s" stroke="%s" />`+"\n", rx, ry, rx, ry, fill, stroke)
	writeLabel(&buf, a, rx, 2*ry)
	buf.WriteString(`</g>`)
	return buf.String()
}

// Diamond draws a node as a square rotated by 45 degrees.
type Diamond struct{}

// Draw implements Template.
func (Diamond) Draw(a Attrs) string {
	return polygon(a, 4, math.Pi/2)
}

// Hexagon draws a node as a regular hexagon with a flat top.
type Hexagon struct{}

// Draw implements Template.
func (Hexagon) Draw(a Attrs) string {
	return polygon(a, 6, 0)
}

// polygon draws a regular polygon with n corners on a circle of radius
// Size, the first corner rotated by phase.
func polygon(a Attrs, n int, phase float64) string {
	r := radius(a)
	var buf bytes.Buffer
	openGroup(&buf, a, r, r)
	buf.WriteString(`  <polygon points="`)
	for i := range n {
		theta := phase + 2*math.Pi*float64(i)/float64(n)
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%.2f,%.2f", r+r*math.Cos(theta), r-r*math.Sin(theta))
	}
	fmt.Fprintf(&buf, `" fill="%s" stroke="%s" />`+"\n", fill, stroke)
	writeLabel(&buf, a, r, 2*r)
	buf.WriteString(`</g>`)
	return buf.String()
}

// radius returns the node size, defaulting non-positive sizes to 10.
func radius(a Attrs) float64 {
	if a.Size <= 0 {
		return 10
	}
	return a.Size
}

// openGroup starts a group translated so that local (cx, cy) lands on the
// node center.
func openGroup(buf *bytes.Buffer, a Attrs, cx, cy float64) {
	fmt.Fprintf(buf, `<g class="node" id="node-%s" transform="translate(%.2f, %.2f)"`,
		html.EscapeString(a.Name), a.X-cx, a.Y-cy)
	if a.Dependent {
		buf.WriteString(` opacity="0.6"`)
	}
	buf.WriteString(">\n")
}

// writeLabel writes the label centered at local x, below a shape of the
// given height.
func writeLabel(buf *bytes.Buffer, a Attrs, x, height float64) {
	if a.Label == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" dominant-baseline="middle" text-anchor="middle" %s>%s</text>`+"\n",
		x, height+labelOffset, labelFont, html.EscapeString(a.Label))
}

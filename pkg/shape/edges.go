package shape

import (
	"fmt"
	"html"
)

// ArrowheadID is the marker id edge templates reference for their arrow tip.
// The compositor emits the matching <marker> definition.
const ArrowheadID = "arrowhead"

// Line draws an edge as a straight arrow from (X1, Y1) to (X2, Y2).
// A non-empty Dash is used as the stroke-dasharray.
type Line struct {
	Dash string
}

// Draw implements Template.
func (l Line) Draw(a Attrs) string {
	dash := ""
	if l.Dash != "" {
		dash = fmt.Sprintf(` stroke-dasharray="%s"`, l.Dash)
	}
	return fmt.Sprintf(`<line class="edge" id="edge-%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2"%s marker-end="url(#%s)" />`,
		html.EscapeString(a.Name), a.X1, a.Y1, a.X2, a.Y2, stroke, dash, ArrowheadID)
}

// Package layout assigns default positions to diagram nodes.
//
// The only algorithm is a deterministic placeholder grid: nodes are taken
// in listing order (ascending name) and placed row by row on a square-ish
// grid with floor(sqrt(n))+1 columns. Node i lands on
//
//	x = (i mod columns) * spacing + spacing/2
//	y = (i div columns) * spacing + spacing/2
//
// which, with the default spacing of 100, gives the 50/150/250... pattern.
//
// # Modes
//
// [ModeOverwrite] (the default) re-places every node, so positions supplied
// by the caller do not survive a render. [ModePreserve] only places nodes
// without a position; placed nodes still occupy their grid slot, so the
// grid cells of the remaining nodes do not move when a position is added.
package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/strategos/pkg/diagram"
	"github.com/matzehuels/strategos/pkg/errors"
)

// DefaultSpacing is the distance between neighbouring grid cells.
const DefaultSpacing = 100.0

// Mode selects how existing node positions are treated.
type Mode int

const (
	// ModeOverwrite places every node, discarding existing positions.
	ModeOverwrite Mode = iota
	// ModePreserve places only nodes that have no position yet.
	ModePreserve
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeOverwrite:
		return "overwrite"
	case ModePreserve:
		return "preserve"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a config name. The empty string selects ModeOverwrite.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "overwrite":
		return ModeOverwrite, nil
	case "preserve":
		return ModePreserve, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid layout mode: %s (must be 'overwrite' or 'preserve')", s)
	}
}

// Options configures Grid. The zero value is ModeOverwrite with DefaultSpacing.
type Options struct {
	Mode    Mode
	Spacing float64
}

// Columns returns the grid column count for n nodes.
func Columns(n int) int {
	return int(math.Floor(math.Sqrt(float64(n)))) + 1
}

// Cell returns the center of grid slot i for a grid with cols columns.
func Cell(i, cols int, spacing float64) diagram.Position {
	return diagram.Position{
		X: float64(i%cols)*spacing + spacing/2,
		Y: float64(i/cols)*spacing + spacing/2,
	}
}

// Grid places the nodes of d and returns how many it placed.
func Grid(d *diagram.Diagram, opts Options) int {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	cols := Columns(d.NodeCount())

	placed, i := 0, 0
	for n := range d.Nodes() {
		slot := i
		i++
		if opts.Mode == ModePreserve && n.Position != nil {
			continue
		}
		d.Place(n.Name, Cell(slot, cols, spacing))
		placed++
	}
	return placed
}

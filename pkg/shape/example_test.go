package shape_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/strategos/pkg/shape"
)

func ExampleRegistry_Register() {
	reg := shape.NewBuiltin()

	// A custom node shape: a small square marker.
	_ = reg.Register("marker", shape.TemplateFunc(func(a shape.Attrs) string {
		return fmt.Sprintf(`<rect x="%.0f" y="%.0f" width="4" height="4" />`, a.X-2, a.Y-2)
	}))
	reg.Freeze()

	fmt.Println(reg.Node("marker").Draw(shape.Attrs{X: 10, Y: 10}))
	// Output:
	// <rect x="8" y="8" width="4" height="4" />
}

func ExampleRegistry_Node() {
	reg := shape.NewBuiltin()

	// Unknown names fall back to the circle template.
	out := reg.Node("hexagon-9000").Draw(shape.Attrs{Name: "A", Label: "A", X: 50, Y: 50, Size: 10})
	fmt.Println(strings.Contains(out, "<circle"))
	// Output:
	// true
}

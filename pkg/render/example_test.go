package render_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/strategos/pkg/diagram"
	"github.com/matzehuels/strategos/pkg/render"
	"github.com/matzehuels/strategos/pkg/shape"
)

func ExampleCompositor_Render() {
	d := diagram.New("example")
	_ = d.AddNode(diagram.Node{ID: "a", Name: "A"})
	_ = d.AddNode(diagram.Node{ID: "b", Name: "B", Template: "rectangle"})
	_ = d.AddEdge(diagram.Edge{ID: "ab", Name: "ab", Source: "A", Target: "B"})

	doc, err := render.New(render.WithRegistry(shape.NewBuiltin())).Render(context.Background(), d)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(doc.Nodes), "nodes,", len(doc.Edges), "edge")
	fmt.Println(doc.Edges[0])
	// Output:
	// 2 nodes, 1 edge
	// <line class="edge" id="edge-ab" x1="50.00" y1="50.00" x2="150.00" y2="50.00" stroke="#333" stroke-width="2" marker-end="url(#arrowhead)" />
}

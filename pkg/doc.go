// Package pkg provides the core libraries for Strategos diagram rendering.
//
// # Overview
//
// Strategos turns an abstract diagram (named nodes and the directed edges
// between them) into a deterministic SVG rendering plus a serializable
// snapshot of the diagram's state. The pkg directory is organized into:
//
//  1. [shape] - Shape templates and the name → template registry
//  2. [diagram] - Nodes, edges, diagrams and their JSON specs
//  3. [layout] - Grid placement of nodes
//  4. [render] - Composition of laid-out diagrams into SVG
//  5. [store] - In-memory diagram store with render formats
//  6. [api] - HTTP API over the store
//  7. [cache], [config], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The data flow through Strategos:
//
//	diagram.Spec (JSON file or HTTP body)
//	         ↓
//	    [diagram] package (entities, lazy edge references)
//	         ↓
//	    [layout] package (grid positions)
//	         ↓
//	    [render] package (shape templates, render cache)
//	         ↓
//	    SVG document / JSON snapshot
//
// # Quick Start
//
//	d := diagram.New("")
//	d.AddNode(diagram.Node{Name: "a"})
//	d.AddNode(diagram.Node{Name: "b", Template: "rectangle"})
//	d.AddEdge(diagram.Edge{Name: "a-b", Source: "a", Target: "b"})
//
//	doc, err := render.New().Render(ctx, d)
//	if err != nil {
//	    return err // errors.ErrCodeIntegrity for dangling edges
//	}
//	os.WriteFile("out.svg", doc.SVG(render.WithTitle("Example")), 0644)
//
// Unknown template names never fail a render: nodes fall back to "circle" and
// edges to "line".
//
// # Concurrency
//
// A [store.Store] serializes all operations behind one mutex; rendering
// writes node positions, so even reads take it. The default [shape.Registry]
// is populated at start-up and frozen before serving.
package pkg

// Package render composes diagrams into SVG documents.
//
// # Overview
//
// A [Compositor] turns a [diagram.Diagram] into a [Document] in four steps:
//
//  1. Lay out the nodes with [layout.Grid]. This mutates node positions and
//     is visible to the caller afterwards.
//  2. Draw every node, in listing order, with the template the registry
//     resolves for it (unknown names fall back to "circle").
//  3. Resolve each edge's source and target names against the diagram and
//     draw it with its template (unknown names fall back to "line"). An
//     endpoint that names no node fails the render with an INTEGRITY error.
//  4. Collect the fragments, nodes first and edges second.
//
// The result depends only on the diagram and the registered templates.
// Endpoints are resolved on every render and never remembered, so
// replacing a node by name is reflected by the next render.
//
// # Caching
//
// Documents can be cached. The key covers the laid-out diagram content, the
// registered template names and the build version, so any change to a node
// or edge produces a new key:
//
//	c := render.New(
//	    render.WithCache(cache.NewMemoryCache()),
//	    render.WithLogger(logger),
//	)
//	doc, err := c.Render(ctx, d)
//	svg := doc.SVG(render.WithTitle(d.Name))
//
// [diagram.Diagram]: github.com/matzehuels/strategos/pkg/diagram.Diagram
// [layout.Grid]: github.com/matzehuels/strategos/pkg/layout.Grid
package render

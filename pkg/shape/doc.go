// Package shape provides the extensible shape-template registry.
//
// A shape template turns an entity's attributes into a drawable SVG
// fragment. Templates are looked up by name in a [Registry]; new shapes are
// added by registering a new [Template] implementation, never by changing
// the compositor that calls them.
//
// # Built-in Templates
//
// [NewBuiltin] returns a registry pre-populated with:
//
//	circle     node, default for nodes
//	rectangle  node
//	ellipse    node
//	diamond    node
//	hexagon    node
//	line       edge, default for edges
//	dashed     edge
//	dotted     edge
//
// # Fallback
//
// Lookups never fail. [Registry.Node] falls back to "circle" and
// [Registry.Edge] falls back to "line" when the requested name is not
// registered, so a diagram that references a not-yet-known template
// degrades to the default shape instead of aborting the render. If the
// registry does not even hold the fallback, the built-in implementation is
// used directly.
//
// # Concurrency
//
// A registry is meant to be populated at start-up and read-only afterwards.
// [Registry.Freeze] makes that explicit: later calls to [Registry.Register]
// are rejected. Reads are safe for concurrent use.
package shape

// Package diagram provides the entity model: diagrams, nodes and edges.
//
// A [Diagram] is the aggregate root. It exclusively owns its nodes and
// edges, keyed by their diagram-local names; nodes and edges hold no
// reference back to the diagram. Operations that need diagram context, such
// as resolving an edge's endpoints, receive the diagram as a parameter.
//
// # Names and Identities
//
// Every entity has a globally unique ID (a UUID generated when absent) and
// a name. Names are the keys used inside a diagram: adding a node or edge
// whose name already exists replaces the previous entry. Edges reference
// their endpoints by node name, and that reference is weak: it is not
// checked when the edge is added, only when the diagram is rendered (or
// when [Diagram.Validate] is called explicitly).
//
// # Ordering
//
// [Diagram.Nodes] and [Diagram.Edges] iterate in ascending name order. The
// order has no meaning beyond being stable, which keeps layout and
// rendering deterministic.
//
// # Serialization
//
// [Spec] is the structural snapshot of a diagram:
//
//	{
//	  "id": "8c1f...",
//	  "name": "flow",
//	  "nodes": {"A": {"name": "A", "template_name": "circle", "size": 10}},
//	  "edges": {"a-b": {"name": "a-b", "source": "A", "target": "B"}}
//	}
//
// [Diagram.Snapshot] and [FromSpec] convert between the two; the round trip
// preserves every attribute including IDs.
//
// # Concurrency
//
// A Diagram is not safe for concurrent use without external synchronization.
package diagram

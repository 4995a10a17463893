// Package store keeps diagrams in memory, keyed by id.
//
// A [Store] is the single owner of its diagrams. Every operation takes the
// store lock, so mutations are serialized and a deleted diagram disappears
// together with all of its nodes and edges.
//
// Reads return a [Snapshot]: the structural form of the diagram plus its
// rendered fragments. Rendering lays out the nodes, so positions observed in
// a snapshot are the positions written by layout.
//
// Edges are accepted in any order relative to their nodes. A dangling edge
// surfaces only when the diagram is rendered: [Store.Render] fails with an
// INTEGRITY error, and snapshots carry the message in RenderError.
package store

// Package dispatch resolves a tool call to a handler, authorizes it,
// invokes it, and normalizes the outcome into a ToolResult.
//
// Invariants:
// - Only server-context tools are dispatched here; client tools are misrouted.
// - Every call is independently authorized; the dispatcher holds no per-call
//   mutable state beyond the immutable catalog.
// - Handler errors and panics never escape the dispatcher boundary; they are
//   converted into structured failure results.
// - NotFound, validation and authorization failures stay distinguishable.
package dispatch

// Package toolregistry is the catalog of schema-described tools an agent
// may invoke.
//
// Invariants:
// - Tool names are unique; re-registering a name overwrites and warns.
// - A definition's shape is strictly validated on every registration; a
//   malformed tool never enters the catalog.
// - A tool's execution context is fixed at registration.
//
// The catalog renders into two provider conventions: a flat function array
// for providers that consume an upfront catalog, and a callable map for
// providers that invoke client-resident callables directly.
package toolregistry

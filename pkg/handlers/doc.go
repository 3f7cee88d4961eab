// Package handlers implements the server-side tools behind the dispatcher's
// name-to-handler table. Adding a tool is a data registration in Table plus
// a definition in the registry's server table, not a control-flow edit.
package handlers

// Package gateway is the transport boundary of the dispatch core: a
// synchronous HTTP entrypoint for tool execution, the catalog endpoint, and
// a websocket stream of tool-call telemetry events.
package gateway

// Package server wires and runs the vault's HTTP transport server.
//
// It owns the server lifecycle: startup, waiting for the caller's context
// (typically bound to OS signals) and graceful shutdown.
package server

// Package websocket pushes refreshed insight snapshots to stream overlay
// clients. A single actor goroutine owns the client set; per-connection
// writer goroutines decouple broadcast from individual connection speed.
package websocket

import "errors"

// ErrTooManyClients is returned by Register when the client cap is reached.
var ErrTooManyClients = errors.New("max overlay clients reached")

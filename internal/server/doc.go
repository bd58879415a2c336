// Package server implements the HTTP surface using Echo.
//
// Routes: insight API (snapshot read, poll votes, optional batch ingest),
// overlay WebSocket, health and metrics endpoints. Handlers split by
// concern: handlers.go, handlers_health.go, handlers_overlay.go.
package server

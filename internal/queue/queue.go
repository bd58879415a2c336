// Package queue provides the inbound transport collaborator: batch sources
// the monitor loop pulls from. The in-memory source serves single-process
// deployments and tests; the Redis source consumes batches enqueued by an
// external producer. Enqueue-side concurrency is the producer's concern;
// the core only requires that dequeue is sequential and exclusive.
package queue

import "errors"

// ErrClosed is returned by Next once a source is closed and drained.
var ErrClosed = errors.New("batch source closed")

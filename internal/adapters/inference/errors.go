package inference

import "errors"

// Pool errors.
var (
	// ErrPoolClosed is returned when submitting to a stopped pool.
	ErrPoolClosed = errors.New("inference pool closed")

	// ErrQueueFull is returned when the bounded queue rejects a job.
	ErrQueueFull = errors.New("inference queue full")
)

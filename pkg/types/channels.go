package types

import "sync"

// DefaultChannelBuffer is the default capacity of the command and
// event queues connecting the caller and the worker.
const DefaultChannelBuffer = 64

// WorkerChannels is the pair of FIFO queues connecting the interactive
// caller and the automation worker. The caller submits commands and
// polls events without blocking; the worker is the only party that
// blocks, parked on the Command channel between tasks.
type WorkerChannels struct {
	// Command carries caller-submitted commands to the worker.
	Command chan *Command

	// Event carries worker-produced results back to the caller.
	Event chan *Event

	// Done is closed when the worker loop has terminated.
	Done chan struct{}

	closeOnce sync.Once
}

// NewWorkerChannels creates the channel pair with the given buffer size.
// A size of zero or less falls back to DefaultChannelBuffer.
func NewWorkerChannels(bufferSize int) *WorkerChannels {
	if bufferSize <= 0 {
		bufferSize = DefaultChannelBuffer
	}
	return &WorkerChannels{
		Command: make(chan *Command, bufferSize),
		Event:   make(chan *Event, bufferSize),
		Done:    make(chan struct{}),
	}
}

// Submit enqueues a command without blocking. It returns false when the
// command queue is full, in which case the command was not enqueued.
func (c *WorkerChannels) Submit(cmd *Command) bool {
	select {
	case c.Command <- cmd:
		return true
	default:
		return false
	}
}

// Poll dequeues the next pending event without blocking. It returns nil
// when no event is pending.
func (c *WorkerChannels) Poll() *Event {
	select {
	case ev := <-c.Event:
		return ev
	default:
		return nil
	}
}

// Close marks the worker as terminated. Safe to call multiple times;
// only the worker loop calls this, after its final event has been sent.
func (c *WorkerChannels) Close() {
	c.closeOnce.Do(func() {
		close(c.Event)
		close(c.Done)
	})
}

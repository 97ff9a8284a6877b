package kernel

import "sync"

// Queue is the FIFO of pending commands. Producers enqueue concurrently;
// the kernel tick swaps out the whole backlog once per tick, so commands
// submitted during a tick run on the next one.
type Queue struct {
	mu      sync.Mutex
	pending []Command
}

// Enqueue appends a command. Safe for concurrent use.
func (q *Queue) Enqueue(cmd Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, cmd)
}

// PopAll atomically takes the entire backlog in submission order.
func (q *Queue) PopAll() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	cmds := q.pending
	q.pending = nil
	return cmds
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

package pool

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/thebyteslayer/sodium/pkg/log"
	"github.com/thebyteslayer/sodium/pkg/protocol"
)

var (
	// ErrShutdown is returned by Submit after the pool has been shut down.
	ErrShutdown = errors.New("pool is shut down")

	// ErrQueueBusy is returned when the chosen queue's lock was contended at
	// the instant of submission. Submission is best-effort and non-blocking;
	// callers surface this as a transient dispatch error.
	ErrQueueBusy = errors.New("work queue busy")
)

// maxIdleSleepMs caps the linear backoff an idle worker sleeps between
// steal attempts.
const maxIdleSleepMs = 50

// Result carries the outcome of one executed command back through the
// task's reply channel. Which fields are meaningful depends on the command:
// Value/Found for GET, Existed for DELETE, Keys for KEYS and SEARCH.
type Result struct {
	Value   string
	Found   bool
	Existed bool
	Keys    []string
	Err     error
}

// Task pairs a parsed command with its single-shot reply channel. The
// channel must have capacity 1; it receives exactly one Result and is
// consumed once.
type Task struct {
	Cmd   protocol.Command
	Reply chan Result
}

// Executor runs a command against the store or search engine. Injected so
// the pool stays free of domain imports.
type Executor interface {
	Execute(cmd protocol.Command) Result
}

// workQueue is one worker's FIFO. Push and pop are best-effort try-lock
// operations; a contended lock fails the access rather than blocking.
type workQueue struct {
	mu       sync.Mutex
	tasks    []Task
	shutdown atomic.Bool
}

func (q *workQueue) push(t Task) bool {
	if q.shutdown.Load() {
		return false
	}
	if !q.mu.TryLock() {
		return false
	}
	q.tasks = append(q.tasks, t)
	q.mu.Unlock()
	return true
}

// pop removes from the head (FIFO for the owning worker).
func (q *workQueue) pop() (Task, bool) {
	if !q.mu.TryLock() {
		return Task{}, false
	}
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return Task{}, false
	}
	t := q.tasks[0]
	q.tasks[0] = Task{}
	q.tasks = q.tasks[1:]
	return t, true
}

// steal removes from the tail (LIFO for thieves, reducing contention with
// the victim's head).
func (q *workQueue) steal() (Task, bool) {
	if !q.mu.TryLock() {
		return Task{}, false
	}
	defer q.mu.Unlock()
	n := len(q.tasks)
	if n == 0 {
		return Task{}, false
	}
	t := q.tasks[n-1]
	q.tasks[n-1] = Task{}
	q.tasks = q.tasks[:n-1]
	return t, true
}

// Pool is a static work-stealing worker pool. Each worker owns one FIFO
// queue; submission round-robins across queues with a single atomic
// counter; idle workers steal from the tail of their peers.
type Pool struct {
	queues   []*workQueue
	exec     Executor
	next     atomic.Uint64
	shutdown atomic.Bool
	wg       sync.WaitGroup
	logger   zerolog.Logger
}

// New creates a pool with size workers and starts them. A size <= 0 falls
// back to the CPU count.
func New(size int, exec Executor) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	p := &Pool{
		queues: make([]*workQueue, size),
		exec:   exec,
		logger: log.WithComponent("pool"),
	}
	for i := range p.queues {
		p.queues[i] = &workQueue{}
	}

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker(i)
	}

	p.logger.Debug().Int("workers", size).Msg("Worker pool started")
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.queues)
}

// Submit enqueues a task on the next queue in round-robin order. It never
// blocks: it fails with ErrShutdown after shutdown and with ErrQueueBusy
// when the chosen queue's lock is contended at that instant.
func (p *Pool) Submit(t Task) error {
	if p.shutdown.Load() {
		return ErrShutdown
	}

	idx := p.next.Add(1) % uint64(len(p.queues))
	if !p.queues[idx].push(t) {
		if p.shutdown.Load() {
			return ErrShutdown
		}
		return ErrQueueBusy
	}
	return nil
}

// Dispatch submits cmd and blocks until its single-shot reply arrives.
// The returned error reports submission failure only; execution errors
// travel inside the Result.
func (p *Pool) Dispatch(cmd protocol.Command) (Result, error) {
	reply := make(chan Result, 1)
	if err := p.Submit(Task{Cmd: cmd, Reply: reply}); err != nil {
		return Result{}, err
	}
	return <-reply, nil
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	idle := 0

	// The flag is checked before each pop, so a task still queued when
	// shutdown flips is dropped; only work already executing finishes.
	for !p.shutdown.Load() {
		if t, ok := own.pop(); ok {
			p.run(t)
			idle = 0
			continue
		}

		stole := false
		for i, q := range p.queues {
			if i == id {
				continue
			}
			if t, ok := q.steal(); ok {
				p.run(t)
				stole = true
				break
			}
		}
		if stole {
			idle = 0
			continue
		}

		idle++
		sleep := idle
		if sleep > maxIdleSleepMs {
			sleep = maxIdleSleepMs
		}
		time.Sleep(time.Duration(sleep) * time.Millisecond)
	}
}

// run executes a task and delivers its result. A dropped receiver is not an
// error for the worker.
func (p *Pool) run(t Task) {
	res := p.exec.Execute(t.Cmd)
	select {
	case t.Reply <- res:
	default:
	}
}

// Shutdown flags the pool and every queue, then joins all workers. Tasks
// still queued are dropped — their reply channels never receive — and only
// work already executing finishes; submissions racing with shutdown fail.
func (p *Pool) Shutdown() {
	if p.shutdown.Swap(true) {
		return
	}
	for _, q := range p.queues {
		q.shutdown.Store(true)
	}
	p.wg.Wait()
	p.logger.Debug().Msg("Worker pool stopped")
}

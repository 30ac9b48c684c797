// Package parallel provides the worker pool used for data-parallel shader
// evaluation. Every shader invocation is a pure function of its arguments,
// so work items never synchronize with each other; the pool only fans out
// and joins.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a pool of goroutines for parallel per-pixel rendering.
//
// Work items are distributed round-robin across per-worker queues. Workers
// primarily pull from their own queue but steal from others when idle,
// which balances load when some row bands are cheaper than others (e.g.,
// rows fully outside an element's bounding box).
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// New creates a pool with the specified number of workers. If workers is 0
// or negative, GOMAXPROCS is used. The workers start immediately and wait
// for work.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// A buffer of a few items per worker hides submission latency.
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drain(myQueue)
			return
		case work := <-myQueue:
			if work != nil {
				work()
			}
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			// Nothing to steal; block on own queue.
			select {
			case <-p.done:
				p.drain(myQueue)
				return
			case work := <-myQueue:
				if work != nil {
					work()
				}
			}
		}
	}
}

// drain executes all remaining work in a queue.
func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *Pool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work across workers and waits for all items to
// complete. If the pool is closed, remaining items are skipped.
func (p *Pool) ExecuteAll(work []func()) {
	if len(work) == 0 || !p.running.Load() {
		return
	}

	var completion sync.WaitGroup
	completion.Add(len(work))

	for i, fn := range work {
		workerID := i % p.workers
		workFn := fn
		wrapped := func() {
			defer completion.Done()
			workFn()
		}
		select {
		case p.workQueues[workerID] <- wrapped:
		case <-p.done:
			completion.Done()
		}
	}

	completion.Wait()
}

// ForRows splits the half-open row range [lo, hi) into per-worker bands and
// runs fn over every row in parallel. Each row is visited exactly once.
func (p *Pool) ForRows(lo, hi int, fn func(row int)) {
	n := hi - lo
	if n <= 0 {
		return
	}

	bands := p.workers * 4
	if bands > n {
		bands = n
	}
	step := (n + bands - 1) / bands

	work := make([]func(), 0, bands)
	for start := lo; start < hi; start += step {
		end := start + step
		if end > hi {
			end = hi
		}
		s, e := start, end
		work = append(work, func() {
			for row := s; row < e; row++ {
				fn(row)
			}
		})
	}
	p.ExecuteAll(work)
}

// Close gracefully shuts down the pool: it stops accepting new work, lets
// queued work finish, and stops all workers. Safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool is still accepting work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Pool is a fixed-size worker pool. With a single worker jobs run inline
// on the caller's goroutine.
type Pool struct {
	wg    sync.WaitGroup
	work  chan func()
	close func()
}

// Start launches numWorkers workers, or GOMAXPROCS workers when
// numWorkers < 1.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{close: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.work {
				f()
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

func (p *Pool) Workers() int {
	if p.work == nil {
		return 1
	}
	return cap(p.work)
}

// Do queues f, blocking while every worker is busy and the queue is full.
// It must not be called after Wait.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting jobs and blocks until every queued job has run.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}

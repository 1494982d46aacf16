package worker

import (
	"context"
	"errors"
	"sync"
)

var ErrStopped = errors.New("worker pool stopped")

type task func()

type Pool struct {
	wg   sync.WaitGroup
	jobs chan task

	mu      sync.RWMutex
	stopped bool
}

// NewPool starts n workers. A pool of one is a single-writer queue:
// jobs run strictly one after another in submission order.
func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

// Do queues fn and waits for its result. ctx only bounds the wait for a queue
// slot; once fn is queued it runs to completion and Do returns its error.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	job := func() { done <- fn() }

	p.mu.RLock()
	if p.stopped {
		p.mu.RUnlock()
		return ErrStopped
	}
	select {
	case p.jobs <- job:
		p.mu.RUnlock()
	case <-ctx.Done():
		p.mu.RUnlock()
		return ctx.Err()
	}
	return <-done
}

// Len is the number of queued jobs not yet picked up by a worker.
func (p *Pool) Len() int { return len(p.jobs) }

func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

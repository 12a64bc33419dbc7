package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool manages a pool of workers that execute jobs concurrently.
// Each analysis owns its entities exclusively, so jobs need no
// coordination beyond the queue itself.
type Pool struct {
	workers   int
	jobQueue  chan Job
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu      sync.Mutex
	results []Result
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the worker goroutines
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			r := job.Execute(p.ctx)
			p.mu.Lock()
			p.results = append(p.results, r)
			p.mu.Unlock()
		}
	}
}

// Submit queues a job for execution. It blocks once the queue is
// full, providing natural backpressure.
func (p *Pool) Submit(job Job) {
	p.jobQueue <- job
}

// Wait closes the queue, waits for all workers to drain it and
// returns the collected results.
func (p *Pool) Wait() []Result {
	p.closeOnce.Do(func() { close(p.jobQueue) })
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results
}

// Stop cancels all in-flight work
func (p *Pool) Stop() {
	p.cancel()
}

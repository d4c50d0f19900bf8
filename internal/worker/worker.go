package worker

import (
	"context"
	"log/slog"
	"sync"
)

type Job any

type ProcessFunc func(ctx context.Context, job Job) error

// Pool runs a fixed set of workers draining a buffered job channel.
type Pool struct {
	numWorkers int
	jobs       chan Job
	process    ProcessFunc
	wg         sync.WaitGroup
}

func NewPool(numWorkers int, bufferSize int, process ProcessFunc) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan Job, bufferSize),
		process:    process,
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			if err := p.process(ctx, job); err != nil {
				slog.Warn("job processing failed", "worker", id, "error", err)
			}
		}
	}
}

func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// Stop closes the job channel and waits for workers to drain it.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

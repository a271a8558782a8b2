package worker

import (
	"context"
	"sync"

	"github.com/nvieira/go-asteroid-watch/internal/models"
)

// ProcessFunc handles one assessment record pulled off the queue.
type ProcessFunc func(ctx context.Context, a *models.Assessment) error

// Pool fans assessment records out to a fixed set of workers. Producers
// submit, workers run the processor; Stop drains the queue.
type Pool struct {
	numWorkers int
	jobs       chan *models.Assessment
	processor  ProcessFunc
	wg         sync.WaitGroup
}

func NewPool(numWorkers int, bufferSize int, processor ProcessFunc) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan *models.Assessment, bufferSize),
		processor:  processor,
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processor(ctx, a)
		}
	}
}

func (p *Pool) Submit(a *models.Assessment) {
	p.jobs <- a
}

func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

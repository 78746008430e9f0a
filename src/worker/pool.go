package worker

import (
	"context"
	"image"
	"log"
	"sync"
)

// LoadFunc produces a skin image; it runs on a worker goroutine.
type LoadFunc func(ctx context.Context) (image.Image, error)

// ResultCallback is invoked on load completion (from a worker goroutine).
// The render loop passes a closure that posts back into its own queue.
type ResultCallback func(img image.Image, err error)

// Pool is a fixed-size skin decode pool with a 1-slot input queue (strict back-pressure).
type Pool struct {
	jobs      chan job
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type job struct {
	ctx  context.Context
	name string
	load LoadFunc
	cb   ResultCallback
}

// New creates a worker pool. Size defaults to 1 when size<=0. Queue is 1 slot.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{jobs: make(chan job, 1)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				log.Printf("Worker: loading skin %s", j.name)
				img, err := run(j)
				log.Printf("Worker: skin %s done, err=%v", j.name, err)
				j.cb(img, err)
			}
		}()
	}
}

func run(j job) (image.Image, error) {
	if err := j.ctx.Err(); err != nil {
		return nil, err
	}
	return j.load(j.ctx)
}

// Submit enqueues a load if the single-slot queue is free. Returns false if dropped.
func (p *Pool) Submit(ctx context.Context, name string, load LoadFunc, cb ResultCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, name: name, load: load, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}

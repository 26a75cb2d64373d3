package worker

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Run after Stop.
var ErrStopped = errors.New("worker pool stopped")

// Job is a unit of work executed by the pool.
type Job func() error

// Pool runs jobs on a fixed number of goroutines. Run blocks until the job
// finished, so callers stay synchronous while concurrency stays bounded.
type Pool interface {
	Run(ctx context.Context, job Job) error
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{
		jobs: make(chan task),
		quit: make(chan struct{}),
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

type task struct {
	job  Job
	done chan error
}

type pool struct {
	jobs     chan task
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func (p *pool) loop() {
	defer p.wg.Done()
	for {
		select {
		case t := <-p.jobs:
			t.done <- t.job()
		case <-p.quit:
			return
		}
	}
}

func (p *pool) Run(ctx context.Context, job Job) error {
	if job == nil {
		return nil
	}
	t := task{job: job, done: make(chan error, 1)}
	select {
	case p.jobs <- t:
	case <-p.quit:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// 已交給 worker 的工作一定會執行完，這裡等待結果
	return <-t.done
}

func (p *pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
